package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"hbs/pkg/engine/precompile"
	"hbs/pkg/utils/coerce"
)

// Config is read from the environment (and a .env file loaded by main).
type Config struct {
	// Env selects the logger mode: "production" logs JSON at Info.
	Env string
	// Script overrides the bundled precompiler script with a file on disk.
	Script string
	// Concurrency caps the files precompiled at once.
	Concurrency int
}

func LoadConfig() Config {
	cfg := Config{
		Env:         os.Getenv("HBS_ENV"),
		Script:      strings.TrimSpace(os.Getenv("HBS_PRECOMPILER_SCRIPT")),
		Concurrency: runtime.NumCPU(),
	}

	if raw := strings.TrimSpace(os.Getenv("HBS_PRECOMPILE_CONCURRENCY")); raw != "" {
		if n := coerce.ToIntDef(raw, 0); n > 0 {
			cfg.Concurrency = n
		} else {
			slog.Warn("ignoring invalid HBS_PRECOMPILE_CONCURRENCY", "value", raw)
		}
	}
	return cfg
}

// PrecompileOptions returns the options for the shared precompiler. With no
// Script set the bundled script is used.
func (c Config) PrecompileOptions() precompile.Options {
	opts := precompile.Options{Logger: slog.Default()}
	if c.Script != "" {
		opts.FS = os.DirFS(filepath.Dir(c.Script))
		opts.Script = filepath.Base(c.Script)
	}
	return opts
}
