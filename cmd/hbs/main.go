package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"hbs/internal/cli"
	"hbs/pkg/engine/precompile"
	"hbs/pkg/logger"
)

func main() {
	godotenv.Load()

	cfg := cli.LoadConfig()
	logger.Setup(cfg.Env)

	if err := precompile.Configure(cfg.PrecompileOptions()); err != nil {
		slog.Error("❌ Precompiler setup failed", "error", err)
		os.Exit(1)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
