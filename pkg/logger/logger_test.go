package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupWriterProductionUsesJSON(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupWriter("production", &buf)

	slog.Debug("hidden")
	slog.Info("precompiler ready", "script", "handlebars.go.txt")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"precompiler ready"`)
	assert.Contains(t, out, `"script":"handlebars.go.txt"`)
}

func TestSetupWriterDevelopmentUsesText(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupWriter("", &buf)

	Log.Debug("render", "file", "t.hbs")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "file=t.hbs")
}
