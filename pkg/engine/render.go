package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"hbs/pkg/metrics"
)

// Apply renders n against data into a fresh buffer and returns its contents.
// data may be a *Context or any value to wrap as the root scope.
func Apply(n Node, data interface{}) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := ApplyTo(n, data, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ApplyTo renders n against data into w.
//
// A failure that is already a *Diagnostic is returned untouched. Any other
// failure, panics included, is enriched with n's position and source text,
// so the report always points at the innermost node that failed.
func ApplyTo(n Node, data interface{}, w io.Writer) error {
	if w == nil {
		return fmt.Errorf("%w: a writer is required", ErrInvalidArgument)
	}
	if n == nil {
		return fmt.Errorf("%w: a node is required", ErrInvalidArgument)
	}

	start := time.Now()
	defer metrics.ObserveRender(start)

	err := merge(n, Normalize(data), w)
	if err == nil {
		return nil
	}

	var diag *Diagnostic
	if errors.As(err, &diag) {
		return err
	}
	return enrich(n, err)
}

// merge runs the node-specific step, converting a panic into an error.
func merge(n Node, ctx *Context, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())

			slog.Error("panic recovered while rendering",
				"panic", r,
				"file", n.Filename(),
				"line", n.Line(),
				"col", n.Column(),
				"stack", stack,
			)

			err = &panicError{value: r, stack: stack}
		}
	}()

	return n.Merge(ctx, w)
}

func enrich(n Node, err error) *Diagnostic {
	diag := &Diagnostic{
		Type:     "error",
		Filename: n.Filename(),
		Line:     n.Line(),
		Col:      n.Column(),
		Reason:   err.Error(),
		Evidence: n.Text(),
		cause:    err,
	}

	var p *panicError
	if errors.As(err, &p) {
		diag.Type = "panic"
		diag.Stack = p.stack
	}

	diag.Message = FormatMessage(diag.Filename, diag.Line, diag.Col, diag.Reason, diag.Evidence)
	metrics.RenderFailed(diag.Type)
	return diag
}
