package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument reports a missing or unusable argument to a render call.
var ErrInvalidArgument = errors.New("invalid argument")

// Diagnostic is a render failure enriched with the position and source text
// of the node that raised it. Once a failure is a Diagnostic it travels up
// the node tree unchanged.
type Diagnostic struct {
	Type     string `json:"type"` // "error" or "panic"
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Reason   string `json:"reason"`
	Evidence string `json:"evidence"`
	Message  string `json:"message"`
	Stack    string `json:"stack,omitempty"`

	cause error
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// Unwrap returns the failure the node originally raised.
func (d *Diagnostic) Unwrap() error {
	return d.cause
}

// FormatMessage renders the operator-facing report: a "file:line:col: reason"
// header, then every non-empty line of evidence indented by four spaces.
func FormatMessage(filename string, line, col int, reason, evidence string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s\n", filename, line, col, reason)
	for _, l := range strings.Split(evidence, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if l == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// panicError carries a value recovered from a node's Merge.
type panicError struct {
	value interface{}
	stack string
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

func (p *panicError) Unwrap() error {
	err, _ := p.value.(error)
	return err
}
