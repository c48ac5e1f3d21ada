package precompile

import (
	"errors"
	"fmt"
)

// ErrMissingResource means the compiler script could not be loaded. It is a
// packaging defect, not a transient failure, and is never retried.
var ErrMissingResource = errors.New("precompile: compiler script not found")

// EvaluationError is a failure raised inside the interpreter, either while
// loading the compiler script or while compiling one template. Filename is
// the logical script name the failing evaluation ran under.
type EvaluationError struct {
	Filename string
	Line     int
	Err      error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("precompile: %s:%d: %v", e.Filename, e.Line, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingResource):
		return "missing_resource"
	default:
		return "evaluation"
	}
}
