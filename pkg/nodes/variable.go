package nodes

import (
	"html"
	"io"

	"hbs/pkg/engine"
	"hbs/pkg/utils/coerce"
)

// Variable renders the value of an expression: {{user.name}}, or
// {{{body}}} when Raw.
type Variable struct {
	engine.Base
	expr *expression

	// Raw disables HTML escaping.
	Raw bool
}

// NewVariable returns an HTML-escaped variable.
func NewVariable(source string) *Variable {
	return &Variable{expr: newExpression(source)}
}

// NewRawVariable returns a variable written without escaping.
func NewRawVariable(source string) *Variable {
	return &Variable{expr: newExpression(source), Raw: true}
}

func (v *Variable) Merge(ctx *engine.Context, w io.Writer) error {
	val, err := v.expr.eval(ctx)
	if err != nil {
		return err
	}

	// nil renders empty
	s := coerce.ToString(val)
	if !v.Raw {
		s = html.EscapeString(s)
	}
	_, err = io.WriteString(w, s)
	return err
}

func (v *Variable) Text() string {
	if v.Raw {
		return "{{{" + v.expr.source + "}}}"
	}
	return "{{" + v.expr.source + "}}"
}
