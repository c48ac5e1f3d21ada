package nodes

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"hbs/pkg/engine"
)

// plainPath matches lookups that need no expression engine: this, ., name,
// @index, user.address.city, items.0.
var plainPath = regexp.MustCompile(`^(\.|@?[A-Za-z_][\w-]*(\.[\w-]+)*)$`)

// expression is compiled on first use and shared by every render of its node.
type expression struct {
	source string

	once    sync.Once
	program *vm.Program
	err     error
}

func newExpression(source string) *expression {
	return &expression{source: strings.TrimSpace(source)}
}

// name is the first word of the source, used to close a section tag.
func (e *expression) name() string {
	fields := strings.Fields(e.source)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (e *expression) eval(ctx *engine.Context) (interface{}, error) {
	if e.source == "" {
		return nil, fmt.Errorf("empty expression")
	}
	if plainPath.MatchString(e.source) {
		val, _ := ctx.Get(e.source)
		return val, nil
	}

	e.once.Do(func() {
		e.program, e.err = expr.Compile(e.source, expr.AllowUndefinedVariables())
	})
	if e.err != nil {
		return nil, fmt.Errorf("compile %q: %w", e.source, e.err)
	}

	out, err := expr.Run(e.program, ctx.Env())
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", e.source, err)
	}
	return out, nil
}
