package nodes

import (
	"io"
	"reflect"
	"strings"

	"hbs/pkg/engine"
)

// Section renders its body depending on the value of an expression.
//
//	{{#items}}...{{/items}}   once per element of a list
//	{{#user}}...{{/user}}     once, with user as the current scope
//	{{#flag}}...{{/flag}}     once when flag is truthy
//	{{^items}}...{{/items}}   once when items is falsy or empty
//
// Falsy values render the inverse ({{else}}) instead.
type Section struct {
	engine.Base
	expr     *expression
	inverted bool

	body    *Block
	inverse *Block
}

func NewSection(source string, body ...engine.Node) *Section {
	return &Section{expr: newExpression(source), body: NewBlock(body...)}
}

func NewInvertedSection(source string, body ...engine.Node) *Section {
	s := NewSection(source, body...)
	s.inverted = true
	return s
}

// WithInverse sets the nodes rendered in the {{else}} branch.
func (s *Section) WithInverse(nodes ...engine.Node) *Section {
	s.inverse = NewBlock(nodes...)
	return s
}

func (s *Section) Body() *Block {
	return s.body
}

// Inverse returns the {{else}} branch, or nil.
func (s *Section) Inverse() *Block {
	return s.inverse
}

func (s *Section) Merge(ctx *engine.Context, w io.Writer) error {
	val, err := s.expr.eval(ctx)
	if err != nil {
		return err
	}

	if s.inverted {
		if truthy(val) {
			return s.renderInverse(ctx, w)
		}
		return s.body.Merge(ctx, w)
	}

	if !truthy(val) {
		return s.renderInverse(ctx, w)
	}

	rv := indirect(reflect.ValueOf(val))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		for i := 0; i < n; i++ {
			scope := ctx.Push(rv.Index(i).Interface())
			scope.Set("@index", i)
			scope.Set("@first", i == 0)
			scope.Set("@last", i == n-1)
			if err := s.body.Merge(scope, w); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map, reflect.Struct:
		return s.body.Merge(ctx.Push(val), w)
	}
	return s.body.Merge(ctx, w)
}

func (s *Section) renderInverse(ctx *engine.Context, w io.Writer) error {
	if s.inverse == nil {
		return nil
	}
	return s.inverse.Merge(ctx, w)
}

// Text rebuilds the section's source. The closing tag names the first word
// of the expression, so {{#len(items) > 1}} closes as {{/len(items)}}: the
// bundled precompiler matches sections on that first word.
func (s *Section) Text() string {
	open := "{{#"
	if s.inverted {
		open = "{{^"
	}

	var sb strings.Builder
	sb.WriteString(open + s.expr.source + "}}")
	sb.WriteString(s.body.Text())
	if s.inverse != nil {
		sb.WriteString("{{else}}")
		sb.WriteString(s.inverse.Text())
	}
	sb.WriteString("{{/" + s.expr.name() + "}}")
	return sb.String()
}

func (s *Section) Remove(child engine.Node) bool {
	if s.body.Remove(child) {
		return true
	}
	return s.inverse != nil && s.inverse.Remove(child)
}

// truthy follows mustache rules: nil, false, zero, "" and empty
// collections are falsy.
func truthy(val interface{}) bool {
	if val == nil {
		return false
	}
	rv := indirect(reflect.ValueOf(val))
	switch rv.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
