package engine

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"hbs/pkg/fastjson"
)

// Context is the evaluation scope a node renders against. It wraps an
// arbitrary model, holds local bindings, and may have a parent scope.
type Context struct {
	mu     sync.RWMutex
	model  interface{}
	vars   map[string]interface{}
	parent *Context
}

// NewContext wraps model as the root scope of a new Context.
func NewContext(model interface{}) *Context {
	return &Context{
		model: model,
		vars:  make(map[string]interface{}),
	}
}

// Normalize returns candidate itself when it already is a *Context, otherwise
// a new root Context wrapping it. It never copies or re-wraps a Context.
func Normalize(candidate interface{}) *Context {
	if ctx, ok := candidate.(*Context); ok {
		if ctx == nil {
			return NewContext(nil)
		}
		return ctx
	}
	return NewContext(candidate)
}

// Push creates a child scope over model whose lookups fall back to c.
func (c *Context) Push(model interface{}) *Context {
	child := NewContext(model)
	child.parent = c
	return child
}

// Model returns the wrapped object.
func (c *Context) Model() interface{} {
	return c.model
}

// Parent returns the enclosing scope, or nil for a root.
func (c *Context) Parent() *Context {
	return c.parent
}

// Set binds key in this scope (Thread-Safe).
func (c *Context) Set(key string, val interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vars[key] = val
}

// Get resolves a dotted path (user.id, items.0.name). The first segment is
// looked up in the nearest scope that defines it, local bindings before the
// model; the remaining segments walk into maps, structs and slices.
func (c *Context) Get(path string) (interface{}, bool) {
	if path == "this" || path == "." {
		return c.model, true
	}
	path = strings.TrimPrefix(path, "this.")

	head, rest, nested := strings.Cut(path, ".")
	for scope := c; scope != nil; scope = scope.parent {
		root, ok := scope.local(head)
		if !ok {
			continue
		}
		if !nested {
			return root, true
		}
		return walk(root, strings.Split(rest, "."))
	}
	return nil, false
}

func (c *Context) local(key string) (interface{}, bool) {
	c.mu.RLock()
	val, ok := c.vars[key]
	c.mu.RUnlock()
	if ok {
		return val, true
	}
	return property(c.model, key)
}

// Env flattens the scope chain into one map, outermost scope first so inner
// scopes shadow outer ones. The current model is also bound as "this".
func (c *Context) Env() map[string]interface{} {
	var chain []*Context
	for scope := c; scope != nil; scope = scope.parent {
		chain = append(chain, scope)
	}

	env := make(map[string]interface{})
	for i := len(chain) - 1; i >= 0; i-- {
		scope := chain[i]
		for k, v := range flatten(scope.model) {
			env[k] = v
		}
		scope.mu.RLock()
		for k, v := range scope.vars {
			env[k] = v
		}
		scope.mu.RUnlock()
	}
	env["this"] = c.model
	return env
}

func walk(current interface{}, parts []string) (interface{}, bool) {
	for _, part := range parts {
		if current == nil {
			// Safe navigation: a nil in the middle of a path resolves to nothing.
			return nil, false
		}
		next, ok := property(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func property(obj interface{}, key string) (interface{}, bool) {
	switch m := obj.(type) {
	case nil:
		return nil, false
	case map[string]interface{}:
		val, ok := m[key]
		return val, ok
	case map[string]string:
		val, ok := m[key]
		return val, ok
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Struct:
		return field(rv, key)
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	}
	return nil, false
}

func field(rv reflect.Value, key string) (interface{}, bool) {
	t := rv.Type()
	if sf, ok := t.FieldByName(key); ok && sf.IsExported() {
		if val, err := rv.FieldByIndexErr(sf.Index); err == nil {
			return val.Interface(), true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == key {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func flatten(model interface{}) map[string]interface{} {
	switch m := model.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return m
	}

	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	case reflect.Struct:
		out, err := fastjson.ToMap(model)
		if err != nil {
			return nil
		}
		return out
	}
	return nil
}
