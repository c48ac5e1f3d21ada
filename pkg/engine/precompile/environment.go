// Package precompile translates template source text into Handlebars.js
// template functions.
//
// The translation runs inside a yaegi interpreter preloaded with a bundled
// compiler script. Building that interpreter is expensive, so one Environment
// is built lazily and reused for the life of the process. Every call on an
// Environment holds its mutex: at most one interpreter evaluation, whether
// construction or a per-template compile, is in flight at a time.
//
// Lifecycle of the shared Environment: configured (optionally) by Configure,
// built on the first Precompile or Preload, never torn down or rebuilt. A
// build failure, such as a missing script, is remembered and returned by
// every later call.
package precompile

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"hbs/pkg/metrics"
)

//go:embed scripts/handlebars.go.txt
var scripts embed.FS

const (
	// DefaultScript is the bundled compiler script inside the embedded FS.
	DefaultScript = "scripts/handlebars.go.txt"

	// entryPoint must have type func(string) (string, error).
	entryPoint = "handlebars.Precompile"
)

// ErrAlreadyInitialized is returned by Configure once the shared Environment exists.
var ErrAlreadyInitialized = errors.New("precompile: shared environment already initialized")

// Source is what the precompiler reads from a template node.
type Source interface {
	Filename() string
	Text() string
}

// Artifact is a memoized precompile result owned by a node. Its zero value is
// empty; it is only read and written while the Environment lock is held.
type Artifact struct {
	value string
	ok    bool
}

// Options configures an Environment.
type Options struct {
	// FS holds the compiler script. Defaults to the embedded scripts.
	FS fs.FS
	// Script is the script path inside FS. Defaults to DefaultScript.
	Script string
	// Logger defaults to slog.Default() at the time of logging.
	Logger *slog.Logger
}

// Stats counts the work an Environment has done.
type Stats struct {
	Builds      int64
	Evaluations int64
}

// Environment is a precompiler: an interpreter with the compiler script
// evaluated into it, plus the lock that serializes its use.
type Environment struct {
	mu   sync.Mutex
	opts Options

	precompile func(string) (string, error)
	err        error

	builds      atomic.Int64
	evaluations atomic.Int64
}

var (
	sharedMu      sync.Mutex
	sharedOptions Options
	shared        *Environment
)

// Shared returns the process-wide Environment, creating it on first use.
// Creation does not build the interpreter; that happens on first Precompile
// or Preload.
func Shared() *Environment {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		shared = New(sharedOptions)
	}
	return shared
}

// Configure sets the options of the shared Environment. It must run before
// the first call to Shared.
func Configure(opts Options) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		return ErrAlreadyInitialized
	}
	sharedOptions = opts
	return nil
}

// Preload builds the shared Environment now, so a packaging defect such as a
// missing script surfaces at startup instead of on first use.
func Preload() error {
	return Shared().Preload()
}

// New returns an unbuilt Environment.
func New(opts Options) *Environment {
	if opts.FS == nil {
		opts.FS = scripts
	}
	if opts.Script == "" {
		opts.Script = DefaultScript
	}
	return &Environment{opts: opts}
}

// Script returns the path of the compiler script the Environment loads.
func (e *Environment) Script() string {
	return e.opts.Script
}

// Stats returns a snapshot of the Environment's counters.
func (e *Environment) Stats() Stats {
	return Stats{
		Builds:      e.builds.Load(),
		Evaluations: e.evaluations.Load(),
	}
}

// Preload builds the Environment if it has not been built yet.
func (e *Environment) Preload() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ensure()
}

// Precompile returns src precompiled into a Handlebars.js template function.
// When a is non-nil the result is memoized there: a filled artifact is
// returned without touching the interpreter, and a successful compile fills
// it. Failed compiles are not memoized.
func (e *Environment) Precompile(src Source, a *Artifact) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if a != nil && a.ok {
		metrics.PrecompileCacheHit()
		return a.value, nil
	}

	if err := e.ensure(); err != nil {
		metrics.PrecompileFailed(failureKind(err))
		return "", err
	}

	js, err := e.evaluate(src)
	if err != nil {
		metrics.PrecompileFailed(failureKind(err))
		e.logger().Error("precompile failed", "file", src.Filename(), "error", err)
		return "", err
	}

	if a != nil {
		a.value = js
		a.ok = true
	}
	return js, nil
}

// evaluate runs the compiler entry point on src. The call frame is private
// to this invocation; nothing is bound into the shared interpreter.
func (e *Environment) evaluate(src Source) (js string, err error) {
	name := src.Filename()

	defer func() {
		if r := recover(); r != nil {
			err = &EvaluationError{Filename: name, Line: 1, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	e.evaluations.Add(1)
	metrics.PrecompileEvaluated()

	js, err = e.precompile(src.Text())
	if err != nil {
		return "", &EvaluationError{Filename: name, Line: 1, Err: err}
	}
	return js, nil
}

// ensure builds the interpreter once. The caller holds e.mu.
func (e *Environment) ensure() error {
	if e.precompile != nil {
		return nil
	}
	if e.err != nil {
		return e.err
	}

	start := time.Now()
	fn, err := e.build()
	if err != nil {
		e.err = err
		e.logger().Error("precompiler environment unavailable", "script", e.opts.Script, "error", err)
		return err
	}

	e.precompile = fn
	e.builds.Add(1)
	metrics.PrecompileEnvironmentBuilt()
	e.logger().Info("precompiler environment ready",
		"script", e.opts.Script,
		"duration", time.Since(start),
	)
	return nil
}

func (e *Environment) build() (fn func(string) (string, error), err error) {
	script, err := fs.ReadFile(e.opts.FS, e.opts.Script)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingResource, e.opts.Script, err)
	}

	defer func() {
		if r := recover(); r != nil {
			fn = nil
			err = &EvaluationError{Filename: e.opts.Script, Line: 1, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("precompile: load stdlib symbols: %w", err)
	}

	if _, err := i.Eval(string(script)); err != nil {
		return nil, &EvaluationError{Filename: e.opts.Script, Line: 1, Err: err}
	}

	v, err := i.Eval(entryPoint)
	if err != nil {
		return nil, &EvaluationError{Filename: e.opts.Script, Line: 1, Err: err}
	}

	fn, ok := v.Interface().(func(string) (string, error))
	if !ok {
		return nil, &EvaluationError{
			Filename: e.opts.Script,
			Line:     1,
			Err:      fmt.Errorf("%s has type %s, want func(string) (string, error)", entryPoint, v.Type()),
		}
	}
	return fn, nil
}

func (e *Environment) logger() *slog.Logger {
	if e.opts.Logger != nil {
		return e.opts.Logger
	}
	return slog.Default()
}
