package engine

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// TestApplyPanicRecovery tests that panics are caught and converted to errors
func TestApplyPanicRecovery(t *testing.T) {
	node := newStub("test.hbs", 1, 1, "{{boom}}", func(*Context, io.Writer) error {
		panic("intentional panic for testing")
	})

	// Apply should NOT panic, but return an error
	_, err := Apply(node, nil)
	if err == nil {
		t.Fatal("Expected error from panic, got nil")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "panic: intentional panic for testing") {
		t.Errorf("Error should contain panic message, got: %s", errMsg)
	}
	if !strings.HasPrefix(errMsg, "test.hbs:1:1: ") {
		t.Errorf("Error should start with the node position, got: %s", errMsg)
	}

	var diag *Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("Expected *Diagnostic, got %T", err)
	}
	if diag.Type != "panic" {
		t.Errorf("Expected type panic, got %q", diag.Type)
	}
	if !strings.Contains(diag.Stack, "goroutine") {
		t.Errorf("Expected a stack trace, got: %q", diag.Stack)
	}
}

// TestApplyNilPointerPanic tests recovery from nil pointer dereference
func TestApplyNilPointerPanic(t *testing.T) {
	node := newStub("test.hbs", 5, 10, "{{user.name}}", func(*Context, io.Writer) error {
		var ptr *string
		_ = *ptr // This will panic
		return nil
	})

	err := ApplyTo(node, nil, io.Discard)
	if err == nil {
		t.Fatal("Expected error from nil pointer panic, got nil")
	}

	// The runtime error is reachable through the chain.
	var rtErr interface{ RuntimeError() }
	if !errors.As(err, &rtErr) {
		t.Errorf("Expected a runtime error in the chain, got: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "test.hbs:5:10: ") {
		t.Errorf("Error should start with the node position, got: %s", err.Error())
	}
}

// TestApplyPanicWithError tests that a panicked error value stays inspectable
func TestApplyPanicWithError(t *testing.T) {
	sentinel := errors.New("custom error panic")
	node := newStub("test.hbs", 1, 1, "x", func(*Context, io.Writer) error {
		panic(sentinel)
	})

	_, err := Apply(node, nil)
	if !errors.Is(err, sentinel) {
		t.Errorf("Expected sentinel in the chain, got: %v", err)
	}
}
