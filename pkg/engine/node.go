package engine

import (
	"io"

	"hbs/pkg/engine/precompile"
)

// Node is a compiled template unit. Concrete nodes embed Base, which supplies
// the position accessors and ties the type to this package.
type Node interface {
	// Merge renders the node into w. Failures are enriched by ApplyTo.
	Merge(ctx *Context, w io.Writer) error

	// Text returns the node's original source text.
	Text() string

	// Remove detaches a direct child by identity and reports whether it was found.
	Remove(child Node) bool

	Filename() string
	Line() int
	Column() int

	base() *Base
}

// Base holds the state every node shares: where it came from in the source
// and its memoized JavaScript form.
//
// The position is set while the tree is compiled and must not change once
// rendering starts.
type Base struct {
	filename string
	line     int
	column   int

	javaScript precompile.Artifact
}

// SetFilename records the file the node was compiled from. It returns b so
// calls chain while a tree is assembled.
func (b *Base) SetFilename(name string) *Base {
	b.filename = name
	return b
}

// SetPosition records the node's line and column in its file.
func (b *Base) SetPosition(line, column int) *Base {
	b.line = line
	b.column = column
	return b
}

// Filename returns the file the node was compiled from, or "" when unset.
func (b *Base) Filename() string {
	return b.filename
}

// Line returns the 1-based line of the node, or 0 when unset.
func (b *Base) Line() int {
	return b.line
}

// Column returns the 1-based column of the node, or 0 when unset.
func (b *Base) Column() int {
	return b.column
}

// Position returns the node's line and column.
func (b *Base) Position() (line, column int) {
	return b.line, b.column
}

// Remove reports false: a node without children owns nothing to remove.
func (b *Base) Remove(Node) bool {
	return false
}

func (b *Base) base() *Base {
	return b
}
