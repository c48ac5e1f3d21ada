package nodes

import (
	"io"
	"strings"

	"hbs/pkg/engine"
)

// Block is an ordered list of child nodes.
type Block struct {
	engine.Base
	children []engine.Node
}

// NewBlock copies children, so later Add and Remove calls never touch the
// caller's slice.
func NewBlock(children ...engine.Node) *Block {
	return &Block{children: append([]engine.Node(nil), children...)}
}

// Add appends children. Trees are assembled before rendering starts.
func (b *Block) Add(children ...engine.Node) *Block {
	b.children = append(b.children, children...)
	return b
}

func (b *Block) Children() []engine.Node {
	return b.children
}

// Merge renders every child through engine.ApplyTo, so a failing child
// reports its own position.
func (b *Block) Merge(ctx *engine.Context, w io.Writer) error {
	for _, child := range b.children {
		if err := engine.ApplyTo(child, ctx, w); err != nil {
			return err
		}
	}
	return nil
}

func (b *Block) Text() string {
	var sb strings.Builder
	for _, child := range b.children {
		sb.WriteString(child.Text())
	}
	return sb.String()
}

// Remove detaches the first child identical to child.
func (b *Block) Remove(child engine.Node) bool {
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			return true
		}
	}
	return false
}
