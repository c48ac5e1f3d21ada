// Package nodes holds the template nodes hbs renders: literal text,
// variables, blocks and sections. Trees are built programmatically; each
// node embeds engine.Base for its position and precompiled form.
package nodes

import (
	"io"

	"hbs/pkg/engine"
)

// Text is literal template text, written verbatim.
type Text struct {
	engine.Base
	text string
}

func NewText(text string) *Text {
	return &Text{text: text}
}

func (t *Text) Merge(_ *engine.Context, w io.Writer) error {
	_, err := io.WriteString(w, t.text)
	return err
}

func (t *Text) Text() string {
	return t.text
}
