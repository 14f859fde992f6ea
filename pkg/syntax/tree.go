// SPDX-License-Identifier: MPL-2.0

package syntax

import "fmt"

type (
	// Pos is a 1-based line/column position in the source text.
	Pos struct {
		Line   int
		Column int
	}

	// Body is the raw text of an invocation's body brackets, handed to the
	// function's parser. The zero value means the invocation had no body.
	Body struct {
		text    string
		present bool
	}

	// SyntaxTree is the parsed form of a document or of a function body.
	SyntaxTree struct {
		Nodes []Node
	}

	// Node is one element of a syntax tree.
	Node interface {
		node()
	}

	// Text is a run of words without whitespace.
	Text string

	// Space is inter-word whitespace, including a single line break.
	Space struct{}

	// Newline is a paragraph break (one or more blank lines).
	Newline struct{}

	// ToggleBold is a `*` in the source.
	ToggleBold struct{}

	// ToggleItalic is a `_` in the source.
	ToggleItalic struct{}

	// ToggleMonospace is a backtick in the source.
	ToggleMonospace struct{}

	// FuncCall is a parsed function invocation. Func holds the value the
	// function's parser produced; it is not modified after parsing.
	FuncCall struct {
		Name Ident
		Pos  Pos
		Func any
	}
)

func (Text) node()            {}
func (Space) node()           {}
func (Newline) node()         {}
func (ToggleBold) node()      {}
func (ToggleItalic) node()    {}
func (ToggleMonospace) node() {}
func (*FuncCall) node()       {}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// BodyOf returns a present body with the given text.
func BodyOf(text string) Body {
	return Body{text: text, present: true}
}

// Text returns the body text and whether a body was given.
func (b Body) Text() (string, bool) {
	return b.text, b.present
}

// Present reports whether a body was given.
func (b Body) Present() bool {
	return b.present
}

// Len returns the number of top-level nodes. A nil tree has none.
func (t *SyntaxTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}
