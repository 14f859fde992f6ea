// SPDX-License-Identifier: MPL-2.0

// Package library contains the standard set of document functions.
package library

import (
	"github.com/typeset/typeset/pkg/funcs"
	"github.com/typeset/typeset/pkg/layout"
	"github.com/typeset/typeset/pkg/syntax"
)

// Entry documents a standard function for help output.
type Entry struct {
	Name    syntax.Ident
	Body    funcs.BodyPolicy
	Args    string
	Summary string
}

var catalog = []Entry{
	{Name: "align", Body: funcs.BodyExpected, Args: "left|center|right", Summary: "Align the paragraphs of the body."},
	{Name: "bold", Body: funcs.BodyForbidden, Summary: "Toggle bold text."},
	{Name: "box", Body: funcs.BodyOptional, Args: "[width = size]", Summary: "Lay out the body in a box of limited width."},
	{Name: "comment", Body: funcs.BodyForbidden, Args: "anything", Summary: "A note for the author; produces no output."},
	{Name: "h", Body: funcs.BodyForbidden, Args: "size", Summary: "Horizontal spacing."},
	{Name: "italic", Body: funcs.BodyForbidden, Summary: "Toggle italic text."},
	{Name: "mono", Body: funcs.BodyForbidden, Summary: "Toggle monospace text."},
	{Name: "n", Summary: "Line break."},
	{Name: "pagebreak", Summary: "Page break."},
	{Name: "v", Body: funcs.BodyForbidden, Args: "size", Summary: "Vertical spacing."},
}

// Std returns a scope with all standard functions registered.
func Std() *funcs.Scope {
	s := funcs.NewScope()

	funcs.Add(s, "bold", funcs.WithBody(parseBold))
	funcs.AddWithMeta(s, "italic", parseStyleToggle, layout.Italic)
	funcs.AddWithMeta(s, "mono", parseStyleToggle, layout.Monospace)

	funcs.Add(s, "box", funcs.WithContext(parseBox))
	funcs.Add(s, "align", funcs.WithContext(parseAlign))

	funcs.AddWithMeta(s, "h", parseSpacing, layout.Horizontal)
	funcs.AddWithMeta(s, "v", parseSpacing, layout.Vertical)
	funcs.Add(s, "n", funcs.Default[LineBreak]())
	funcs.Add(s, "pagebreak", funcs.Default[PageBreak]())

	funcs.Add(s, "comment", funcs.WithBody(parseComment))

	return s
}

// Catalog returns the documentation of the standard functions, sorted by name.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}
