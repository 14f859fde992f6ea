// SPDX-License-Identifier: MPL-2.0

package library

import (
	"context"

	"github.com/typeset/typeset/pkg/funcs"
	"github.com/typeset/typeset/pkg/layout"
	"github.com/typeset/typeset/pkg/syntax"
)

type (
	// Spacing inserts fixed space along the axis it was registered with.
	Spacing struct {
		Size syntax.Size
		Axis layout.Axis
	}

	// LineBreak ends the current line.
	LineBreak struct{}

	// PageBreak ends the current page.
	PageBreak struct{}

	// Comment is an author's note. It has no layout.
	Comment struct {
		Notes []string
	}
)

func parseSpacing(header *syntax.FuncHeader, body syntax.Body, _ syntax.ParseContext, axis layout.Axis) (Spacing, error) {
	if err := funcs.Forbidden(body); err != nil {
		return Spacing{}, err
	}
	size, err := header.Args.TakePosSize("spacing")
	if err != nil {
		return Spacing{}, err
	}
	return Spacing{Size: size, Axis: axis}, nil
}

// Layout implements layout.Func.
func (s Spacing) Layout(context.Context, layout.Context) (layout.Commands, error) {
	return layout.Commands{layout.AddSpacing{Size: s.Size.Points(), Axis: s.Axis}}, nil
}

// Layout implements layout.Func.
func (LineBreak) Layout(context.Context, layout.Context) (layout.Commands, error) {
	return layout.Commands{layout.BreakLine{}}, nil
}

// Layout implements layout.Func.
func (PageBreak) Layout(context.Context, layout.Context) (layout.Commands, error) {
	return layout.Commands{layout.BreakPage{}}, nil
}

// parseComment accepts any arguments. String positionals are kept as notes,
// everything else is dropped.
func parseComment(header *syntax.FuncHeader, body syntax.Body) (*Comment, error) {
	if err := funcs.Forbidden(body); err != nil {
		return nil, err
	}
	c := &Comment{}
	for _, e := range header.Args.Pos {
		if note, ok := e.(syntax.Str); ok {
			c.Notes = append(c.Notes, string(note))
		}
	}
	header.Args.Clear()
	return c, nil
}
