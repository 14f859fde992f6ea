// SPDX-License-Identifier: MPL-2.0

package library

import (
	"context"

	"github.com/typeset/typeset/pkg/funcs"
	"github.com/typeset/typeset/pkg/layout"
	"github.com/typeset/typeset/pkg/syntax"
)

type (
	// Box lays out its optional body in a region no wider than Width.
	Box struct {
		Body *syntax.SyntaxTree
		// Width is zero when no width was given.
		Width syntax.Size
	}

	// Align lays out its body with the given alignment and restores the
	// surrounding alignment afterwards.
	Align struct {
		Align layout.Alignment
		Body  *syntax.SyntaxTree
	}
)

func parseBox(header *syntax.FuncHeader, body syntax.Body, ctx syntax.ParseContext) (*Box, error) {
	width, _, err := header.Args.TakeKeySize("width")
	if err != nil {
		return nil, err
	}
	if width < 0 {
		return funcs.Fail[*Box]("box width must not be negative, got %s", width)
	}
	tree, err := funcs.Optional(body, ctx)
	if err != nil {
		return nil, err
	}
	return &Box{Body: tree, Width: width}, nil
}

// Layout implements layout.Func.
func (b *Box) Layout(ctx context.Context, lc layout.Context) (layout.Commands, error) {
	return layout.Tree(ctx, b.Body, lc.WithWidth(b.Width.Points()))
}

func parseAlign(header *syntax.FuncHeader, body syntax.Body, ctx syntax.ParseContext) (*Align, error) {
	name, err := header.Args.TakePosIdent("alignment")
	if err != nil {
		return nil, err
	}
	align, err := layout.ParseAlignment(string(name))
	if err != nil {
		return nil, err
	}
	tree, err := funcs.Expected(body, ctx)
	if err != nil {
		return nil, err
	}
	return &Align{Align: align, Body: tree}, nil
}

// Layout implements layout.Func.
func (a *Align) Layout(ctx context.Context, lc layout.Context) (layout.Commands, error) {
	body := layout.Spawn(ctx, layout.TreeOf(a.Body), lc.WithAlign(a.Align))
	inner, err := body.Await(ctx)
	if err != nil {
		return nil, err
	}

	out := make(layout.Commands, 0, len(inner)+2)
	out = append(out, layout.SetAlignment{Align: a.Align})
	out = append(out, inner...)
	return append(out, layout.SetAlignment{Align: lc.Align}), nil
}
