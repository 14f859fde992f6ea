// SPDX-License-Identifier: MPL-2.0

package library

import (
	"context"

	"github.com/typeset/typeset/pkg/funcs"
	"github.com/typeset/typeset/pkg/layout"
	"github.com/typeset/typeset/pkg/syntax"
)

type (
	// Bold toggles bold text, like `*` in the source.
	Bold struct{}

	// StyleToggle toggles the font class it was registered with.
	StyleToggle struct {
		Class layout.FontClass
	}
)

func parseBold(_ *syntax.FuncHeader, body syntax.Body) (Bold, error) {
	if err := funcs.Forbidden(body); err != nil {
		return Bold{}, err
	}
	return Bold{}, nil
}

// Layout implements layout.Func.
func (Bold) Layout(context.Context, layout.Context) (layout.Commands, error) {
	return layout.Commands{layout.ToggleStyle{Class: layout.Bold}}, nil
}

func parseStyleToggle(_ *syntax.FuncHeader, body syntax.Body, _ syntax.ParseContext, class layout.FontClass) (StyleToggle, error) {
	if err := funcs.Forbidden(body); err != nil {
		return StyleToggle{}, err
	}
	return StyleToggle{Class: class}, nil
}

// Layout implements layout.Func.
func (t StyleToggle) Layout(context.Context, layout.Context) (layout.Commands, error) {
	return layout.Commands{layout.ToggleStyle{Class: t.Class}}, nil
}
