// SPDX-License-Identifier: MPL-2.0

package library

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/typeset/typeset/pkg/funcs"
	"github.com/typeset/typeset/pkg/layout"
	"github.com/typeset/typeset/pkg/syntax"
)

func parse(t *testing.T, src string) *syntax.SyntaxTree {
	t.Helper()

	tree, err := syntax.Parse(src, Std().Context())
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return tree
}

func lay(t *testing.T, tree *syntax.SyntaxTree, opts layout.Options) layout.Commands {
	t.Helper()

	cmds, err := layout.Tree(context.Background(), tree, layout.NewContext(layout.NewShared(opts)))
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	return cmds
}

func TestBold_RejectsArgumentsAndBody(t *testing.T) {
	t.Parallel()

	s := Std()

	_, err := s.Invoke(&syntax.FuncHeader{Name: "bold", Args: syntax.FuncArgs{Pos: []syntax.Expr{syntax.Ident("x")}}}, syntax.Body{})
	if !errors.Is(err, funcs.ErrUnexpectedArguments) || err.Error() != "unexpected arguments" {
		t.Errorf("stray argument: got %v", err)
	}

	_, err = s.Invoke(&syntax.FuncHeader{Name: "bold"}, syntax.BodyOf("x"))
	if !errors.Is(err, funcs.ErrUnexpectedBody) || err.Error() != "unexpected body" {
		t.Errorf("body: got %v", err)
	}

	v, err := s.Invoke(&syntax.FuncHeader{Name: "bold"}, syntax.Body{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != (Bold{}) {
		t.Errorf("expected Bold{}, got %#v", v)
	}
}

func TestBox_BodyLaysOutLikeDirectTree(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"content", "a *b* `c`", "x [bold] y\n\nz", `a [comment: "x]y"] b`, `p [box][q [comment: "[[", "\"]"] r] s`} {
		boxed := lay(t, parse(t, "[box]["+body+"]"), layout.Options{})
		direct := lay(t, parse(t, body), layout.Options{})
		if !reflect.DeepEqual(boxed, direct) {
			t.Errorf("body %q: boxed %v, direct %v", body, boxed, direct)
		}
	}
}

func TestBox_WithoutBodyIsEmpty(t *testing.T) {
	t.Parallel()

	tree := parse(t, "[box]")
	box, ok := tree.Nodes[0].(*syntax.FuncCall).Func.(*Box)
	if !ok {
		t.Fatalf("expected *Box, got %T", tree.Nodes[0].(*syntax.FuncCall).Func)
	}
	if box.Body != nil {
		t.Errorf("absent body must not produce a tree, got %#v", box.Body)
	}

	cmds := lay(t, tree, layout.Options{})
	if cmds == nil || len(cmds) != 0 {
		t.Errorf("expected empty non-nil commands, got %#v", cmds)
	}
}

func TestBox_NarrowsWidth(t *testing.T) {
	t.Parallel()

	var seen float64
	probe := funcs.NewScope()
	funcs.Add(probe, "box", funcs.WithContext(parseBox))
	funcs.Add(probe, "probe", funcs.Nullary(func() (layout.LayoutFn, error) {
		return func(_ context.Context, lc layout.Context) (layout.Commands, error) {
			seen = lc.Width
			return nil, nil
		}, nil
	}))

	tree, err := syntax.Parse("[box: width = 100pt][[probe]]", probe.Context())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	lay(t, tree, layout.Options{PageWidth: 400, Sequential: true})
	if seen != 100 {
		t.Errorf("nested width = %g, want 100", seen)
	}

	if _, err := syntax.Parse("[box: width = -1pt]", probe.Context()); err == nil {
		t.Error("negative width must be rejected")
	}
	if _, err := syntax.Parse("[box: width = wide]", probe.Context()); !errors.Is(err, syntax.ErrArgumentType) {
		t.Errorf("expected ErrArgumentType, got %v", err)
	}
}

func TestAlign(t *testing.T) {
	t.Parallel()

	got := lay(t, parse(t, "[align: center][hi]"), layout.Options{})
	want := layout.Commands{
		layout.SetAlignment{Align: layout.AlignCenter},
		layout.AddText{Text: "hi"},
		layout.SetAlignment{Align: layout.AlignLeft},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = lay(t, parse(t, "[align: right][[align: center][x]]"), layout.Options{})
	want = layout.Commands{
		layout.SetAlignment{Align: layout.AlignRight},
		layout.SetAlignment{Align: layout.AlignCenter},
		layout.AddText{Text: "x"},
		layout.SetAlignment{Align: layout.AlignRight},
		layout.SetAlignment{Align: layout.AlignLeft},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("nested: got %v, want %v", got, want)
	}
}

func TestAlign_Errors(t *testing.T) {
	t.Parallel()

	ctx := Std().Context()
	tests := []struct {
		src  string
		want error
	}{
		{"[align: center]", funcs.ErrMissingBody},
		{"[align][x]", syntax.ErrMissingArgument},
		{"[align: middle][x]", layout.ErrInvalidAlignment},
		{`[align: "left"][x]`, syntax.ErrArgumentType},
		{"[align: left, right][x]", funcs.ErrUnexpectedArguments},
		{"[align: inf][x]", layout.ErrInvalidAlignment},
	}
	for _, tt := range tests {
		_, err := syntax.Parse(tt.src, ctx)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.src, tt.want, err)
		}
	}
}

func TestSizes_MustBeFinite(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"[h: NaNpt]", "[v: Infpt]", "[box: width = NaNpt][x]", "[h: 1e400pt]"} {
		_, err := syntax.Parse(src, Std().Context())
		if err == nil || !strings.Contains(err.Error(), "out of range") {
			t.Errorf("%s: expected out of range error, got %v", src, err)
		}
	}
}

func TestStyleToggles(t *testing.T) {
	t.Parallel()

	got := lay(t, parse(t, "[bold][italic][mono]"), layout.Options{})
	want := layout.Commands{
		layout.ToggleStyle{Class: layout.Bold},
		layout.ToggleStyle{Class: layout.Italic},
		layout.ToggleStyle{Class: layout.Monospace},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := syntax.Parse("[italic][x]", Std().Context()); !errors.Is(err, funcs.ErrUnexpectedBody) {
		t.Errorf("expected ErrUnexpectedBody, got %v", err)
	}
}

func TestSpacingAndBreaks(t *testing.T) {
	t.Parallel()

	got := lay(t, parse(t, "[h: 11pt][v: 1em][n][pagebreak]"), layout.Options{})
	want := layout.Commands{
		layout.AddSpacing{Size: 11, Axis: layout.Horizontal},
		layout.AddSpacing{Size: 11, Axis: layout.Vertical},
		layout.BreakLine{},
		layout.BreakPage{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, src := range []string{"[h]", "[v: 3]", "[h: 1pt][x]"} {
		if _, err := syntax.Parse(src, Std().Context()); err == nil {
			t.Errorf("%s: expected an error", src)
		}
	}
}

func TestComment_HasNoLayout(t *testing.T) {
	t.Parallel()

	tree := parse(t, `a[comment: "fix this", "later"]b`)
	c, ok := tree.Nodes[1].(*syntax.FuncCall).Func.(*Comment)
	if !ok || !slices.Equal(c.Notes, []string{"fix this", "later"}) {
		t.Fatalf("comment = %#v", tree.Nodes[1].(*syntax.FuncCall).Func)
	}

	got := lay(t, tree, layout.Options{})
	want := layout.Commands{layout.AddText{Text: "a"}, layout.AddText{Text: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	tree = parse(t, `[comment: todo, "keep", 3pt, by = "me"]`)
	c = tree.Nodes[0].(*syntax.FuncCall).Func.(*Comment)
	if !slices.Equal(c.Notes, []string{"keep"}) {
		t.Errorf("notes = %q, want [keep]", c.Notes)
	}

	if _, err := syntax.Parse("[comment][body]", Std().Context()); !errors.Is(err, funcs.ErrUnexpectedBody) {
		t.Errorf("expected ErrUnexpectedBody, got %v", err)
	}
}

func TestStd_CatalogMatchesScope(t *testing.T) {
	t.Parallel()

	names := Std().Names()
	var documented []syntax.Ident
	for _, e := range Catalog() {
		documented = append(documented, e.Name)
	}
	if !slices.Equal(names, documented) {
		t.Errorf("scope %v, catalog %v", names, documented)
	}

	k, _ := Std().Kind("comment")
	if k.Layout {
		t.Error("comment must not have a layout capability")
	}
	k, _ = Std().Kind("v")
	if k.Meta != layout.Vertical {
		t.Errorf("v meta = %v", k.Meta)
	}
}

func TestConcurrentAndSequentialAgree(t *testing.T) {
	t.Parallel()

	src := "*T* [align: center][a [box][b [h: 2pt] c] d]\n\n[italic]e[italic] [n] [box: width = 3cm][f]"
	tree := parse(t, src)
	con := lay(t, tree, layout.Options{})
	seq := lay(t, tree, layout.Options{Sequential: true})
	if !reflect.DeepEqual(con, seq) {
		t.Errorf("concurrent %v\nsequential %v", con, seq)
	}
}
