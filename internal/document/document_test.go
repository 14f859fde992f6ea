// SPDX-License-Identifier: MPL-2.0

package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/typeset/typeset/internal/issue"
	"github.com/typeset/typeset/internal/testutil"
	"github.com/typeset/typeset/pkg/cueutil"
	"github.com/typeset/typeset/pkg/layout"
	"github.com/typeset/typeset/pkg/library"
	"github.com/typeset/typeset/pkg/syntax"
)

func issueOf(t *testing.T, err error) issue.Id {
	t.Helper()

	i, ok := issue.Explain(err)
	if !ok {
		t.Fatalf("error %v carries no issue", err)
	}
	return i.Id()
}

func TestParse_NoFrontMatter(t *testing.T) {
	t.Parallel()

	doc, err := Parse("doc.tps", "hello *world*\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if doc.Source != "hello *world*\n" || doc.BodyLine != 1 || doc.FrontMatter != (FrontMatter{}) {
		t.Errorf("Parse() = %+v", doc)
	}
}

func TestParse_FrontMatter(t *testing.T) {
	t.Parallel()

	text := "+++\r\ntitle = \"Report\"\npage_width = 60\nfont_size = 12.5\nsequential = true\n+++\nbody [n]\n"
	doc, err := Parse("doc.tps", text)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	fm := doc.FrontMatter
	if fm.Title != "Report" || fm.PageWidth != 60 || fm.FontSize != 12.5 || fm.Sequential == nil || !*fm.Sequential {
		t.Errorf("front matter = %+v", fm)
	}
	if doc.Source != "body [n]\n" {
		t.Errorf("source = %q", doc.Source)
	}
	if doc.BodyLine != 7 {
		t.Errorf("body line = %d, want 7", doc.BodyLine)
	}

	opts := doc.Options(layout.Options{PageWidth: 440, FontSize: 11})
	if opts.PageWidth != 330 || opts.FontSize != 12.5 || !opts.Sequential {
		t.Errorf("Options() = %+v", opts)
	}
}

func TestParse_EmptyFrontMatter(t *testing.T) {
	t.Parallel()

	doc, err := Parse("doc.tps", "+++\n+++")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if doc.Source != "" || doc.BodyLine != 3 {
		t.Errorf("Parse() = %+v", doc)
	}
	base := layout.Options{PageWidth: 100, FontSize: 9, Sequential: true}
	if got := doc.Options(base); got != base {
		t.Errorf("empty front matter changed options: %+v", got)
	}
}

func TestParse_FrontMatterErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"unterminated", "+++\ntitle = \"x\"\n", "unterminated front matter"},
		{"only delimiter", "+++", "unterminated front matter"},
		{"bad toml", "+++\ntitle = \n+++\n", "doc.tps:2:"},
		{"unknown key", "+++\ncolour = \"red\"\n+++\n", "colour"},
		{"out of range", "+++\npage_width = 5\n+++\n", "page_width"},
		{"wrong type", "+++\nsequential = \"yes\"\n+++\n", "sequential"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse("doc.tps", tt.text)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := Parse("doc.tps", "+++\n"); !errors.Is(err, ErrUnterminatedFrontMatter) {
		t.Errorf("expected ErrUnterminatedFrontMatter, got %v", err)
	}

	huge := "+++\ntitle = \"" + strings.Repeat("t", int(MaxFrontMatterSize)) + "\"\n+++\n"
	if _, err := Parse("doc.tps", huge); !errors.Is(err, cueutil.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge for oversized front matter, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDocument(t, "a.tps", "+++\ntitle = \"A\"\n+++\ntext")
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Path != path || doc.FrontMatter.Title != "A" || doc.Source != "text" {
		t.Errorf("Load() = %+v", doc)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.tps"))
	if !errors.Is(err, os.ErrNotExist) || issueOf(t, err) != issue.FileNotFoundId {
		t.Errorf("missing file: %v", err)
	}

	_, err = Load(dir)
	if err == nil || issueOf(t, err) != issue.FileNotFoundId {
		t.Errorf("directory: %v", err)
	}

	big := testutil.WriteDocument(t, "big.tps", strings.Repeat("a", int(cueutil.DefaultMaxFileSize)+1))
	_, err = Load(big)
	if !errors.Is(err, cueutil.ErrFileTooLarge) || issueOf(t, err) != issue.DocumentTooLargeId {
		t.Errorf("large file: %v", err)
	}

	bad := testutil.WriteDocument(t, "bad.tps", "+++\nx = 1\n")
	_, err = Load(bad)
	if err == nil || issueOf(t, err) != issue.DocumentParseFailedId {
		t.Errorf("bad front matter: %v", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || len(ae.Suggestions) != 2 {
		t.Errorf("expected two suggestions for bad front matter, got %v", err)
	}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	doc, err := Parse("doc.tps", "+++\nsequential = true\n+++\n*a* [box][b]")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Compile(context.Background(), doc, library.Std(), layout.Options{PageWidth: 440})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	want := layout.Commands{
		layout.ToggleStyle{Class: layout.Bold},
		layout.AddText{Text: "a"},
		layout.ToggleStyle{Class: layout.Bold},
		layout.AddSpace{},
		layout.AddText{Text: "b"},
	}
	if !reflect.DeepEqual(res.Commands, want) {
		t.Errorf("commands = %v, want %v", res.Commands, want)
	}
	if !res.Options.Sequential || res.PassID == "" || res.Tree.Len() != 5 {
		t.Errorf("result = %+v", res)
	}
	if res.LaidOut["box"] != 1 {
		t.Errorf("laid out = %v", res.LaidOut)
	}
}

func TestCompile_ParseErrorsAreClassified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want issue.Id
	}{
		{"[nope]", issue.UnknownFunctionId},
		{"[bold: 1]", issue.UnexpectedArgumentsId},
		{"[bold][x]", issue.UnexpectedBodyId},
		{"[align: left]", issue.UnexpectedBodyId},
		{"a ] b", issue.DocumentParseFailedId},
	}
	for _, tt := range tests {
		doc, err := Parse("doc.tps", tt.src)
		if err != nil {
			t.Fatal(err)
		}
		_, err = Compile(context.Background(), doc, library.Std(), layout.Options{})
		if err == nil {
			t.Errorf("%s: expected error", tt.src)
			continue
		}
		if got := issueOf(t, err); got != tt.want {
			t.Errorf("%s: issue = %d, want %d", tt.src, got, tt.want)
		}
	}
}

func TestCheck_PositionsAreFileRelative(t *testing.T) {
	t.Parallel()

	doc, err := Parse("doc.tps", "+++\ntitle = \"t\"\n+++\nline one\n[nope]")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Check(doc, library.Std())
	var serr *syntax.Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *syntax.Error in chain, got %v", err)
	}
	if serr.Pos.Line != 5 {
		t.Errorf("line = %d, want 5", serr.Pos.Line)
	}
}
