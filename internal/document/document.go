// SPDX-License-Identifier: MPL-2.0

// Package document loads typeset documents from disk and drives them
// through the parse and layout phases.
package document

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/typeset/typeset/internal/issue"
	"github.com/typeset/typeset/internal/render"
	"github.com/typeset/typeset/pkg/cueutil"
	"github.com/typeset/typeset/pkg/layout"
)

const (
	// FrontMatterDelimiter opens and closes the front matter block.
	FrontMatterDelimiter = "+++"

	// MaxFrontMatterSize limits the decoded front matter (64 KiB).
	MaxFrontMatterSize int64 = 64 << 10
)

//go:embed frontmatter_schema.cue
var frontMatterSchema []byte

// ErrUnterminatedFrontMatter is returned when the closing delimiter is missing.
var ErrUnterminatedFrontMatter = errors.New("unterminated front matter")

type (
	// FrontMatter holds per-document settings. Zero fields leave the
	// configured value in place.
	FrontMatter struct {
		Title      string  `json:"title,omitempty"`
		PageWidth  int     `json:"page_width,omitempty"`
		FontSize   float64 `json:"font_size,omitempty"`
		Sequential *bool   `json:"sequential,omitempty"`
	}

	// Document is a loaded source file.
	Document struct {
		Path        string
		FrontMatter FrontMatter
		// Source is the text after the front matter.
		Source string
		// BodyLine is the line of Path on which Source starts.
		BodyLine int
	}
)

// Load reads the document at path and splits off its front matter.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(path, err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load document").
			WithResource(path).
			WithIssue(issue.DocumentTooLargeId).
			WithSuggestion("Split the document into smaller files").
			Wrap(err).
			BuildError()
	}
	doc, err := Parse(path, string(data))
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read front matter").
			WithResource(path).
			WithIssue(issue.DocumentParseFailedId).
			WithSuggestions(
				"Front matter is TOML between two '+++' lines at the top of the file",
				"Supported keys: title, page_width, font_size, sequential",
			).
			Wrap(err).
			BuildError()
	}
	return doc, nil
}

// Parse builds a Document from in-memory text. name is used in messages.
func Parse(name, text string) (*Document, error) {
	doc := &Document{Path: name, Source: text, BodyLine: 1}

	raw, body, lines, ok, err := splitFrontMatter(text)
	if err != nil {
		return nil, err
	}
	if !ok {
		return doc, nil
	}
	doc.Source = body
	doc.BodyLine = lines + 1

	fm, err := decodeFrontMatter(name, raw)
	if err != nil {
		return nil, err
	}
	doc.FrontMatter = *fm
	return doc, nil
}

// Options applies the front matter on top of base.
func (d *Document) Options(base layout.Options) layout.Options {
	fm := d.FrontMatter
	if fm.PageWidth > 0 {
		base.PageWidth = float64(fm.PageWidth) * render.PointsPerColumn
	}
	if fm.FontSize > 0 {
		base.FontSize = fm.FontSize
	}
	if fm.Sequential != nil {
		base.Sequential = *fm.Sequential
	}
	return base
}

// splitFrontMatter returns the front matter text, the remaining body and
// the number of lines consumed. ok is false when text has no front matter.
func splitFrontMatter(text string) (raw, body string, lines int, ok bool, err error) {
	first, rest, found := strings.Cut(text, "\n")
	if strings.TrimRight(first, "\r") != FrontMatterDelimiter {
		return "", text, 0, false, nil
	}
	if !found {
		return "", "", 0, false, ErrUnterminatedFrontMatter
	}

	var fm strings.Builder
	lines = 1
	for rest != "" {
		var line string
		line, rest, found = strings.Cut(rest, "\n")
		lines++
		if strings.TrimRight(line, "\r") == FrontMatterDelimiter {
			return fm.String(), rest, lines, true, nil
		}
		fm.WriteString(line)
		fm.WriteByte('\n')
		if !found {
			break
		}
	}
	return "", "", 0, false, ErrUnterminatedFrontMatter
}

// decodeFrontMatter reads TOML and checks it against the front matter schema.
func decodeFrontMatter(name, raw string) (*FrontMatter, error) {
	var values map[string]any
	if err := toml.Unmarshal([]byte(raw), &values); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			// row counts from the line after the opening delimiter.
			return nil, fmt.Errorf("%s:%d:%d: front matter: %s", name, row+1, col, derr.Error())
		}
		return nil, fmt.Errorf("%s: front matter: %w", name, err)
	}
	if values == nil {
		values = map[string]any{}
	}

	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%s: front matter: %w", name, err)
	}
	res, err := cueutil.ParseAndDecode[FrontMatter](frontMatterSchema, data, "#FrontMatter",
		cueutil.WithFilename(name),
		cueutil.WithMaxFileSize(MaxFrontMatterSize),
		cueutil.WithConcrete(),
	)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

func readError(path string, err error) error {
	ctx := issue.NewErrorContext().WithOperation("read document").WithResource(path).Wrap(err)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctx.WithIssue(issue.FileNotFoundId).WithSuggestion("Check the path for typos")
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(issue.PermissionDeniedId).WithSuggestion("Check that the file is readable")
	default:
		var perr *fs.PathError
		if errors.As(err, &perr) && strings.Contains(perr.Err.Error(), "directory") {
			ctx.WithIssue(issue.FileNotFoundId).WithSuggestion("Pass a file, not a directory")
		}
	}
	return ctx.BuildError()
}
