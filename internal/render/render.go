// SPDX-License-Identifier: MPL-2.0

// Package render turns a layout command stream into terminal text.
package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/typeset/typeset/pkg/layout"
)

const (
	// PointsPerColumn is the width of one terminal column in points.
	PointsPerColumn = 5.5
	// DefaultWidth is the output width in columns when none is given.
	DefaultWidth = 80
	// MaxBlankLines caps the blank lines of one vertical spacing.
	MaxBlankLines = 100
)

// Options configures Render.
type Options struct {
	// Width is the line width in columns.
	Width int
	// FontSize is the line height in points used for vertical spacing.
	FontSize float64
	// Color enables terminal styling. Styles are still subject to the
	// color profile lipgloss detects for the output.
	Color bool
}

var ruleStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#555555"})

type (
	token struct {
		text  string
		width int
		// space is a collapsible word separator; fixed spacing is a word.
		space bool
	}

	renderer struct {
		opts Options

		bold, italic, mono bool
		align              layout.Alignment

		words []token
		cur   strings.Builder
		curW  int

		out []string
		gap bool
	}
)

// Render interprets cmds in order and returns the resulting text. Text is
// wrapped greedily at opts.Width and each paragraph is aligned with the
// alignment in effect when it ends.
func Render(cmds layout.Commands, opts Options) string {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.FontSize <= 0 {
		opts.FontSize = layout.DefaultFontSize
	}

	r := &renderer{opts: opts}
	for _, c := range cmds {
		r.apply(c)
	}
	r.flush()

	if len(r.out) == 0 {
		return ""
	}
	return strings.Join(r.out, "\n") + "\n"
}

func (r *renderer) apply(c layout.Command) {
	switch c := c.(type) {
	case layout.AddText:
		r.cur.WriteString(r.style(c.Text))
		r.curW += lipgloss.Width(c.Text)
	case layout.AddSpace:
		r.endWord()
		r.words = append(r.words, token{space: true, width: 1})
	case layout.AddSpacing:
		r.spacing(c)
	case layout.ToggleStyle:
		switch c.Class {
		case layout.Bold:
			r.bold = !r.bold
		case layout.Italic:
			r.italic = !r.italic
		case layout.Monospace:
			r.mono = !r.mono
		}
	case layout.SetAlignment:
		r.flush()
		r.align = c.Align
	case layout.BreakLine:
		if !r.flush() {
			r.emit("")
		}
	case layout.BreakParagraph:
		r.flush()
		r.gap = true
	case layout.BreakPage:
		r.flush()
		r.gap = false
		r.out = append(r.out, r.rule())
	}
}

// spacing emits at most MaxBlankLines lines or one line width of columns.
// Sizes that round to nothing produce no output.
func (r *renderer) spacing(c layout.AddSpacing) {
	if c.Size <= 0 || math.IsNaN(c.Size) || math.IsInf(c.Size, 1) {
		return
	}
	if c.Axis == layout.Vertical {
		lines := int(min(math.Round(c.Size/r.opts.FontSize), MaxBlankLines))
		if lines <= 0 {
			return
		}
		r.flush()
		for range lines {
			r.out = append(r.out, "")
		}
		r.gap = false
		return
	}
	cols := int(min(math.Round(c.Size/PointsPerColumn), float64(r.opts.Width)))
	if cols <= 0 {
		return
	}
	r.endWord()
	r.words = append(r.words, token{text: strings.Repeat(" ", cols), width: cols})
}

func (r *renderer) style(s string) string {
	if !r.opts.Color || !(r.bold || r.italic || r.mono) {
		return s
	}
	return lipgloss.NewStyle().Bold(r.bold).Italic(r.italic).Underline(r.mono).Render(s)
}

func (r *renderer) endWord() {
	if r.curW == 0 && r.cur.Len() == 0 {
		return
	}
	r.words = append(r.words, token{text: r.cur.String(), width: r.curW})
	r.cur.Reset()
	r.curW = 0
}

// flush wraps and emits the pending paragraph text. It reports whether
// anything was emitted.
func (r *renderer) flush() bool {
	r.endWord()
	words := r.words
	r.words = r.words[:0]

	var (
		line    strings.Builder
		lineW   int
		pending bool
		emitted bool
	)
	for _, w := range words {
		if w.space {
			pending = lineW > 0
			continue
		}
		need := w.width
		if pending {
			need++
		}
		if lineW > 0 && lineW+need > r.opts.Width {
			r.emit(line.String())
			emitted = true
			line.Reset()
			lineW, pending = 0, false
			need = w.width
		}
		if pending {
			line.WriteByte(' ')
		}
		line.WriteString(w.text)
		lineW += need
		pending = false
	}
	if lineW > 0 {
		r.emit(line.String())
		emitted = true
	}
	return emitted
}

func (r *renderer) emit(line string) {
	if r.gap && len(r.out) > 0 {
		r.out = append(r.out, "")
	}
	r.gap = false

	pos := lipgloss.Left
	switch r.align {
	case layout.AlignCenter:
		pos = lipgloss.Center
	case layout.AlignRight:
		pos = lipgloss.Right
	}
	if pos != lipgloss.Left {
		line = lipgloss.PlaceHorizontal(r.opts.Width, pos, line)
	}
	r.out = append(r.out, strings.TrimRight(line, " "))
}

func (r *renderer) rule() string {
	rule := strings.Repeat("─", r.opts.Width)
	if r.opts.Color {
		return ruleStyle.Render(rule)
	}
	return rule
}
