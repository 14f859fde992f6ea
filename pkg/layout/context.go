// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/typeset/typeset/pkg/syntax"
)

const (
	// DefaultPageWidth is the page width in points when none is configured.
	DefaultPageWidth = 440.0
	// DefaultFontSize is the font size in points when none is configured.
	DefaultFontSize = 11.0
)

type (
	// Options configures one layout pass.
	Options struct {
		// PageWidth is the usable page width in points.
		PageWidth float64
		// FontSize is the base font size in points.
		FontSize float64
		// Sequential disables concurrent layout of sibling functions.
		Sequential bool
	}

	// Shared is the document-wide part of the layout context. It lives for a
	// whole layout pass and is shared by every concurrent layout call; its
	// fields are read-only and its methods are safe for concurrent use.
	Shared struct {
		// PassID identifies the layout pass in logs.
		PassID     string
		PageWidth  float64
		FontSize   float64
		Sequential bool

		mu      sync.Mutex
		laidOut map[syntax.Ident]int
	}

	// Context is the state available to one layout call. It is passed by
	// value: the node-local fields may be changed for nested calls without
	// affecting siblings, while Shared points to document-wide state.
	Context struct {
		Shared *Shared
		// Align is the alignment in effect where the function appears.
		Align Alignment
		// Width is the width available to the function in points.
		Width float64
		// Depth counts the trees enclosing the function; functions at the
		// document root see 1.
		Depth int
	}
)

// NewShared creates the document-wide state for one layout pass.
func NewShared(opts Options) *Shared {
	if opts.PageWidth <= 0 {
		opts.PageWidth = DefaultPageWidth
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	return &Shared{
		PassID:     uuid.NewString(),
		PageWidth:  opts.PageWidth,
		FontSize:   opts.FontSize,
		Sequential: opts.Sequential,
		laidOut:    make(map[syntax.Ident]int),
	}
}

// NewContext returns the root context for a layout pass.
func NewContext(shared *Shared) Context {
	return Context{
		Shared: shared,
		Align:  AlignLeft,
		Width:  shared.PageWidth,
	}
}

// WithAlign returns a copy of the context with a different alignment.
func (c Context) WithAlign(a Alignment) Context {
	c.Align = a
	return c
}

// WithWidth returns a copy of the context with a narrower width. Widths
// larger than the current one are clamped.
func (c Context) WithWidth(w float64) Context {
	if w > 0 && w < c.Width {
		c.Width = w
	}
	return c
}

func (c Context) nested() Context {
	c.Depth++
	return c
}

func (s *Shared) record(name syntax.Ident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.laidOut[name]++
}

// LaidOut returns how many times each function has been laid out so far.
func (s *Shared) LaidOut() map[syntax.Ident]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.laidOut)
}
