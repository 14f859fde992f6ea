// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/typeset/typeset/pkg/layout"
	"github.com/typeset/typeset/pkg/syntax"
)

type (
	// NoMeta is the metadata type of kinds that need none.
	NoMeta = struct{}

	// ParseFn is the parse capability of a function kind. It consumes the
	// arguments it understands from header.Args, applies a body policy, and
	// returns the kind's value. meta is the value given at registration.
	ParseFn[T, M any] func(header *syntax.FuncHeader, body syntax.Body, ctx syntax.ParseContext, meta M) (T, error)

	// Kind describes a registered function.
	Kind struct {
		Name syntax.Ident
		// Type is the Go type of the parsed value.
		Type reflect.Type
		// Meta is the registered metadata value.
		Meta any
		// Layout reports whether values of this kind implement layout.Func.
		Layout bool
	}

	// Scope maps function names to their parsers. Scopes are filled once at
	// startup and are read-only afterwards, so concurrent lookups are safe.
	Scope struct {
		parsers map[syntax.Ident]syntax.Parser
		kinds   map[syntax.Ident]Kind
	}
)

var layoutFuncType = reflect.TypeFor[layout.Func]()

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		parsers: make(map[syntax.Ident]syntax.Parser),
		kinds:   make(map[syntax.Ident]Kind),
	}
}

// Add registers a kind without metadata under name.
func Add[T any](s *Scope, name syntax.Ident, parse ParseFn[T, NoMeta]) {
	AddWithMeta(s, name, parse, NoMeta{})
}

// AddWithMeta registers a kind under name. meta is passed to every parse
// call for this name; the same kind may be registered under several names
// with different metadata.
//
// Registration happens at build time, so an empty or duplicate name panics.
func AddWithMeta[T, M any](s *Scope, name syntax.Ident, parse ParseFn[T, M], meta M) {
	if name == "" {
		panic("funcs: empty function name")
	}
	if _, exists := s.parsers[name]; exists {
		panic(fmt.Sprintf("funcs: function %q registered twice", name))
	}

	typ := reflect.TypeFor[T]()
	s.parsers[name] = checked(parse, meta)
	s.kinds[name] = Kind{
		Name:   name,
		Type:   typ,
		Meta:   meta,
		Layout: typ.Implements(layoutFuncType),
	}
}

// checked wraps parse with the argument exhaustion check.
func checked[T, M any](parse ParseFn[T, M], meta M) syntax.Parser {
	return func(header *syntax.FuncHeader, body syntax.Body, ctx syntax.ParseContext) (any, error) {
		value, err := parse(header, body, ctx, meta)
		if err != nil {
			return nil, err
		}
		if !header.Args.IsEmpty() {
			slog.Debug("function left arguments unconsumed", "func", header.Name, "args", header.Args.String())
			return nil, unexpectedArguments()
		}
		return value, nil
	}
}

// Lookup implements syntax.Scope.
func (s *Scope) Lookup(name syntax.Ident) (syntax.Parser, bool) {
	p, ok := s.parsers[name]
	return p, ok
}

// Kind returns the description of the function registered under name.
func (s *Scope) Kind(name syntax.Ident) (Kind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// Names returns all registered names in sorted order.
func (s *Scope) Names() []syntax.Ident {
	names := make([]syntax.Ident, 0, len(s.kinds))
	for name := range s.kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Invoke parses one invocation directly, without going through the document
// parser. The header is consumed.
func (s *Scope) Invoke(header *syntax.FuncHeader, body syntax.Body) (any, error) {
	parse, ok := s.Lookup(header.Name)
	if !ok {
		return nil, &syntax.UnknownFunctionError{Name: header.Name}
	}
	return parse(header, body, syntax.ParseContext{Scope: s})
}

// Context returns a parse context that resolves functions in this scope.
func (s *Scope) Context() syntax.ParseContext {
	return syntax.ParseContext{Scope: s}
}
