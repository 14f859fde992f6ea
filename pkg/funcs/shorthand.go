// SPDX-License-Identifier: MPL-2.0

package funcs

import "github.com/typeset/typeset/pkg/syntax"

// Default returns a parser that never looks at the header or body and always
// yields the zero value of T. Leftover arguments are still rejected by the
// scope, so `[n: 1]` fails even though the parser itself cannot.
func Default[T any]() ParseFn[T, NoMeta] {
	return func(*syntax.FuncHeader, syntax.Body, syntax.ParseContext, NoMeta) (T, error) {
		var zero T
		return zero, nil
	}
}

// Nullary adapts a parser that needs none of its inputs.
func Nullary[T any](fn func() (T, error)) ParseFn[T, NoMeta] {
	return func(*syntax.FuncHeader, syntax.Body, syntax.ParseContext, NoMeta) (T, error) {
		return fn()
	}
}

// WithHeader adapts a parser that only reads the header.
func WithHeader[T any](fn func(header *syntax.FuncHeader) (T, error)) ParseFn[T, NoMeta] {
	return func(header *syntax.FuncHeader, _ syntax.Body, _ syntax.ParseContext, _ NoMeta) (T, error) {
		return fn(header)
	}
}

// WithBody adapts a parser that reads the header and body.
func WithBody[T any](fn func(header *syntax.FuncHeader, body syntax.Body) (T, error)) ParseFn[T, NoMeta] {
	return func(header *syntax.FuncHeader, body syntax.Body, _ syntax.ParseContext, _ NoMeta) (T, error) {
		return fn(header, body)
	}
}

// WithContext adapts a parser that needs everything except metadata.
func WithContext[T any](fn func(header *syntax.FuncHeader, body syntax.Body, ctx syntax.ParseContext) (T, error)) ParseFn[T, NoMeta] {
	return func(header *syntax.FuncHeader, body syntax.Body, ctx syntax.ParseContext, _ NoMeta) (T, error) {
		return fn(header, body, ctx)
	}
}
