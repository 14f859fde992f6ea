// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrUnknownFunction is returned when an invocation names a function that is
// not registered in the parse scope.
var ErrUnknownFunction = errors.New("unknown function")

type (
	// Parser turns one invocation into a function value. Implementations are
	// registered per function name in a Scope; see package funcs.
	Parser func(header *FuncHeader, body Body, ctx ParseContext) (any, error)

	// Scope resolves function names to parsers.
	Scope interface {
		Lookup(name Ident) (Parser, bool)
	}

	// ParseContext is the state available to one parse call. It is passed by
	// value and must not be retained past the call.
	ParseContext struct {
		// Scope resolves invocations. A nil scope knows no functions.
		Scope Scope
	}

	// Error is a parse failure at a source position. Func is set when the
	// failure belongs to an invocation (including failures reported by the
	// function's own parser).
	Error struct {
		Pos  Pos
		Func Ident
		Err  error
	}

	// UnknownFunctionError wraps ErrUnknownFunction with the offending name.
	UnknownFunctionError struct {
		Name Ident
	}

	parser struct {
		src   []rune
		i     int
		line  int
		col   int
		ctx   ParseContext
		nodes []Node
		text  strings.Builder
	}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: [%s]: %v", e.Pos, e.Func, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", string(e.Name))
}

// Unwrap returns ErrUnknownFunction.
func (e *UnknownFunctionError) Unwrap() error { return ErrUnknownFunction }

// Parse parses source text into a syntax tree, dispatching every invocation
// to the parser registered for its name in ctx.Scope. Parsing stops at the
// first error.
func Parse(src string, ctx ParseContext) (*SyntaxTree, error) {
	p := &parser{
		src:  []rune(norm.NFC.String(src)),
		line: 1,
		col:  1,
		ctx:  ctx,
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return &SyntaxTree{Nodes: p.nodes}, nil
}

func (p *parser) run() error {
	for !p.eof() {
		r := p.peek()
		switch r {
		case ' ', '\t', '\r', '\n':
			p.whitespace()
		case '*':
			p.advance()
			p.push(ToggleBold{})
		case '_':
			p.advance()
			p.push(ToggleItalic{})
		case '`':
			p.advance()
			p.push(ToggleMonospace{})
		case '\\':
			p.advance()
			if p.eof() {
				p.text.WriteRune('\\')
				continue
			}
			p.text.WriteRune(p.advance())
		case '[':
			if err := p.call(); err != nil {
				return err
			}
		case ']':
			return &Error{Pos: p.pos(), Err: errors.New("unexpected closing bracket")}
		default:
			p.text.WriteRune(p.advance())
		}
	}
	p.flush()
	return nil
}

func (p *parser) whitespace() {
	newlines := 0
	for !p.eof() {
		switch p.peek() {
		case '\n':
			newlines++
		case ' ', '\t', '\r':
		default:
			p.emitSpace(newlines)
			return
		}
		p.advance()
	}
	p.emitSpace(newlines)
}

func (p *parser) emitSpace(newlines int) {
	if newlines >= 2 {
		p.push(Newline{})
		return
	}
	p.push(Space{})
}

// call parses `[header]` and an optional `[body]` directly after it.
func (p *parser) call() error {
	start := p.pos()
	p.advance() // [

	raw, err := p.header(start)
	if err != nil {
		return err
	}
	header, err := parseHeader(raw)
	if err != nil {
		return &Error{Pos: start, Func: header.Name, Err: err}
	}

	var body Body
	if !p.eof() && p.peek() == '[' {
		text, err := p.body()
		if err != nil {
			return &Error{Pos: start, Func: header.Name, Err: err}
		}
		body = BodyOf(text)
	}

	var parse Parser
	if p.ctx.Scope != nil {
		parse, _ = p.ctx.Scope.Lookup(header.Name)
	}
	if parse == nil {
		return &Error{Pos: start, Func: header.Name, Err: &UnknownFunctionError{Name: header.Name}}
	}

	value, err := parse(header, body, p.ctx)
	if err != nil {
		return &Error{Pos: start, Func: header.Name, Err: err}
	}
	p.push(&FuncCall{Name: header.Name, Pos: start, Func: value})
	return nil
}

// header returns the raw text up to the closing bracket. Brackets inside
// string literals do not count. A backslash keeps the next character
// verbatim everywhere, so an escaped bracket never closes the header; outside
// a string literal it then fails argument parsing.
func (p *parser) header(start Pos) (string, error) {
	var sb strings.Builder
	inString := false
	for !p.eof() {
		r := p.advance()
		switch {
		case r == '\\' && !p.eof():
			sb.WriteRune(r)
			sb.WriteRune(p.advance())
			continue
		case r == '"':
			inString = !inString
		case !inString && r == '[':
			return "", &Error{Pos: start, Err: errors.New("unexpected opening bracket in function header")}
		case !inString && r == ']':
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
	return "", &Error{Pos: start, Err: errors.New("unterminated function header")}
}

// body returns the raw text between balanced brackets. Escapes are kept
// verbatim so the nested parse sees them. Nested headers are scanned with the
// same rules as header, so brackets in their string literals do not count.
func (p *parser) body() (string, error) {
	p.advance() // [
	var sb strings.Builder
	// open has one entry per unclosed bracket; true marks a function header.
	open := []bool{false}
	inString := false
	afterHeader := false
	for !p.eof() {
		r := p.advance()
		sb.WriteRune(r)
		if r == '\\' && !p.eof() {
			sb.WriteRune(p.advance())
			afterHeader = false
			continue
		}

		inHeader := open[len(open)-1]
		closedHeader := false
		switch {
		case inHeader && r == '"':
			inString = !inString
		case inString:
		case r == '[':
			open = append(open, !afterHeader)
		case r == ']':
			open = open[:len(open)-1]
			if len(open) == 0 {
				return strings.TrimSuffix(sb.String(), "]"), nil
			}
			closedHeader = inHeader
		}
		afterHeader = closedHeader
	}
	return "", errors.New("unterminated function body")
}

func (p *parser) push(n Node) {
	p.flush()
	if _, ok := n.(Space); ok && len(p.nodes) > 0 {
		switch p.nodes[len(p.nodes)-1].(type) {
		case Space, Newline:
			return
		}
	}
	p.nodes = append(p.nodes, n)
}

func (p *parser) flush() {
	if p.text.Len() == 0 {
		return
	}
	p.nodes = append(p.nodes, Text(p.text.String()))
	p.text.Reset()
}

func (p *parser) eof() bool { return p.i >= len(p.src) }

func (p *parser) peek() rune { return p.src[p.i] }

func (p *parser) pos() Pos { return Pos{Line: p.line, Column: p.col} }

func (p *parser) advance() rune {
	r := p.src[p.i]
	p.i++
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

// parseHeader splits `name: a, b, key = c` into a FuncHeader.
func parseHeader(raw string) (*FuncHeader, error) {
	name, rest, hasArgs := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	header := &FuncHeader{Name: Ident(name)}
	if !isIdent(name) {
		return header, fmt.Errorf("invalid function name %q", name)
	}
	if !hasArgs || strings.TrimSpace(rest) == "" {
		return header, nil
	}

	for i, part := range splitArgs(rest) {
		part = strings.TrimSpace(part)
		if part == "" {
			return header, fmt.Errorf("empty argument %d", i+1)
		}
		if key, value, ok := cutKey(part); ok {
			if !isIdent(key) {
				return header, fmt.Errorf("invalid argument name %q", key)
			}
			e, err := ParseExpr(value)
			if err != nil {
				return header, fmt.Errorf("argument '%s': %w", key, err)
			}
			header.Args.Key = append(header.Args.Key, KeyArg{Key: Ident(key), Value: e})
			continue
		}
		e, err := ParseExpr(part)
		if err != nil {
			return header, fmt.Errorf("argument %d: %w", i+1, err)
		}
		header.Args.Pos = append(header.Args.Pos, e)
	}
	return header, nil
}

// splitArgs splits on commas outside string literals.
func splitArgs(s string) []string {
	var parts []string
	var cur strings.Builder
	inString := false
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case inString && r == '\\':
			escaped = true
		case r == '"':
			inString = !inString
		case !inString && r == ',':
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(parts, cur.String())
}

// cutKey splits `key = value` when the '=' is outside a string literal.
func cutKey(s string) (key, value string, ok bool) {
	if strings.HasPrefix(s, `"`) {
		return "", "", false
	}
	key, value, ok = strings.Cut(s, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
