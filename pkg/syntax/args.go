// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrArgumentType is returned when an argument has the wrong expression kind.
	ErrArgumentType = errors.New("argument type mismatch")
	// ErrMissingArgument is returned when a required argument is absent.
	ErrMissingArgument = errors.New("missing argument")
)

type (
	// KeyArg is a keyword argument (`key = value`).
	KeyArg struct {
		Key   Ident
		Value Expr
	}

	// FuncArgs holds the positional and keyword arguments of one invocation,
	// in source order. Function parsers consume arguments with the Take*
	// methods; whatever is left after parsing is reported as unexpected.
	FuncArgs struct {
		Pos []Expr
		Key []KeyArg
	}

	// FuncHeader is the parsed `[name: args]` part of an invocation.
	FuncHeader struct {
		Name Ident
		Args FuncArgs
	}

	// ArgumentTypeError is returned when an argument has an unexpected kind.
	// It wraps ErrArgumentType for errors.Is() compatibility.
	ArgumentTypeError struct {
		// Arg is a description of the argument ("argument 1", "argument 'width'").
		Arg  string
		Want string
		Got  Expr
	}

	// MissingArgumentError is returned when a required argument is absent.
	// It wraps ErrMissingArgument for errors.Is() compatibility.
	MissingArgumentError struct {
		Arg string
	}
)

// Error implements the error interface.
func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s %s", e.Arg, e.Want, e.Got.Kind(), e.Got)
}

// Unwrap returns ErrArgumentType.
func (e *ArgumentTypeError) Unwrap() error { return ErrArgumentType }

// Error implements the error interface.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing %s", e.Arg)
}

// Unwrap returns ErrMissingArgument.
func (e *MissingArgumentError) Unwrap() error { return ErrMissingArgument }

// Len returns the number of remaining arguments.
func (a *FuncArgs) Len() int {
	return len(a.Pos) + len(a.Key)
}

// IsEmpty reports whether every argument has been consumed.
func (a *FuncArgs) IsEmpty() bool {
	return a.Len() == 0
}

// TakePos removes and returns the first positional argument.
func (a *FuncArgs) TakePos() (Expr, bool) {
	if len(a.Pos) == 0 {
		return nil, false
	}
	e := a.Pos[0]
	a.Pos = a.Pos[1:]
	return e, true
}

// TakeKey removes and returns the keyword argument with the given name.
// If the key was given more than once, the first occurrence is returned and
// the rest stay behind (and are later reported as unexpected).
func (a *FuncArgs) TakeKey(name Ident) (Expr, bool) {
	idx := slices.IndexFunc(a.Key, func(k KeyArg) bool { return k.Key == name })
	if idx < 0 {
		return nil, false
	}
	e := a.Key[idx].Value
	a.Key = slices.Delete(a.Key, idx, idx+1)
	return e, true
}

// Clear drops all remaining arguments.
func (a *FuncArgs) Clear() {
	a.Pos = nil
	a.Key = nil
}

// String renders the remaining arguments the way they would be written.
func (a *FuncArgs) String() string {
	parts := make([]string, 0, a.Len())
	for _, e := range a.Pos {
		parts = append(parts, e.String())
	}
	for _, k := range a.Key {
		parts = append(parts, string(k.Key)+" = "+k.Value.String())
	}
	return strings.Join(parts, ", ")
}

// TakePosIdent removes the first positional argument and requires it to be an identifier.
func (a *FuncArgs) TakePosIdent(what string) (Ident, error) {
	e, ok := a.TakePos()
	if !ok {
		return "", &MissingArgumentError{Arg: what}
	}
	id, ok := e.(Ident)
	if !ok {
		return "", &ArgumentTypeError{Arg: what, Want: "identifier", Got: e}
	}
	return id, nil
}

// TakePosSize removes the first positional argument and requires it to be a size.
func (a *FuncArgs) TakePosSize(what string) (Size, error) {
	e, ok := a.TakePos()
	if !ok {
		return 0, &MissingArgumentError{Arg: what}
	}
	s, ok := e.(Size)
	if !ok {
		return 0, &ArgumentTypeError{Arg: what, Want: "size", Got: e}
	}
	return s, nil
}

// TakePosStr removes the first positional argument if it is a string.
// It reports false when no positional argument is left.
func (a *FuncArgs) TakePosStr(what string) (Str, bool, error) {
	e, ok := a.TakePos()
	if !ok {
		return "", false, nil
	}
	s, ok := e.(Str)
	if !ok {
		return "", true, &ArgumentTypeError{Arg: what, Want: "string", Got: e}
	}
	return s, true, nil
}

// TakeKeySize removes the keyword argument name if present and requires it to be a size.
func (a *FuncArgs) TakeKeySize(name Ident) (Size, bool, error) {
	e, ok := a.TakeKey(name)
	if !ok {
		return 0, false, nil
	}
	s, ok := e.(Size)
	if !ok {
		return 0, true, &ArgumentTypeError{Arg: "argument '" + string(name) + "'", Want: "size", Got: e}
	}
	return s, true, nil
}
