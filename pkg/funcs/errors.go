// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"errors"
	"fmt"

	"github.com/typeset/typeset/pkg/syntax"
)

var (
	// ErrUnexpectedArguments is returned when a function leaves arguments unconsumed.
	ErrUnexpectedArguments = errors.New("unexpected arguments")
	// ErrUnexpectedBody is returned when a body is given to a function that forbids one.
	ErrUnexpectedBody = errors.New("unexpected body")
	// ErrMissingBody is returned when a function that expects a body gets none.
	// It wraps ErrUnexpectedBody: both are body-policy violations.
	ErrMissingBody = fmt.Errorf("missing body: %w", ErrUnexpectedBody)
	// ErrUnknownFunction is returned when an invocation names an unregistered function.
	ErrUnknownFunction = syntax.ErrUnknownFunction
)

// Error is the error value function implementations return. Message is shown
// to the user as is; the optional class is exposed through Unwrap so callers
// can match it with errors.Is.
type Error struct {
	Message string
	class   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the error class, if any.
func (e *Error) Unwrap() error {
	return e.class
}

// Errorf builds an Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Fail is the early-return form of Errorf for parse and layout code:
//
//	return funcs.Fail[*Align]("invalid alignment %q", name)
func Fail[T any](format string, args ...any) (T, error) {
	var zero T
	return zero, Errorf(format, args...)
}

// unexpectedArguments reports leftover arguments. The message is the same
// for every kind.
func unexpectedArguments() *Error {
	return &Error{Message: ErrUnexpectedArguments.Error(), class: ErrUnexpectedArguments}
}

func unexpectedBody() *Error {
	return &Error{Message: ErrUnexpectedBody.Error(), class: ErrUnexpectedBody}
}

// missingBody keeps the unexpected body message; only the class differs.
func missingBody() *Error {
	return &Error{Message: ErrUnexpectedBody.Error(), class: ErrMissingBody}
}
