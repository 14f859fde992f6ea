// SPDX-License-Identifier: MPL-2.0

// Package funcs defines how function (command) kinds are parsed and registered.
//
// Every kind supplies a ParseFn that turns an invocation header, an optional
// body, the parse context and the kind's static metadata into a typed value.
// Kinds are wired into a Scope at build time:
//
//	scope := funcs.NewScope()
//	funcs.Add(scope, "bold", funcs.WithBody(parseBold))
//	funcs.AddWithMeta(scope, "italic", parseToggle, layout.Italic)
//
// The Scope wraps each ParseFn so that arguments the kind did not consume are
// rejected with ErrUnexpectedArguments; no kind can silently ignore input.
// Body handling is delegated to the Forbidden, Optional and Expected policies.
//
// The values a kind produces are laid out later through package layout.
package funcs
