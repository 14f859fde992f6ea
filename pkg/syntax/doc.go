// SPDX-License-Identifier: MPL-2.0

// Package syntax provides the document scanner and parser and the data types
// shared between the parser and function implementations: invocation headers,
// argument lists, bodies and syntax trees.
//
// A document is plain text with inline style toggles and function
// invocations:
//
//	Some *bold* text and [align: center][a centered paragraph].
//
// The parser does not know any concrete function. When it meets an invocation
// it asks the ParseContext's Scope for a Parser registered under that name
// and stores whatever value the parser returns in a FuncCall node. See
// package funcs for the parse protocol and package layout for the layout
// protocol.
package syntax
