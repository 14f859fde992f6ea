// SPDX-License-Identifier: MPL-2.0

// Package layout runs the second phase of function execution: turning parsed
// syntax trees and function values into Commands, the ordered layout
// directives consumed by a renderer.
//
// A function value takes part in layout by implementing Func. Layout calls
// for sibling functions may run concurrently, so a Func must treat its
// receiver and the Context as read-only; document-wide state lives behind the
// synchronized Shared value. A Func may lay out nested content (for example
// its parsed body) with Tree or Spawn and wait for the result before
// producing its own Commands.
package layout
