// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for typeset.
//
// This package implements the Cobra command tree for the typeset CLI: the
// document commands (render, layout, check), the function listing, and
// configuration management. Commands delegate to internal/document and
// report failures as issue.ActionableError values.
package cmd
