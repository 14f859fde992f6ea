// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities: a size guard for
// user files, path-prefixed error formatting, and the schema-checked decode
// flow
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed frontmatter_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[FrontMatter](
//	    schema,
//	    data,
//	    "#FrontMatter",
//	    cueutil.WithFilename("report.tps"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//	return result.Value, nil
package cueutil
