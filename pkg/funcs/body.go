// SPDX-License-Identifier: MPL-2.0

package funcs

import "github.com/typeset/typeset/pkg/syntax"

// BodyPolicy names how a function treats a body. It is informational: the
// policy itself is enforced by calling Forbidden, Optional or Expected from
// the function's ParseFn.
type BodyPolicy string

const (
	// BodyForbidden rejects any body.
	BodyForbidden BodyPolicy = "forbidden"
	// BodyOptional parses a body when one is given.
	BodyOptional BodyPolicy = "optional"
	// BodyExpected requires a body.
	BodyExpected BodyPolicy = "expected"
)

// Forbidden fails with ErrUnexpectedBody when a body is present.
func Forbidden(body syntax.Body) error {
	if body.Present() {
		return unexpectedBody()
	}
	return nil
}

// Optional parses the body as nested document content under ctx.
// An absent body yields a nil tree and no error.
func Optional(body syntax.Body, ctx syntax.ParseContext) (*syntax.SyntaxTree, error) {
	text, ok := body.Text()
	if !ok {
		return nil, nil
	}
	return syntax.Parse(text, ctx)
}

// Expected is like Optional but fails with ErrMissingBody when no body is given.
func Expected(body syntax.Body, ctx syntax.ParseContext) (*syntax.SyntaxTree, error) {
	if !body.Present() {
		return nil, missingBody()
	}
	return Optional(body, ctx)
}
