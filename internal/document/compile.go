// SPDX-License-Identifier: MPL-2.0

package document

import (
	"context"
	"errors"
	"log/slog"

	"github.com/typeset/typeset/internal/issue"
	"github.com/typeset/typeset/pkg/funcs"
	"github.com/typeset/typeset/pkg/layout"
	"github.com/typeset/typeset/pkg/syntax"
)

// Result is a compiled document.
type Result struct {
	Tree     *syntax.SyntaxTree
	Commands layout.Commands
	// Options are the layout options after front matter was applied.
	Options layout.Options
	PassID  string
	// LaidOut counts layout calls per function name.
	LaidOut map[syntax.Ident]int
}

// Check runs the parse phase only.
func Check(doc *Document, scope *funcs.Scope) (*syntax.SyntaxTree, error) {
	tree, err := syntax.Parse(doc.Source, scope.Context())
	if err != nil {
		return nil, parseError(doc, err)
	}
	return tree, nil
}

// Compile parses doc with scope and lays out the tree. base is adjusted by
// the document's front matter.
func Compile(ctx context.Context, doc *Document, scope *funcs.Scope, base layout.Options) (*Result, error) {
	tree, err := Check(doc, scope)
	if err != nil {
		return nil, err
	}

	opts := doc.Options(base)
	shared := layout.NewShared(opts)
	slog.Debug("laying out document",
		"path", doc.Path,
		"pass", shared.PassID,
		"nodes", tree.Len(),
		"sequential", opts.Sequential)

	cmds, err := layout.Tree(ctx, tree, layout.NewContext(shared))
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("lay out document").
			WithResource(doc.Path).
			WithIssue(issue.LayoutFailedId).
			WithSuggestion("Re-run with --verbose to see the full error chain").
			Wrap(shiftPos(doc, err)).
			BuildError()
	}

	laidOut := shared.LaidOut()
	slog.Debug("document laid out", "path", doc.Path, "pass", shared.PassID, "commands", len(cmds), "calls", laidOut)

	return &Result{
		Tree:     tree,
		Commands: cmds,
		Options:  opts,
		PassID:   shared.PassID,
		LaidOut:  laidOut,
	}, nil
}

func parseError(doc *Document, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("parse document").
		WithResource(doc.Path).
		Wrap(shiftPos(doc, err))

	switch {
	case errors.Is(err, funcs.ErrUnknownFunction):
		ctx.WithIssue(issue.UnknownFunctionId).WithSuggestion("Run 'typeset funcs' to list the available functions")
	case errors.Is(err, funcs.ErrUnexpectedArguments):
		ctx.WithIssue(issue.UnexpectedArgumentsId).WithSuggestion("Remove the arguments the function does not take")
	case errors.Is(err, funcs.ErrUnexpectedBody):
		ctx.WithIssue(issue.UnexpectedBodyId).WithSuggestion("Check whether the function takes a body with 'typeset funcs'")
	default:
		ctx.WithIssue(issue.DocumentParseFailedId)
	}
	return ctx.BuildError()
}

// shiftPos makes the position of the outermost parse or layout error
// relative to the file instead of the text after the front matter.
func shiftPos(doc *Document, err error) error {
	offset := doc.BodyLine - 1
	if offset <= 0 {
		return err
	}

	var serr *syntax.Error
	if errors.As(err, &serr) && serr == err {
		shifted := *serr
		shifted.Pos.Line += offset
		return &shifted
	}
	var lerr *layout.Error
	if errors.As(err, &lerr) && lerr == err {
		shifted := *lerr
		shifted.Pos.Line += offset
		return &shifted
	}
	return err
}
