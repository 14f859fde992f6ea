// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/typeset/typeset/pkg/syntax"
)

type (
	// Func is the layout capability of a function value. Layout must not
	// modify the receiver: the same value may be laid out several times and
	// concurrently with its siblings.
	Func interface {
		Layout(ctx context.Context, lc Context) (Commands, error)
	}

	// LayoutFn adapts an ordinary function to Func.
	//
	//nolint:revive // LayoutFn reads better than Fn at call sites
	LayoutFn func(ctx context.Context, lc Context) (Commands, error)

	// Future is a layout call running in the background.
	Future struct {
		done chan struct{}
		cmds Commands
		err  error
	}

	// Error is a layout failure of one function invocation.
	Error struct {
		Func syntax.Ident
		Pos  syntax.Pos
		Err  error
	}
)

// Layout implements Func.
func (fn LayoutFn) Layout(ctx context.Context, lc Context) (Commands, error) {
	return fn(ctx, lc)
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: [%s]: %v", e.Pos, e.Func, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Spawn starts f.Layout in the background. The result is available through
// Await once the call has finished.
func Spawn(ctx context.Context, f Func, lc Context) *Future {
	fut := &Future{done: make(chan struct{})}
	go func() {
		defer close(fut.done)
		fut.cmds, fut.err = f.Layout(ctx, lc)
	}()
	return fut
}

// Await waits for the spawned call to finish and returns its result.
// It returns early with ctx's error if ctx is done first.
func (f *Future) Await(ctx context.Context) (Commands, error) {
	select {
	case <-f.done:
		return f.cmds, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TreeOf returns a Func that lays out tree.
func TreeOf(tree *syntax.SyntaxTree) Func {
	return LayoutFn(func(ctx context.Context, lc Context) (Commands, error) {
		return Tree(ctx, tree, lc)
	})
}

// Tree lays out a syntax tree. Text and style nodes map directly to
// commands; function calls are dispatched to their value's Func. Sibling
// function calls run concurrently unless the pass is sequential, and their
// results are merged in document order. The first failing call aborts the
// tree. A nil tree produces no commands.
func Tree(ctx context.Context, tree *syntax.SyntaxTree, lc Context) (Commands, error) {
	if tree.Len() == 0 {
		return Commands{}, nil
	}

	parts := make([]Commands, len(tree.Nodes))
	var calls []int
	for i, n := range tree.Nodes {
		switch n := n.(type) {
		case syntax.Text:
			parts[i] = Commands{AddText{Text: string(n)}}
		case syntax.Space:
			parts[i] = Commands{AddSpace{}}
		case syntax.Newline:
			parts[i] = Commands{BreakParagraph{}}
		case syntax.ToggleBold:
			parts[i] = Commands{ToggleStyle{Class: Bold}}
		case syntax.ToggleItalic:
			parts[i] = Commands{ToggleStyle{Class: Italic}}
		case syntax.ToggleMonospace:
			parts[i] = Commands{ToggleStyle{Class: Monospace}}
		case *syntax.FuncCall:
			calls = append(calls, i)
		}
	}

	inner := lc.nested()
	if lc.Shared == nil || lc.Shared.Sequential {
		for _, i := range calls {
			cmds, err := call(ctx, tree.Nodes[i].(*syntax.FuncCall), inner)
			if err != nil {
				return nil, err
			}
			parts[i] = cmds
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for _, i := range calls {
			g.Go(func() error {
				cmds, err := call(gctx, tree.Nodes[i].(*syntax.FuncCall), inner)
				if err != nil {
					return err
				}
				parts[i] = cmds
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var out Commands
	for _, p := range parts {
		out = append(out, p...)
	}
	if out == nil {
		out = Commands{}
	}
	return out, nil
}

// call lays out one function invocation. Values without a layout
// capability produce no commands.
func call(ctx context.Context, fc *syntax.FuncCall, lc Context) (Commands, error) {
	f, ok := fc.Func.(Func)
	if !ok {
		slog.Debug("function has no layout", "func", fc.Name, "pos", fc.Pos.String())
		return nil, nil
	}
	if lc.Shared != nil {
		lc.Shared.record(fc.Name)
	}
	cmds, err := f.Layout(ctx, lc)
	if err != nil {
		return nil, &Error{Func: fc.Name, Pos: fc.Pos, Err: err}
	}
	return cmds, nil
}
