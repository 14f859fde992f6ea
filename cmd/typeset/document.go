// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/spf13/cobra"

	"github.com/typeset/typeset/internal/config"
	"github.com/typeset/typeset/internal/document"
	"github.com/typeset/typeset/internal/render"
	"github.com/typeset/typeset/internal/watch"
)

type (
	// renderFlags are the flags of the render command.
	renderFlags struct {
		width      int
		sequential bool
		plain      bool
		watch      bool
	}

	// layoutFlags are the flags of the layout command.
	layoutFlags struct {
		json       bool
		sequential bool
	}
)

func newRenderCommand(app *App) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document as terminal text",
		Long: `Render a document as terminal text.

The document is parsed, laid out, and the resulting layout commands are
drawn with word wrapping at the page width. Front matter settings override
the configuration; flags override both.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), app, args[0], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, "page width in columns (overrides config and front matter)")
	cmd.Flags().BoolVar(&flags.sequential, "sequential", false, "lay out functions one after another")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "disable terminal styling")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "render again whenever the document or config file changes")

	return cmd
}

func newLayoutCommand(app *App) *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout <file>",
		Short: "Print the layout commands of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), app, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print the commands as a JSON array")
	cmd.Flags().BoolVar(&flags.sequential, "sequential", false, "lay out functions one after another")

	return cmd
}

func newCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a document and report errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(app, args[0])
		},
	}
}

// load reads path and applies the overrides given on the command line.
func load(path string, width int, sequential bool) (*document.Document, error) {
	if width != 0 {
		if ok, errs := config.PageWidth(width).IsValid(); !ok {
			return nil, errs[0]
		}
	}

	doc, err := document.Load(path)
	if err != nil {
		return nil, &ExitError{Code: ExitDocument, Err: err}
	}
	if width != 0 {
		doc.FrontMatter.PageWidth = width
	}
	if sequential {
		doc.FrontMatter.Sequential = &sequential
	}
	return doc, nil
}

func compile(ctx context.Context, app *App, doc *document.Document) (*document.Result, error) {
	res, err := document.Compile(ctx, doc, app.Scope, app.cfg.LayoutOptions())
	if err != nil {
		return nil, &ExitError{Code: ExitDocument, Err: err}
	}
	return res, nil
}

func runRender(ctx context.Context, app *App, path string, flags renderFlags) error {
	if flags.watch {
		return watchRender(ctx, app, path, flags)
	}
	return renderOnce(ctx, app, path, flags)
}

// watchRender renders path and then again after every change to it or to
// the config file, until ctx is cancelled. Errors are printed, not returned.
func watchRender(ctx context.Context, app *App, path string, flags renderFlags) error {
	files := []string{path}
	cfgPath, err := app.Config.Resolve(app.loadOptions())
	if err == nil && cfgPath != "" {
		files = append(files, cfgPath)
	}

	w, err := watch.New(watch.Config{
		Files:       files,
		ClearScreen: !flags.plain,
		Stdout:      app.stdout,
		Stderr:      app.stderr,
		OnChange: func(ctx context.Context, changed []string) error {
			if slices.Contains(changed, cfgPath) {
				cfg, err := app.Config.Load(ctx, app.loadOptions())
				if err != nil {
					return err
				}
				app.cfg = cfg
			}
			return renderAndReport(ctx, app, path, flags)
		},
	})
	if err != nil {
		return err
	}

	if !flags.plain {
		fmt.Fprint(app.stdout, "\033[2J\033[H")
	}
	if err := renderAndReport(ctx, app, path, flags); err != nil {
		return err
	}
	slog.Info("watching for changes", "files", files)
	return w.Run(ctx)
}

// renderAndReport renders path and prints document errors instead of
// returning them.
func renderAndReport(ctx context.Context, app *App, path string, flags renderFlags) error {
	err := renderOnce(ctx, app, path, flags)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		printError(app.stderr, app, err)
		return nil
	}
	return err
}

func renderOnce(ctx context.Context, app *App, path string, flags renderFlags) error {
	doc, err := load(path, flags.width, flags.sequential)
	if err != nil {
		return err
	}
	res, err := compile(ctx, app, doc)
	if err != nil {
		return err
	}

	opts := render.Options{
		Width:    int(math.Round(res.Options.PageWidth / render.PointsPerColumn)),
		FontSize: res.Options.FontSize,
		Color:    !flags.plain,
	}
	slog.Debug("rendering document", "path", path, "width", opts.Width, "commands", len(res.Commands))

	if title := doc.FrontMatter.Title; title != "" {
		if !flags.plain {
			title = TitleStyle.Render(title)
		}
		fmt.Fprintf(app.stdout, "%s\n\n", title)
	}
	fmt.Fprint(app.stdout, render.Render(res.Commands, opts))
	return nil
}

func runLayout(ctx context.Context, app *App, path string, flags layoutFlags) error {
	doc, err := load(path, 0, flags.sequential)
	if err != nil {
		return err
	}
	res, err := compile(ctx, app, doc)
	if err != nil {
		return err
	}

	if flags.json {
		data, err := json.MarshalIndent(res.Commands, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode layout commands: %w", err)
		}
		fmt.Fprintln(app.stdout, string(data))
		return nil
	}

	for _, c := range res.Commands {
		fmt.Fprintln(app.stdout, c.String())
	}
	return nil
}

func runCheck(app *App, path string) error {
	doc, err := load(path, 0, false)
	if err != nil {
		return err
	}
	tree, err := document.Check(doc, app.Scope)
	if err != nil {
		return &ExitError{Code: ExitDocument, Err: err}
	}

	fmt.Fprintf(app.stdout, "%s %s: %d top-level nodes\n", SuccessStyle.Render("✓"), path, tree.Len())
	return nil
}
