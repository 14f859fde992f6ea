// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/typeset/typeset/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the typeset command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typeset",
		Short: "A document typesetter with pluggable functions",
		Long: TitleStyle.Render("typeset") + SubtitleStyle.Render(" - A document typesetter with pluggable functions") + `

typeset reads plain-text documents with inline markup and bracketed
function calls, lays them out into a stream of layout commands, and
renders that stream as terminal text.

` + SubtitleStyle.Render("Markup:") + `
  *bold*  _italic_  ` + "`mono`" + `      Style toggles
  [align: center][Title]      Function with arguments and a body
  [n]  [pagebreak]            Line and page breaks

` + SubtitleStyle.Render("Examples:") + `
  typeset render report.tps       Render a document to the terminal
  typeset layout report.tps       Print the layout commands
  typeset check report.tps        Parse a document and report errors
  typeset funcs                   List the available functions`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setup(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/typeset/config.cue)")

	rootCmd.AddCommand(newRenderCommand(app))
	rootCmd.AddCommand(newLayoutCommand(app))
	rootCmd.AddCommand(newCheckCommand(app))
	rootCmd.AddCommand(newFuncsCommand(app))
	rootCmd.AddCommand(newExplainCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting code.
// This is called by main.main().
func Execute() {
	os.Exit(Run(context.Background(), NewApp(Dependencies{})))
}

// Run executes the command tree for app and returns the exit code.
func Run(ctx context.Context, app *App) int {
	rootCmd := NewRootCommand(app)
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			printError(w, app, err)
		}),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// printError writes err for the user. In verbose mode the catalog entry
// linked to the error is rendered below it.
func printError(w io.Writer, app *App, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, app.verbose))

	explained, ok := issue.Explain(err)
	if !ok {
		return
	}
	if !app.verbose {
		fmt.Fprintln(w, SubtitleStyle.Render(fmt.Sprintf("\nRun with --verbose or 'typeset explain %d' for a detailed explanation.", explained.Id())))
		return
	}
	rendered, rerr := explained.Render(app.glamourStyle())
	if rerr != nil {
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
