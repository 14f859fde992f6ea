// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/typeset/typeset/pkg/library"
)

func newFuncsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Short: "List the available document functions",
		Long: `List the available document functions.

Each function is shown with its arguments, how it treats a body, and a
short description. Functions marked "no output" are parsed but produce no
layout commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFuncs(app)
		},
	}
}

func listFuncs(app *App) error {
	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Functions"))
	fmt.Fprintln(w)

	for _, e := range library.Catalog() {
		kind, ok := app.Scope.Kind(e.Name)
		if !ok {
			continue
		}

		body := string(e.Body)
		if body == "" {
			body = "ignored"
		}
		line := funcNameStyle.Render(string(e.Name)) + funcArgsStyle.Render(e.Args) + SubtitleStyle.Render("body: "+body)
		if !kind.Layout {
			line += SubtitleStyle.Render(", no output")
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "  %s\n", e.Summary)

		if app.verbose {
			meta := ""
			if kind.Meta != (struct{}{}) {
				meta = fmt.Sprintf(" meta=%v", kind.Meta)
			}
			fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render(fmt.Sprintf("type=%s%s", kind.Type, meta)))
		}
	}
	return nil
}
