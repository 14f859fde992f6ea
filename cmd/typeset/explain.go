// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/typeset/typeset/internal/issue"
)

func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [id]",
		Short: "Explain an error from the issue catalog",
		Long: `Explain an error from the issue catalog.

Without arguments the catalog is listed. Errors that have an entry print its
id, and 'typeset explain <id>' shows the full explanation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listIssues(app)
			}
			return explainIssue(app, args[0])
		},
	}
}

func listIssues(app *App) error {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Issues"))
	fmt.Fprintln(app.stdout)
	for _, i := range issue.Values() {
		fmt.Fprintf(app.stdout, "%s %s\n", CmdStyle.Width(4).Render(strconv.Itoa(int(i.Id()))), i.Title())
	}
	return nil
}

func explainIssue(app *App, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid issue id %q: expected a number", arg)
	}
	i := issue.Get(issue.Id(n))
	if i == nil {
		return fmt.Errorf("unknown issue id %d, run 'typeset explain' to list them", n)
	}
	rendered, err := i.Render(app.glamourStyle())
	if err != nil {
		return fmt.Errorf("failed to render issue %d: %w", n, err)
	}
	fmt.Fprint(app.stdout, rendered)
	return nil
}
