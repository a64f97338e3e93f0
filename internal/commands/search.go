package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks by title",
	Long: `Search tasks whose title contains the query, ignoring case.

Accepts the same filter and sort flags as 'taskbit ls'.`,
	Args: cobra.MinimumNArgs(1),
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		spec, err := specFromFlags(cmd)
		if err != nil {
			a.printError(err)
			return
		}
		spec.SearchTitle = strings.Join(args, " ")
		runList(a, cmd, spec)
	}),
}

func init() {
	addListFlags(searchCmd)
}
