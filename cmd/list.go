package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piraterna/piratpkg/internal/app"
	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/repo"
)

var listCmd = &cobra.Command{
	Use:     "list [branch]",
	Aliases: []string{"ls"},
	Short:   "List available packages",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	entries, err := app.Default.List()
	if err != nil {
		return fmt.Errorf("failed to list packages: %w", err)
	}

	if len(args) == 1 {
		branch := args[0]
		if _, ok := app.Default.Config.FindBranch(branch); !ok {
			return errors.BranchNotFound(branch)
		}
		entries = filterBranch(entries, branch)
	}

	if len(entries) == 0 {
		logInfo("No packages found. Add <name>.pkg manifests to a configured branch.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBRANCH\tMANIFEST")
	fmt.Fprintln(w, "----\t------\t--------")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Branch, e.Path)
	}

	return w.Flush()
}

func filterBranch(entries []repo.Entry, branch string) []repo.Entry {
	var out []repo.Entry
	for _, e := range entries {
		if e.Branch == branch {
			out = append(out, e)
		}
	}
	return out
}
