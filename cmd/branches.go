package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piraterna/piratpkg/internal/app"
	"github.com/piraterna/piratpkg/internal/system"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Show the configured branches in probe order",
	Args:  cobra.NoArgs,
	RunE:  runBranches,
}

func init() {
	rootCmd.AddCommand(branchesCmd)
}

func runBranches(cmd *cobra.Command, args []string) error {
	a := app.Default

	if len(a.Config.Branches) == 0 {
		logInfo("No branches configured. Add [[branch]] tables to the configuration file.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH\tSTATUS")
	fmt.Fprintln(w, "----\t----\t------")

	for _, b := range a.Config.Branches {
		dir := a.Config.BranchDir(b)
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, dir, dirStatus(system.IsDir(a.FS, dir)))
	}

	return w.Flush()
}

func dirStatus(ok bool) string {
	if ok {
		return "✓ present"
	}
	return "✗ missing"
}
