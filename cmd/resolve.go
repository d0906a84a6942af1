package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piraterna/piratpkg/internal/app"
	"github.com/piraterna/piratpkg/internal/logging"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <package>",
	Short: "Print the manifest path for a package",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	loc, err := app.Default.Resolver().Resolve(args[0])
	if err != nil {
		return err
	}

	logging.Debug("package resolved", "address", loc.Address.String(), "branch", loc.Branch)
	fmt.Fprintln(cmd.OutOrStdout(), loc.Path)
	return nil
}
