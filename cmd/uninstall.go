package cmd

import (
	"github.com/spf13/cobra"

	"github.com/piraterna/piratpkg/internal/app"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <package>...",
	Short: "Uninstall packages",
	Long: `Uninstall runs the uninstall function of each package. A package
without one is reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	for _, address := range args {
		if _, err := app.Default.Uninstall(cmd.Context(), address); err != nil {
			return err
		}
	}
	return nil
}
