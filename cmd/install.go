package cmd

import (
	"github.com/spf13/cobra"

	"github.com/piraterna/piratpkg/internal/app"
)

var installCmd = &cobra.Command{
	Use:   "install <package>...",
	Short: "Install packages",
	Long: `Install runs every lifecycle function of each package except uninstall,
in the order they appear in the manifest. The first failing command aborts
the package.

Examples:
  piratpkg install hello
  piratpkg install hello:core vim:extra`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	for _, address := range args {
		if _, err := app.Default.Install(cmd.Context(), address); err != nil {
			return err
		}
	}
	return nil
}
