package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piraterna/piratpkg/internal/app"
	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive package picker",
	Long: `Opens an interactive TUI for browsing the packages of every branch.

Use arrow keys or j/k to navigate, / to filter.

Actions:
  Enter  - Install selected package
  u      - Uninstall selected package
  i      - Inspect selected package
  q/Esc  - Quit

Without a terminal the packages are printed instead.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	logging.Debug("picker mode started")

	entries, err := app.Default.List()
	if err != nil {
		return fmt.Errorf("failed to list packages: %w", err)
	}

	if !interactive() {
		fmt.Fprint(cmd.OutOrStdout(), tui.SimplePicker(entries))
		return nil
	}

	if len(entries) == 0 {
		logInfo("No packages found. Add <name>.pkg manifests to a configured branch.")
		return nil
	}

	result, err := tui.RunPicker(entries)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action, "package", result.Address())

	switch result.Action {
	case tui.ActionInstall:
		_, err = app.Default.Install(cmd.Context(), result.Address())
	case tui.ActionUninstall:
		_, err = app.Default.Uninstall(cmd.Context(), result.Address())
	case tui.ActionInspect:
		pkg, inspectErr := app.Default.Inspect(result.Address())
		if inspectErr != nil {
			return inspectErr
		}
		err = printPackage(cmd.OutOrStdout(), pkg, "text")
	case tui.ActionQuit, tui.ActionNone:
		// Just exit cleanly
	}

	return err
}
