package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/manifest"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
	rootDir    string
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "piratpkg",
	Short: "piratOS source package manager",
	Long: `piratpkg installs and uninstalls packages described by .pkg manifests.

Manifests live in branches, directories listed in the configuration file.
A package address is either a bare name, probed in every branch in order,
or name:branch, probed in that branch only.

Each lifecycle function of a manifest runs line by line in a persistent
shell inside a private working directory that is removed afterwards.`,
	Version:      manifest.ToolVersion,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		return setupApp()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx. Cancelling ctx kills a
// running sandbox.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default $PIRATPKG_CONFIG or /etc/piratpkg/config.toml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Installation root, overrides the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logWarning = logging.UserWarning
)
