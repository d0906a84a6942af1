package cmd

import (
	"fmt"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/piraterna/piratpkg/internal/app"
	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/logging"
)

var execCmd = &cobra.Command{
	Use:   "exec <package> -- <command>",
	Short: "Execute a command in a package sandbox",
	Long: `Exec starts the sandbox a package would be installed in, with the
manifest environment applied, runs one command and removes the sandbox.
No lifecycle function is run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	address := args[0]

	// Find the command to execute (everything after --)
	dash := cmd.ArgsLenAtDash()
	if dash != 1 || len(args) < 2 {
		return errors.New(errors.ExitGeneralError, "usage: piratpkg exec <package> -- <command>")
	}
	cmdStr := shellquote.Join(args[dash:]...)

	pkg, err := app.Default.Loader().Load(address)
	if err != nil {
		return err
	}
	defer func() {
		if err := pkg.Close(); err != nil {
			logging.Warn("sandbox teardown failed", "package", pkg.Name, "error", err)
		}
	}()

	logging.Debug("executing in sandbox", "package", pkg.Name, "command", cmdStr)

	code, err := pkg.Shell().Exec(cmd.Context(), cmdStr, false)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.FunctionFailed("exec", cmdStr, fmt.Errorf("exit status %d", code))
	}
	return nil
}
