package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/piraterna/piratpkg/internal/app"
	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/manifest"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <package>",
	Short: "Show the parsed manifest of a package",
	Long: `Inspect resolves a package, follows redirects and prints the parsed
manifest: metadata, lifecycle functions with the commands they run, and
the environment the sandbox would receive. No sandbox is started.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	pkg, err := app.Default.Inspect(args[0])
	if err != nil {
		return err
	}
	return printPackage(cmd.OutOrStdout(), pkg, inspectFormat)
}

func printPackage(w io.Writer, pkg *manifest.Package, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(pkg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode package: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pkg); err != nil {
			return fmt.Errorf("failed to encode package: %w", err)
		}
		return enc.Close()

	case "text", "":
		printPackageText(w, pkg)
		return nil
	}
	return errors.New(errors.ExitGeneralError, fmt.Sprintf("unknown format %q (want text, json or yaml)", format))
}

func printPackageText(w io.Writer, pkg *manifest.Package) {
	fmt.Fprintf(w, "Package: %s\n", pkg.Name)
	fmt.Fprintf(w, "Version: %s\n", pkg.Version)
	fmt.Fprintf(w, "Description: %s\n", pkg.Description)
	fmt.Fprintf(w, "Maintainers: %s\n", pkg.Maintainers)
	fmt.Fprintf(w, "Branch: %s\n", pkg.Branch)
	fmt.Fprintf(w, "Manifest: %s\n", pkg.Path)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Functions:")
	if len(pkg.Functions) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, fn := range pkg.Functions {
		fmt.Fprintf(w, "  %s (%d commands)\n", fn.Name(), len(fn.Commands))
		for _, c := range fn.Commands {
			fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(c, "\n", "\n    "))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	for _, kv := range pkg.Env {
		fmt.Fprintf(w, "  %s\n", kv)
	}

	for _, warning := range pkg.Warnings {
		logWarning("%s", warning)
	}
}
