package installer

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/manifest"
)

// Operation names what an Installer run did.
type Operation string

const (
	OpInstall   Operation = "install"
	OpUninstall Operation = "uninstall"
)

// Options configures an Installer.
type Options struct {
	// AutoConfirm skips the confirmation prompt.
	AutoConfirm bool

	// Verbose shows every command and its output. Echo functions are
	// always shown.
	Verbose bool

	// Prompter asks for confirmation. Nil reads a line from stdin.
	Prompter Prompter
}

// Result describes a finished operation.
type Result struct {
	Package   string    `json:"package"`
	Version   string    `json:"version"`
	Operation Operation `json:"operation"`

	// Declined is set when the operator answered no.
	Declined bool `json:"declined,omitempty"`

	// Skipped is set when there was nothing to run.
	Skipped bool `json:"skipped,omitempty"`

	// Functions that completed, in order.
	Functions []string `json:"functions"`

	// Commands counts commands sent to the sandbox.
	Commands int `json:"commands"`

	// Failed names the function that aborted the operation.
	Failed string `json:"failed,omitempty"`
}

var nameStyle = lipgloss.NewStyle().Bold(true)

// Installer runs install and uninstall operations.
type Installer struct {
	opts Options
}

// New creates an Installer.
func New(opts Options) *Installer {
	if opts.Prompter == nil {
		opts.Prompter = &LinePrompter{In: os.Stdin, Out: logging.Stdout()}
	}
	return &Installer{opts: opts}
}

// Install runs every captured function except uninstall, in manifest
// order. pkg is closed before Install returns.
func (i *Installer) Install(ctx context.Context, pkg *manifest.Package) (*Result, error) {
	defer i.close(pkg)

	result := newResult(pkg, OpInstall)
	proceed, err := i.preamble(pkg, OpInstall)
	if err != nil || !proceed {
		result.Declined = err == nil
		return result, err
	}

	for _, fn := range pkg.Functions {
		if fn.Stage == manifest.Uninstall {
			continue
		}
		if err := i.run(ctx, pkg, fn, result); err != nil {
			return result, err
		}
	}

	logging.UserSuccess("Installed %s %s", pkg.Name, pkg.Version)
	return result, nil
}

// Uninstall runs the uninstall function. A package without one is a
// successful no-op. pkg is closed before Uninstall returns.
func (i *Installer) Uninstall(ctx context.Context, pkg *manifest.Package) (*Result, error) {
	defer i.close(pkg)

	result := newResult(pkg, OpUninstall)
	proceed, err := i.preamble(pkg, OpUninstall)
	if err != nil || !proceed {
		result.Declined = err == nil
		return result, err
	}

	fn := pkg.Function(manifest.Uninstall)
	if fn == nil {
		logging.UserWarning("%s has no uninstall function, nothing to do", pkg.Name)
		result.Skipped = true
		return result, nil
	}

	if err := i.run(ctx, pkg, fn, result); err != nil {
		return result, err
	}

	logging.UserSuccess("Uninstalled %s %s", pkg.Name, pkg.Version)
	return result, nil
}

func newResult(pkg *manifest.Package, op Operation) *Result {
	return &Result{
		Package:   pkg.Name,
		Version:   pkg.Version,
		Operation: op,
		Functions: []string{},
	}
}

// preamble prints the package identity and asks for confirmation.
func (i *Installer) preamble(pkg *manifest.Package, op Operation) (bool, error) {
	out := logging.Stdout()
	fmt.Fprintf(out, "%s %s\n", nameStyle.Render(pkg.Name), pkg.Version)
	fmt.Fprintf(out, "  Description: %s\n", pkg.Description)
	fmt.Fprintf(out, "  Maintainers: %s\n", pkg.Maintainers)
	if pkg.Branch != "" {
		fmt.Fprintf(out, "  Branch:      %s\n", pkg.Branch)
	}
	for _, w := range pkg.Warnings {
		logging.UserWarning("%s", w)
	}

	if i.opts.AutoConfirm {
		return true, nil
	}

	ok, err := i.opts.Prompter.Confirm(fmt.Sprintf("Proceed with %s of %s?", op, pkg.Name))
	if err != nil {
		return false, err
	}
	if !ok {
		logging.UserInfo("Aborted, nothing was changed")
	}
	return ok, nil
}

// run sends each command of fn to the sandbox, stopping at the first
// failure.
func (i *Installer) run(ctx context.Context, pkg *manifest.Package, fn *manifest.Function, result *Result) error {
	shell := pkg.Shell()
	if shell == nil {
		result.Failed = fn.Name()
		return errors.ResourceFailed("exec", errors.ErrSandboxDestroyed)
	}

	show := i.opts.Verbose || fn.Stage.Kind() == manifest.Echo
	if show {
		logging.UserStepAlways("Running %s", fn.Name())
	}
	logging.Debug("running function", "package", pkg.Name, "function", fn.Name(), "commands", len(fn.Commands))

	for _, command := range fn.Commands {
		if show {
			fmt.Fprintf(logging.Stdout(), "+ %s\n", command)
		}

		code, err := shell.Exec(ctx, command, !show)
		result.Commands++
		if err != nil {
			result.Failed = fn.Name()
			return fmt.Errorf("%s failed at %q: %w", fn.Name(), command, err)
		}
		if code != 0 {
			result.Failed = fn.Name()
			return errors.FunctionFailed(fn.Name(), command, fmt.Errorf("exit status %d", code))
		}
	}

	result.Functions = append(result.Functions, fn.Name())
	return nil
}

func (i *Installer) close(pkg *manifest.Package) {
	if err := pkg.Close(); err != nil {
		logging.Warn("sandbox teardown failed", "package", pkg.Name, "error", err)
		logging.UserWarning("Failed to clean up sandbox for %s: %v", pkg.Name, err)
	}
}
