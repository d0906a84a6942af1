package cmd

import (
	"os"

	"golang.org/x/term"

	"github.com/piraterna/piratpkg/internal/app"
	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/installer"
	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/tui"
)

// setupApp loads the configuration, applies flag overrides and installs
// the resulting App as app.Default.
func setupApp() error {
	path := config.ResolvePath(configPath)

	cfg, err := config.Load(path)
	if err != nil {
		return errors.ConfigError("failed to load configuration", err)
	}

	if rootDir != "" {
		cfg.Root = rootDir
	}
	if verbose {
		cfg.Verbose = true
	}
	if assumeYes {
		cfg.AutoConfirm = true
	}
	if err := cfg.Validate(); err != nil {
		return errors.ConfigError("invalid configuration", err)
	}

	logging.Debug("configuration loaded",
		"path", path, "root", cfg.Root, "shell", cfg.Shell, "branches", len(cfg.Branches))

	app.SetDefault(app.New(
		app.WithConfig(cfg),
		app.WithPrompter(newPrompter()),
	))
	return nil
}

// interactive reports whether stdin and stdout are both terminals.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newPrompter() installer.Prompter {
	if interactive() {
		return &tui.ConfirmPrompter{}
	}
	return &installer.LinePrompter{In: os.Stdin, Out: logging.Stdout()}
}
