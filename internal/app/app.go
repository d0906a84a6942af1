package app

import (
	"context"

	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/installer"
	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/manifest"
	"github.com/piraterna/piratpkg/internal/repo"
	"github.com/piraterna/piratpkg/internal/sandbox"
	"github.com/piraterna/piratpkg/internal/system"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// FS is where manifests are read from
	FS system.FileSystem

	// ShellFactory starts the sandbox shell for a loaded package
	ShellFactory manifest.ShellFactory

	// Prompter asks for confirmation before an operation
	Prompter installer.Prompter
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets the configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithFileSystem sets a custom filesystem
func WithFileSystem(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithShellFactory sets how sandbox shells are started
func WithShellFactory(f manifest.ShellFactory) Option {
	return func(a *App) {
		a.ShellFactory = f
	}
}

// WithPrompter sets the confirmation prompter
func WithPrompter(p installer.Prompter) Option {
	return func(a *App) {
		a.Prompter = p
	}
}

// New creates a new App with the given options.
// Without WithShellFactory, packages get a real sandbox.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		app.Config = config.Default()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.ShellFactory == nil {
		app.ShellFactory = SandboxFactory(app.Config)
	}

	return app
}

// SandboxFactory starts sandboxes with the shell and temp root from cfg.
func SandboxFactory(cfg *config.Config) manifest.ShellFactory {
	return func(env []string) (manifest.Shell, error) {
		sb, err := sandbox.New(sandbox.Options{
			Shell:    cfg.Shell,
			TempRoot: cfg.TempRoot,
			Env:      env,
		})
		if err != nil {
			return nil, err
		}
		return sb, nil
	}
}

// Resolver returns a resolver over the configured branches
func (a *App) Resolver() *repo.Resolver {
	return repo.NewResolver(a.Config, a.FS)
}

// Loader returns a manifest loader wired to the app's filesystem and sandbox
func (a *App) Loader() *manifest.Loader {
	return manifest.NewLoader(a.Config,
		manifest.WithFileSystem(a.FS),
		manifest.WithShellFactory(a.ShellFactory),
	)
}

// Installer returns an installer honoring the configured verbosity and
// auto-confirm settings
func (a *App) Installer() *installer.Installer {
	return installer.New(installer.Options{
		AutoConfirm: a.Config.AutoConfirm,
		Verbose:     a.Config.Verbose,
		Prompter:    a.Prompter,
	})
}

// Inspect parses the manifest for address without starting a sandbox
func (a *App) Inspect(address string) (*manifest.Package, error) {
	return a.Loader().Inspect(address)
}

// Install loads address and runs its install functions
func (a *App) Install(ctx context.Context, address string) (*installer.Result, error) {
	pkg, err := a.Loader().Load(address)
	if err != nil {
		return nil, err
	}
	logging.Debug("package loaded", "name", pkg.Name, "branch", pkg.Branch, "path", pkg.Path)
	return a.Installer().Install(ctx, pkg)
}

// Uninstall loads address and runs its uninstall function
func (a *App) Uninstall(ctx context.Context, address string) (*installer.Result, error) {
	pkg, err := a.Loader().Load(address)
	if err != nil {
		return nil, err
	}
	logging.Debug("package loaded", "name", pkg.Name, "branch", pkg.Branch, "path", pkg.Path)
	return a.Installer().Uninstall(ctx, pkg)
}

// List returns every manifest in every configured branch
func (a *App) List() ([]repo.Entry, error) {
	return a.Resolver().List()
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
