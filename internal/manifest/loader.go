package manifest

import (
	"fmt"

	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/repo"
	"github.com/piraterna/piratpkg/internal/system"
)

// ToolVersion is exported to every sandbox as PIRATPKG_VERSION.
const ToolVersion = "1.0"

// Injected environment variables.
const (
	EnvToolVersion = "PIRATPKG_VERSION"
	EnvPrefix      = "PREFIX"
)

// Loader turns package addresses into Packages.
type Loader struct {
	cfg      *config.Config
	resolver *repo.Resolver
	fs       system.FileSystem
	newShell ShellFactory
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the filesystem manifests are read from.
func WithFileSystem(fsys system.FileSystem) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithShellFactory sets how sandbox shells are started.
func WithShellFactory(f ShellFactory) LoaderOption {
	return func(l *Loader) {
		l.newShell = f
	}
}

// NewLoader creates a Loader for the branches and root in cfg.
func NewLoader(cfg *config.Config, opts ...LoaderOption) *Loader {
	l := &Loader{cfg: cfg}
	for _, opt := range opts {
		opt(l)
	}
	if l.fs == nil {
		l.fs = system.DefaultFS()
	}
	l.resolver = repo.NewResolver(cfg, l.fs)
	return l
}

// Load parses the manifest for address and starts its sandbox shell.
// The caller must Close the returned Package.
func (l *Loader) Load(address string) (*Package, error) {
	pkg, err := l.Inspect(address)
	if err != nil {
		return nil, err
	}
	if l.newShell == nil {
		return nil, errors.ResourceFailed("create", fmt.Errorf("no shell factory configured"))
	}

	shell, err := l.newShell(pkg.Env)
	if err != nil {
		return nil, err
	}
	pkg.shell = shell
	return pkg, nil
}

// Inspect parses the manifest for address, following redirects, without
// starting a shell.
func (l *Loader) Inspect(address string) (*Package, error) {
	visited := make(map[string]bool)
	var chain []string

	for {
		addr, err := repo.ParseAddress(address)
		if err != nil {
			return nil, err
		}
		chain = append(chain, addr.String())

		loc, err := l.resolver.ResolveAddress(addr)
		if err != nil {
			return nil, err
		}
		if visited[loc.Path] {
			return nil, errors.RedirectCycle(chain)
		}
		visited[loc.Path] = true

		m, err := l.parseFile(loc.Path)
		if err != nil {
			return nil, err
		}
		if m.Redirect != "" {
			logging.Debug("following redirect", "from", addr.String(), "to", m.Redirect, "manifest", loc.Path)
			address = m.Redirect
			continue
		}

		return l.build(addr, loc, m)
	}
}

// parseFile reads one manifest. The file is closed before returning so a
// redirect never holds it open.
func (l *Loader) parseFile(path string) (*Manifest, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, errors.ManifestUnreadable(path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (l *Loader) build(addr repo.Address, loc *repo.Location, m *Manifest) (*Package, error) {
	env := m.Env
	if err := env.Add(EnvToolVersion, ToolVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Path, err)
	}
	if err := env.Add(EnvPrefix, l.cfg.Root); err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Path, err)
	}

	pkg := &Package{
		Name:        orDefault(m.Name, addr.Name),
		Description: orDefault(m.Description, Unknown),
		Version:     orDefault(m.Version, Unknown),
		Maintainers: orDefault(m.Maintainers, Unknown),
		Branch:      loc.Branch,
		Path:        loc.Path,
		Functions:   m.Functions,
		Env:         env.Entries(),
		Warnings:    m.Warnings,
	}
	logging.Debug("parsed manifest", "package", pkg.Name, "functions", len(pkg.Functions), "env", len(pkg.Env))
	return pkg, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
