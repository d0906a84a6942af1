package repo

import (
	"io/fs"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/logging"
	"github.com/piraterna/piratpkg/internal/system"
)

// Location is a resolved manifest.
type Location struct {
	Address Address
	Branch  string
	Path    string
}

// Entry is a manifest found by List.
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	Branch string `json:"branch" yaml:"branch"`
	Path   string `json:"path" yaml:"path"`
}

// Resolver probes the branch table for manifests.
type Resolver struct {
	cfg *config.Config
	fs  system.FileSystem
}

// NewResolver creates a Resolver. A nil fsys uses system.DefaultFS().
func NewResolver(cfg *config.Config, fsys system.FileSystem) *Resolver {
	if fsys == nil {
		fsys = system.DefaultFS()
	}
	return &Resolver{cfg: cfg, fs: fsys}
}

// Resolve parses raw and locates its manifest.
func (r *Resolver) Resolve(raw string) (*Location, error) {
	addr, err := ParseAddress(raw)
	if err != nil {
		return nil, err
	}
	return r.ResolveAddress(addr)
}

// ResolveAddress locates the manifest for an already parsed address.
func (r *Resolver) ResolveAddress(addr Address) (*Location, error) {
	if addr.Group {
		return nil, errors.GroupsUnsupported(addr.String())
	}

	branches := r.cfg.Branches
	if addr.Branch != "" {
		b, ok := r.cfg.FindBranch(addr.Branch)
		if !ok {
			return nil, errors.BranchNotFound(addr.Branch)
		}
		branches = []config.Branch{b}
	}

	for _, b := range branches {
		candidate, err := r.candidate(b, addr.Name)
		if err != nil {
			logging.Debug("skipping branch", "branch", b.Name, "error", err)
			continue
		}
		logging.Debug("probing branch", "branch", b.Name, "path", candidate)
		if system.IsRegular(r.fs, candidate) {
			return &Location{Address: addr, Branch: b.Name, Path: candidate}, nil
		}
	}

	return nil, errors.PackageNotFound(addr.String())
}

// candidate builds <branch dir>/<name>.pkg, never escaping the branch dir.
func (r *Resolver) candidate(b config.Branch, name string) (string, error) {
	return securejoin.SecureJoin(r.cfg.BranchDir(b), name+ManifestExt)
}

// List returns every manifest across all branches, in branch order and
// sorted by name within a branch. Missing branch directories are skipped.
func (r *Resolver) List() ([]Entry, error) {
	var result []Entry
	for _, b := range r.cfg.Branches {
		dir := r.cfg.BranchDir(b)
		entries, err := r.fs.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logging.Debug("branch directory missing", "branch", b.Name, "path", dir)
				continue
			}
			return nil, errors.Wrap(errors.ExitNotFound, "failed to list branch "+b.Name, err)
		}

		var names []string
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ManifestExt) {
				continue
			}
			name := strings.TrimSuffix(e.Name(), ManifestExt)
			if name == "" {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			path, err := r.candidate(b, name)
			if err != nil {
				continue
			}
			result = append(result, Entry{Name: name, Branch: b.Name, Path: path})
		}
	}
	return result, nil
}
