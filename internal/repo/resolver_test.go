package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/errors"
	"github.com/piraterna/piratpkg/internal/system"
)

func mockConfig() *config.Config {
	cfg := config.Default()
	cfg.Root = "/pirat"
	cfg.Branches = []config.Branch{
		{Name: "core", Path: "repo/core"},
		{Name: "extra", Path: "/srv/extra/"},
		{Name: "testing", Path: "repo/testing"},
	}
	return cfg
}

func TestResolver_FirstBranchWins(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/srv/extra/foo.pkg", []byte("PACKAGE_NAME=foo\n"), 0644)
	mockFS.AddFile("/pirat/repo/testing/foo.pkg", []byte("PACKAGE_NAME=foo\n"), 0644)

	r := NewResolver(mockConfig(), mockFS)
	loc, err := r.Resolve("foo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if loc.Path != "/srv/extra/foo.pkg" {
		t.Errorf("Path = %q, want %q", loc.Path, "/srv/extra/foo.pkg")
	}
	if loc.Branch != "extra" {
		t.Errorf("Branch = %q, want %q", loc.Branch, "extra")
	}
}

func TestResolver_ScansInTableOrder(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/pirat/repo/core/foo.pkg", nil, 0644)
	mockFS.AddFile("/srv/extra/foo.pkg", nil, 0644)

	loc, err := NewResolver(mockConfig(), mockFS).Resolve("foo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if loc.Branch != "core" {
		t.Errorf("Branch = %q, want %q", loc.Branch, "core")
	}
	if mockFS.Calls() != 1 {
		t.Errorf("Calls() = %d, want 1 (stop at the first hit)", mockFS.Calls())
	}
}

func TestResolver_NamedBranchOnly(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/pirat/repo/core/foo.pkg", nil, 0644)

	r := NewResolver(mockConfig(), mockFS)

	_, err := r.Resolve("foo:testing")
	if !errors.Is(err, errors.ErrPackageNotFound) {
		t.Fatalf("Resolve(foo:testing) = %v, want ErrPackageNotFound", err)
	}
	if mockFS.Calls() != 1 {
		t.Errorf("Calls() = %d, want 1 (only the named branch is probed)", mockFS.Calls())
	}

	loc, err := r.Resolve("foo:core")
	if err != nil {
		t.Fatalf("Resolve(foo:core) error: %v", err)
	}
	if loc.Path != "/pirat/repo/core/foo.pkg" {
		t.Errorf("Path = %q", loc.Path)
	}
}

func TestResolver_UnknownBranch(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/pirat/repo/core/foo.pkg", nil, 0644)

	_, err := NewResolver(mockConfig(), mockFS).Resolve("foo:nonexistent")
	if !errors.Is(err, errors.ErrBranchNotFound) {
		t.Fatalf("Resolve error = %v, want ErrBranchNotFound", err)
	}
	if code := errors.GetExitCode(err); code != errors.ExitNotFound {
		t.Errorf("exit code = %d, want %d", code, errors.ExitNotFound)
	}
	if mockFS.Calls() != 0 {
		t.Errorf("Calls() = %d, want 0 (no fallback to other branches)", mockFS.Calls())
	}
}

func TestResolver_NotFound(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddDir("/pirat/repo/core/foo.pkg")

	_, err := NewResolver(mockConfig(), mockFS).Resolve("foo")
	if !errors.Is(err, errors.ErrPackageNotFound) {
		t.Fatalf("Resolve error = %v, want ErrPackageNotFound", err)
	}
	if mockFS.Calls() != 3 {
		t.Errorf("Calls() = %d, want 3 (every branch probed)", mockFS.Calls())
	}
}

func TestResolver_GroupRejectedBeforeFilesystem(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/pirat/repo/core/group.group", nil, 0644)

	r := NewResolver(mockConfig(), mockFS)
	_, err := r.Resolve("@group")
	if !errors.Is(err, errors.ErrGroupsUnsupported) {
		t.Fatalf("Resolve error = %v, want ErrGroupsUnsupported", err)
	}
	if code := errors.GetExitCode(err); code != errors.ExitAddressError {
		t.Errorf("exit code = %d, want %d", code, errors.ExitAddressError)
	}
	if mockFS.Calls() != 0 {
		t.Errorf("Calls() = %d, want 0", mockFS.Calls())
	}

	_, err = r.ResolveAddress(Address{Name: "group", Group: true})
	if !errors.Is(err, errors.ErrGroupsUnsupported) {
		t.Errorf("ResolveAddress error = %v, want ErrGroupsUnsupported", err)
	}
	if mockFS.Calls() != 0 {
		t.Errorf("Calls() = %d, want 0", mockFS.Calls())
	}
}

func TestResolver_List(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/pirat/repo/core/zlib.pkg", nil, 0644)
	mockFS.AddFile("/pirat/repo/core/bash.pkg", nil, 0644)
	mockFS.AddFile("/pirat/repo/core/README", nil, 0644)
	mockFS.AddDir("/pirat/repo/core/patches.pkg")
	mockFS.AddFile("/srv/extra/vim.pkg", nil, 0644)

	entries, err := NewResolver(mockConfig(), mockFS).List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}

	want := []Entry{
		{Name: "bash", Branch: "core", Path: "/pirat/repo/core/bash.pkg"},
		{Name: "zlib", Branch: "core", Path: "/pirat/repo/core/zlib.pkg"},
		{Name: "vim", Branch: "extra", Path: "/srv/extra/vim.pkg"},
	}
	if len(entries) != len(want) {
		t.Fatalf("List() returned %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestResolver_RealFilesystem(t *testing.T) {
	tmpDir := t.TempDir()
	core := filepath.Join(tmpDir, "core")
	if err := os.MkdirAll(core, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(core, "foo.pkg"), []byte("PACKAGE_NAME=foo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// A symlink pointing outside the branch must not be followed out of it.
	if err := os.Symlink("/etc/passwd", filepath.Join(core, "escape.pkg")); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Root = tmpDir
	cfg.Branches = []config.Branch{{Name: "core", Path: "core"}}
	r := NewResolver(cfg, nil)

	loc, err := r.Resolve("foo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if loc.Path != filepath.Join(core, "foo.pkg") {
		t.Errorf("Path = %q, want %q", loc.Path, filepath.Join(core, "foo.pkg"))
	}

	loc, err = r.Resolve("escape")
	if err == nil && loc.Path == "/etc/passwd" {
		t.Errorf("symlink escaped the branch directory: %q", loc.Path)
	}
}
