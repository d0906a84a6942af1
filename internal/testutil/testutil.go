// Package testutil provides test utilities for integration tests
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/logging"
)

// TestEnv holds the test environment
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Root    string
	TempDir string
	Config  *config.Config

	// Stdout and Stderr capture user-facing output.
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

// NewTestEnv creates an installation root with one directory per branch
// and redirects user-facing output into buffers. Branches default to
// "core" and "extra".
func NewTestEnv(t *testing.T, branches ...string) *TestEnv {
	t.Helper()

	if len(branches) == 0 {
		branches = []string{"core", "extra"}
	}

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "root")
	tempDir := filepath.Join(tmpDir, "tmp")

	cfg := config.Default()
	cfg.Root = root
	cfg.TempRoot = tempDir
	cfg.AutoConfirm = true

	for _, dir := range []string{root, tempDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
	for _, name := range branches {
		b := config.Branch{Name: name, Path: filepath.Join("repo", name)}
		if err := os.MkdirAll(cfg.BranchDir(b), 0755); err != nil {
			t.Fatalf("Failed to create branch %s: %v", name, err)
		}
		cfg.Branches = append(cfg.Branches, b)
	}

	env := &TestEnv{
		T:       t,
		TmpDir:  tmpDir,
		Root:    root,
		TempDir: tempDir,
		Config:  cfg,
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	}

	logging.SetOutput(env.Stdout, env.Stderr)
	t.Cleanup(func() { logging.SetOutput(nil, nil) })

	return env
}

// WriteManifest writes <name>.pkg into a branch and returns its path.
func (e *TestEnv) WriteManifest(branch, name, content string) string {
	e.T.Helper()

	b, ok := e.Config.FindBranch(branch)
	if !ok {
		e.T.Fatalf("Unknown branch %q", branch)
	}

	path := filepath.Join(e.Config.BranchDir(b), name+".pkg")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

// WriteConfig encodes the environment's configuration as TOML and returns
// the file path.
func (e *TestEnv) WriteConfig() string {
	e.T.Helper()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(e.Config); err != nil {
		e.T.Fatalf("Failed to encode config: %v", err)
	}

	path := filepath.Join(e.TmpDir, "config.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		e.T.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// SandboxDirs lists sandbox working directories left in the temp root.
func (e *TestEnv) SandboxDirs() []string {
	e.T.Helper()

	entries, err := os.ReadDir(e.TempDir)
	if err != nil {
		e.T.Fatalf("Failed to read temp root: %v", err)
	}

	var dirs []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "piratpkg-sandbox-") {
			dirs = append(dirs, filepath.Join(e.TempDir, entry.Name()))
		}
	}
	return dirs
}

// RootFile reads a file relative to the installation root. Missing files
// read as "".
func (e *TestEnv) RootFile(rel string) string {
	e.T.Helper()

	data, err := os.ReadFile(filepath.Join(e.Root, rel))
	if err != nil {
		return ""
	}
	return string(data)
}
