package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Root != DefaultRoot {
		t.Errorf("Root = %q, want %q", cfg.Root, DefaultRoot)
	}
	if cfg.Shell != DefaultShell {
		t.Errorf("Shell = %q, want %q", cfg.Shell, DefaultShell)
	}
	if len(cfg.Branches) != 0 {
		t.Errorf("Branches = %v, want none", cfg.Branches)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
root = "/opt/pirat"
verbose = true
auto_confirm = true
temp_root = "/var/tmp"

[[branch]]
name = "core"
path = "repo/core"

[[branch]]
name = "extra"
path = "/srv/extra"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Root != "/opt/pirat" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/opt/pirat")
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
	if !cfg.AutoConfirm {
		t.Error("AutoConfirm should be true")
	}
	if cfg.Shell != DefaultShell {
		t.Errorf("Shell = %q, want default %q", cfg.Shell, DefaultShell)
	}
	if cfg.TempRoot != "/var/tmp" {
		t.Errorf("TempRoot = %q, want %q", cfg.TempRoot, "/var/tmp")
	}
	if len(cfg.Branches) != 2 {
		t.Fatalf("len(Branches) = %d, want 2", len(cfg.Branches))
	}
	if cfg.Branches[0].Name != "core" || cfg.Branches[1].Name != "extra" {
		t.Errorf("Branches out of order: %v", cfg.Branches)
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load of missing file should not fail: %v", err)
	}
	if cfg.Root != DefaultRoot {
		t.Errorf("Root = %q, want %q", cfg.Root, DefaultRoot)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", "this is = = not toml"},
		{"unknown key", "colour = \"red\"\n"},
		{"duplicate branch", "[[branch]]\nname = \"core\"\npath = \"a\"\n[[branch]]\nname = \"core\"\npath = \"b\"\n"},
		{"branch without path", "[[branch]]\nname = \"core\"\n"},
		{"branch with colon", "[[branch]]\nname = \"co:re\"\npath = \"a\"\n"},
		{"empty root", "root = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestBranchDir(t *testing.T) {
	cfg := &Config{Root: "/opt/pirat"}

	tests := []struct {
		path string
		want string
	}{
		{"repo/core", "/opt/pirat/repo/core"},
		{"/srv/extra", "/srv/extra"},
		{"/srv/extra/", "/srv/extra"},
		{"/srv//extra/./", "/srv/extra"},
		{"repo/core/", "/opt/pirat/repo/core"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := cfg.BranchDir(Branch{Name: "b", Path: tt.path})
			if got != tt.want {
				t.Errorf("BranchDir(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFindBranch(t *testing.T) {
	cfg := &Config{Branches: []Branch{{Name: "core", Path: "a"}, {Name: "extra", Path: "b"}}}

	b, ok := cfg.FindBranch("extra")
	if !ok || b.Path != "b" {
		t.Errorf("FindBranch(extra) = %v, %v", b, ok)
	}

	if _, ok := cfg.FindBranch("missing"); ok {
		t.Error("FindBranch(missing) should not succeed")
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	if got := ResolvePath(""); got != DefaultConfigPath {
		t.Errorf("ResolvePath(\"\") = %q, want %q", got, DefaultConfigPath)
	}

	t.Setenv(ConfigPathEnv, "/env/config.toml")
	if got := ResolvePath(""); got != "/env/config.toml" {
		t.Errorf("ResolvePath with env = %q", got)
	}
	if got := ResolvePath("/flag.toml"); got != "/flag.toml" {
		t.Errorf("ResolvePath(flag) = %q", got)
	}
}

func TestValidateBranchName(t *testing.T) {
	valid := []string{"core", "extra-1", "v2.0", "Testing_branch"}
	for _, name := range valid {
		if err := ValidateBranchName(name); err != nil {
			t.Errorf("ValidateBranchName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "a:b", "../up", "a/b", "-dash"}
	for _, name := range invalid {
		if err := ValidateBranchName(name); err == nil {
			t.Errorf("ValidateBranchName(%q) should fail", name)
		}
	}
}

func TestParse_DoesNotValidate(t *testing.T) {
	cfg, err := Parse([]byte("root = \"\"\n[[branch]]\nname = \"core\"\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Shell != DefaultShell {
		t.Errorf("Shell = %q, want %q", cfg.Shell, DefaultShell)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject an empty root and a branch without path")
	}
}
