package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigPath = "/etc/piratpkg/config.toml"
	DefaultRoot       = "/"
	DefaultShell      = "/bin/sh"

	// ConfigPathEnv overrides DefaultConfigPath when set.
	ConfigPathEnv = "PIRATPKG_CONFIG"
)

// branchNameRegex validates branch names.
// Names start with a letter or digit and may not contain ':' (the address
// separator) or path separators.
var branchNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,62}$`)

// ValidateBranchName checks if a branch name is valid.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}

	if !branchNameRegex.MatchString(name) {
		return fmt.Errorf("invalid branch name %q: must start with a letter or digit, contain only letters, digits, '.', '_' or '-', and be at most 63 characters", name)
	}

	return nil
}

// Branch is a named repository partition holding package manifests.
type Branch struct {
	Name string `toml:"name" json:"name" yaml:"name"`
	Path string `toml:"path" json:"path" yaml:"path"`
}

// Config holds global settings and the ordered branch table.
type Config struct {
	// Root is the installation prefix; relative branch paths are joined onto it.
	Root string `toml:"root"`

	Verbose     bool `toml:"verbose"`
	AutoConfirm bool `toml:"auto_confirm"`

	// Shell is the interpreter started inside each sandbox.
	Shell string `toml:"shell"`

	// TempRoot is where sandbox working directories are created.
	// Empty means os.TempDir().
	TempRoot string `toml:"temp_root"`

	// Branches are probed in file order.
	Branches []Branch `toml:"branch"`
}

// Default returns a configuration with no branches.
func Default() *Config {
	return &Config{
		Root:  DefaultRoot,
		Shell: DefaultShell,
	}
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}

	seen := make(map[string]bool, len(c.Branches))
	for i, b := range c.Branches {
		if err := ValidateBranchName(b.Name); err != nil {
			return fmt.Errorf("branch %d: %w", i, err)
		}
		if seen[b.Name] {
			return fmt.Errorf("branch %s is defined more than once", b.Name)
		}
		seen[b.Name] = true

		if b.Path == "" {
			return fmt.Errorf("branch %s: path is required", b.Name)
		}
	}

	return nil
}

// FindBranch looks up a branch by name.
func (c *Config) FindBranch(name string) (Branch, bool) {
	for _, b := range c.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return Branch{}, false
}

// BranchDir returns the absolute directory of a branch. Relative branch
// paths are interpreted relative to Root. The result is cleaned.
func (c *Config) BranchDir(b Branch) string {
	if filepath.IsAbs(b.Path) {
		return filepath.Clean(b.Path)
	}
	return filepath.Join(c.Root, b.Path)
}

// ResolvePath returns the config path to load: the explicit path when set,
// then $PIRATPKG_CONFIG, then DefaultConfigPath.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigPathEnv); env != "" {
		return env
	}
	return DefaultConfigPath
}

// Load reads and validates a TOML configuration file. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Parse decodes TOML configuration on top of the defaults. Unknown keys
// are an error. The result is not validated.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	if cfg.Shell == "" {
		cfg.Shell = DefaultShell
	}
	return cfg, nil
}
