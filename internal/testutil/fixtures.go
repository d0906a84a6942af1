package testutil

import (
	"embed"
	"strings"

	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/manifest"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadConfigFixture loads and parses a TOML config fixture.
func LoadConfigFixture(name string) (*config.Config, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return config.Parse(data)
}

// LoadManifestFixture loads and parses a manifest fixture.
func LoadManifestFixture(name string) (*manifest.Manifest, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return manifest.Parse(strings.NewReader(string(data)))
}

// ValidConfig returns the valid config fixture.
func ValidConfig() (*config.Config, error) {
	return LoadConfigFixture("valid_config.toml")
}

// InvalidConfig returns the invalid config fixture (duplicate branch).
func InvalidConfig() (*config.Config, error) {
	return LoadConfigFixture("invalid_config.toml")
}

// HelloManifest returns the text of a package that builds, installs,
// announces itself and uninstalls cleanly.
func HelloManifest() string {
	data, _ := LoadFixture("hello.pkg")
	return string(data)
}

// FailingManifest returns the text of a package whose build fails on its
// third command.
func FailingManifest() string {
	data, _ := LoadFixture("failing.pkg")
	return string(data)
}
