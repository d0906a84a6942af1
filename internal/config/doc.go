// Package config provides the piratpkg configuration value.
//
// # Configuration File
//
// Settings are read from a TOML file, /etc/piratpkg/config.toml by default
// (overridable with $PIRATPKG_CONFIG or --config):
//
//	root = "/"
//	verbose = false
//	auto_confirm = false
//	shell = "/bin/sh"
//	temp_root = "/tmp"
//
//	[[branch]]
//	name = "core"
//	path = "var/piratpkg/core"
//
//	[[branch]]
//	name = "extra"
//	path = "/srv/piratpkg/extra"
//
// Branches are probed in the order they appear. Relative branch paths are
// joined onto root.
//
// A missing file is not an error: Load returns Default(), which has no
// branches, so every resolution fails with NotFound until one is configured.
package config
