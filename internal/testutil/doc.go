// Package testutil provides test fixtures and utilities.
//
// # Test Environment
//
// TestEnv builds an installation root with branch directories on disk and
// captures user-facing output:
//
//	env := testutil.NewTestEnv(t)
//	env.WriteManifest("core", "hello", testutil.HelloManifest())
//	loader := manifest.NewLoader(env.Config, ...)
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/valid_config.toml
//	fixtures/invalid_config.toml
//	fixtures/hello.pkg
//	fixtures/failing.pkg
//
// Helper functions load and parse them:
//
//	cfg, err := testutil.ValidConfig()
//	m, err := testutil.LoadManifestFixture("hello.pkg")
package testutil
