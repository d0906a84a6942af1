// Package logging provides logging utilities for piratpkg.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for the operator
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("resolving package", "address", addr, "branch", branch)
//	logging.Warn("sandbox teardown incomplete", "dir", dir, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Installing %s %s", name, version)
//	logging.UserSuccess("Installed %s", name)
//	logging.UserWarning("%s has no uninstall function", name)
//	logging.UserError("%s failed", function)
//	logging.UserStep("Running %s", function) // only with --verbose
//
// Output destinations:
//   - UserInfo, UserSuccess, UserStep: stdout
//   - UserWarning, UserError: stderr
//
// Both can be redirected with SetOutput.
package logging
