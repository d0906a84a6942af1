// Package installer sequences a package's lifecycle functions inside its
// sandbox.
//
// Install prints the package identity, asks for confirmation unless
// auto-confirm is set, then runs every captured function in manifest
// order except uninstall. Uninstall runs only the uninstall function and
// succeeds with a warning when the manifest has none.
//
// Each command of a function is sent to the sandbox separately and the
// first failing command aborts the operation. The package's sandbox is
// destroyed on every path; teardown errors are reported as warnings and
// never replace the operation's result.
package installer
