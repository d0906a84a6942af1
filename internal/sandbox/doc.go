// Package sandbox runs a package's shell commands in a persistent shell
// with a private working directory.
//
// A Sandbox is created once per package operation and destroyed exactly
// once. The working directory is a fresh directory under the temp root
// named piratpkg-sandbox-<timestamp>-<random>, created with mode 0700.
// The shell runs in its own process group with the inherited environment
// plus the package environment.
//
// # Framing
//
// Each Exec writes the command followed by two marker lines, one on
// stdout carrying the exit status and one on stderr:
//
//	{ <command>
//	} </dev/null
//	printf '\n%s %d\n' <marker> "$?"
//	printf '\n%s\n' <marker> >&2
//
// The marker is random per command, so command output cannot end a frame
// early, and a marker split across reads is still recognised. Exec returns
// only after both streams reached their marker, so output of one command
// never leaks into the next. Commands read /dev/null on stdin.
//
// # Teardown
//
// Destroy closes stdin, sends SIGTERM to the process group, escalates to
// SIGKILL after the grace period, reaps the shell and removes the working
// directory tree.
package sandbox
