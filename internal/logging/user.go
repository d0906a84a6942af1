package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// User-facing output functions with styled prefixes.
// These write to stdout/stderr directly for CLI output,
// separate from the structured debug logging.

var (
	infoPrefix    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Render("==>")
	successPrefix = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	warningPrefix = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("⚠")
	errorPrefix   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	stepPrefix    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("--->")
)

var (
	outMu  sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects user-facing output. A nil writer restores the
// process default for that stream.
func SetOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()

	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout = out
	stderr = errOut
}

// Stdout returns the writer user-facing info output goes to.
func Stdout() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return stdout
}

// Stderr returns the writer user-facing warnings and errors go to.
func Stderr() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return stderr
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(Stdout(), infoPrefix+" "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(Stdout(), successPrefix+" "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(Stderr(), warningPrefix+" "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(Stderr(), errorPrefix+" "+format+"\n", args...)
}

// UserStep prints a progress message to stdout when verbose output is on.
func UserStep(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	UserStepAlways(format, args...)
}

// UserStepAlways prints a progress message regardless of verbosity.
func UserStepAlways(format string, args ...interface{}) {
	fmt.Fprintf(Stdout(), stepPrefix+" "+format+"\n", args...)
}
