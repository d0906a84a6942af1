package errors

import (
	"errors"
	"fmt"
)

// Exit codes for piratpkg
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitAddressError   = 2
	ExitNotFound       = 3
	ExitParseError     = 4
	ExitExecutionError = 5
	ExitResourceError  = 6
	ExitConfigError    = 7
)

// Sentinel causes, matchable with errors.Is through a PkgError chain.
var (
	ErrGroupsUnsupported   = errors.New("package groups are not supported")
	ErrEmptyAddress        = errors.New("empty package address")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrPackageNotFound     = errors.New("package not found")
	ErrTooManyEnvVars      = errors.New("too many environment variables")
	ErrUnterminatedBlock   = errors.New("unterminated function block")
	ErrIncompleteStatement = errors.New("incomplete shell statement")
	ErrRedirectCycle       = errors.New("redirect cycle")
	ErrFunctionFailed      = errors.New("function failed")
	ErrSandboxDestroyed    = errors.New("sandbox destroyed")
)

// PkgError is the base error type for piratpkg
type PkgError struct {
	Code    int
	Message string
	Cause   error
}

func (e *PkgError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PkgError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PkgError) ExitCode() int {
	return e.Code
}

// New creates a new PkgError
func New(code int, message string) *PkgError {
	return &PkgError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PkgError
func Wrap(code int, message string, cause error) *PkgError {
	return &PkgError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// GroupsUnsupported returns an error for a group ("@name") address
func GroupsUnsupported(address string) *PkgError {
	return Wrap(ExitAddressError, fmt.Sprintf("cannot resolve %q", address), ErrGroupsUnsupported)
}

// InvalidAddress returns an error for a malformed package address
func InvalidAddress(address, reason string) *PkgError {
	if address == "" {
		return Wrap(ExitAddressError, "invalid package address", ErrEmptyAddress)
	}
	return New(ExitAddressError, fmt.Sprintf("invalid package address %q: %s", address, reason))
}

// BranchNotFound returns an error for a branch missing from the branch table
func BranchNotFound(branch string) *PkgError {
	return Wrap(ExitNotFound, fmt.Sprintf("no such branch: %s", branch), ErrBranchNotFound)
}

// PackageNotFound returns an error for a package with no manifest in any probed branch
func PackageNotFound(name string) *PkgError {
	return Wrap(ExitNotFound, fmt.Sprintf("no manifest for %s", name), ErrPackageNotFound)
}

// ManifestUnreadable returns an error for a manifest that exists but cannot be read
func ManifestUnreadable(path string, cause error) *PkgError {
	return Wrap(ExitNotFound, fmt.Sprintf("failed to read manifest %s", path), cause)
}

// TooManyEnvVars returns an error when the environment list overflows
func TooManyEnvVars(limit int) *PkgError {
	return Wrap(ExitParseError, fmt.Sprintf("environment is limited to %d entries", limit), ErrTooManyEnvVars)
}

// UnterminatedBlock returns an error for a function block that never closes
func UnterminatedBlock(name string, line int) *PkgError {
	return Wrap(ExitParseError, fmt.Sprintf("function %q opened on line %d", name, line), ErrUnterminatedBlock)
}

// IncompleteStatement returns an error for a function body that ends mid-statement
func IncompleteStatement(name string, cause error) *PkgError {
	return Wrap(ExitParseError, fmt.Sprintf("function %q", name), fmt.Errorf("%w: %v", ErrIncompleteStatement, cause))
}

// RedirectCycle returns an error when manifests redirect back to an address already visited
func RedirectCycle(chain []string) *PkgError {
	return Wrap(ExitParseError, fmt.Sprintf("redirect chain %v", chain), ErrRedirectCycle)
}

// FunctionFailed returns an error for a lifecycle function whose command failed
func FunctionFailed(function, command string, cause error) *PkgError {
	if cause == nil {
		cause = ErrFunctionFailed
	} else {
		cause = fmt.Errorf("%w: %w", ErrFunctionFailed, cause)
	}
	return Wrap(ExitExecutionError, fmt.Sprintf("%s failed at %q", function, command), cause)
}

// ResourceFailed returns an error for sandbox setup and teardown failures
func ResourceFailed(op string, cause error) *PkgError {
	return Wrap(ExitResourceError, fmt.Sprintf("sandbox %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *PkgError {
	return Wrap(ExitConfigError, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var pkgErr *PkgError
	if errors.As(err, &pkgErr) {
		return pkgErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}
