// Package errors provides typed errors with exit codes for piratpkg.
//
// # Error Types
//
// PkgError is the base error type that wraps an error with an exit code:
//
//	type PkgError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Each exit code corresponds to one failure stage:
//
//	ExitSuccess        = 0 // Success
//	ExitGeneralError   = 1 // General/unknown errors
//	ExitAddressError   = 2 // Group address, empty or malformed address
//	ExitNotFound       = 3 // Branch or manifest missing
//	ExitParseError     = 4 // Malformed manifest, environment overflow, redirect cycle
//	ExitExecutionError = 5 // A lifecycle function failed inside the sandbox
//	ExitResourceError  = 6 // Sandbox could not be created or torn down
//	ExitConfigError    = 7 // Configuration error
//
// # Sentinels
//
// Constructors wrap a sentinel where callers need to branch on the cause:
//
//	if errors.Is(err, errors.ErrTooManyEnvVars) { ... }
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
