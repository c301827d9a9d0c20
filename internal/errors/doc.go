// Package errors provides typed errors with exit codes for forage-select.
//
// # Error Types
//
// SelectError is the base error type that wraps an error with an exit code:
//
//	type SelectError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess      = 0   // Success
//	ExitGeneralError = 1   // General/unknown errors
//	ExitConfigError  = 2   // Settings could not be loaded or validated
//	ExitLoadError    = 3   // An explicitly requested load failed
//	ExitNoSelection  = 4   // The widget finished with nothing selected
//	ExitCancelled    = 130 // The user dismissed the widget
//
// The widget itself never returns errors to its host: malformed candidates
// are dropped and failed background loads are discarded. These errors only
// exist at the CLI boundary.
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
