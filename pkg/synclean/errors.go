package synclean

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	summary, err := service.Run(ctx, cfg)
//	if errors.Is(err, synclean.ErrRootNotFound) {
//	    // Handle a missing root
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRootNotFound indicates an explicit root does not exist or is not a directory.
	ErrRootNotFound = errors.New("root not found")

	// ErrNoRoots indicates discovery produced nothing to sanitize.
	ErrNoRoots = errors.New("no sync folder found")

	// ErrEncoding indicates a name cannot be re-encoded into valid text.
	ErrEncoding = errors.New("name cannot be re-encoded")
)

// usageErrorPrefixes are the leading fragments of cobra/pflag argument errors.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrRootNotFound), errors.Is(err, ErrNoRoots):
		return ExitRootNotFound
	}

	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
