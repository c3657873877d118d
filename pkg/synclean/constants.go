package synclean

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Run completed (per-entry failures are recorded, not fatal)
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (invalid arguments or flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration
	ExitRootNotFound = 14 // No root to sanitize, or an explicit root does not exist
)

const (
	// MaxNameLength is the longest name, in characters, the normalizer produces.
	// The target filesystem accepts 255; the difference is left for the
	// collision suffix appended by the sanitizer.
	MaxNameLength = 249

	// CopySuffix is inserted before the collision counter ("report-Copy0.txt").
	CopySuffix = "-Copy"

	// Placeholder replaces names that normalize to the empty string.
	Placeholder = "_"

	// LogFileSuffix is appended to the root's basename to name its report file.
	LogFileSuffix = "-rename.log"

	// DefaultSyncPattern is matched case-insensitively against directory names
	// when searching the home directory for sync folders.
	DefaultSyncPattern = "onedrive"

	// ConfigFileName is the optional YAML configuration file name.
	ConfigFileName = "synclean.yaml"

	// DefaultApprovalNoticeDelay is how long ForcedApprover leaves its notice
	// on screen before proceeding.
	DefaultApprovalNoticeDelay = 2 * time.Second
)

// DefaultExcludedDirs are never descended into while searching for sync folders.
var DefaultExcludedDirs = []string{"Library", ".Trash"}
