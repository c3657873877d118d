package synclean

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Policy selects how the normalizer treats characters the sync target rejects.
type Policy int

const (
	// PolicyBlacklist replaces a fixed set of forbidden characters and leaves
	// other Unicode untouched. This is the default.
	PolicyBlacklist Policy = iota

	// PolicyAccentStrip decomposes the name and drops everything outside
	// 7-bit ASCII, removing accents and non-Latin glyphs.
	PolicyAccentStrip
)

const (
	policyBlacklistName   = "blacklist"
	policyAccentStripName = "accent-strip"
)

// String returns the flag/config spelling of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyBlacklist:
		return policyBlacklistName
	case PolicyAccentStrip:
		return policyAccentStripName
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Set parses s into p. Together with String and Type it lets a Policy be
// registered directly as a command-line flag.
func (p *Policy) Set(s string) error {
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Type names the flag value type in help output.
func (p *Policy) Type() string { return "policy" }

// ParsePolicy converts a textual policy name. Matching is case-insensitive;
// "force" is accepted as an alias for accent-strip.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case policyBlacklistName, "":
		return PolicyBlacklist, nil
	case policyAccentStripName, "accentstrip", "force":
		return PolicyAccentStrip, nil
	default:
		return PolicyBlacklist, fmt.Errorf("unknown policy %q (want %s or %s): %w",
			s, policyBlacklistName, policyAccentStripName, ErrInvalidConfig)
	}
}

// Outcome classifies a RenameRecord.
type Outcome int

const (
	// OutcomeRenamed means the entry now lives under Final.
	OutcomeRenamed Outcome = iota
	// OutcomeFailed means a filesystem operation failed; the entry was left as is.
	OutcomeFailed
	// OutcomeSkipped means the name could not be normalized; the entry was left as is.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRenamed:
		return "renamed"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// RenameRecord is one entry of the per-root change log. Records are created
// once by the sanitizer and never modified afterwards.
type RenameRecord struct {
	// Directory is the (possibly already renamed) parent directory path.
	Directory string

	// Original is the entry name before sanitization. Empty when the record
	// describes a directory that could not be listed.
	Original string

	// Final is the name the entry was renamed to. Empty unless Outcome is OutcomeRenamed.
	Final string

	IsDir   bool
	Outcome Outcome
	Err     error
}

// LogLine renders the record the way it is persisted in the report file.
func (r RenameRecord) LogLine() string {
	switch r.Outcome {
	case OutcomeRenamed:
		return fmt.Sprintf("Renaming: %q -> %q", printable(r.Original), printable(r.Final))
	case OutcomeSkipped:
		return fmt.Sprintf("SKIPPED - Cannot re-encode name in %q: %v. Check out manually.",
			printable(r.Directory), r.Err)
	default:
		if r.Original == "" {
			return fmt.Sprintf("ERROR - Cannot read directory %q: %v. Check out manually.",
				printable(r.Directory), r.Err)
		}
		return fmt.Sprintf("ERROR - Cannot rename %q in %q: %v. Check out manually.",
			printable(r.Original), printable(r.Directory), r.Err)
	}
}

// printable makes invalid UTF-8 safe for logs and terminals.
func printable(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// RootReport is the result of sanitizing one root.
type RootReport struct {
	Root string

	// OutsidePartition is true when the root lies outside the user partition
	// and was sanitized after explicit approval.
	OutsidePartition bool

	// Declined is true when the operator refused to sanitize the root.
	// A declined root has no records.
	Declined bool

	// Visited counts every file and directory entry examined.
	Visited int

	Records []RenameRecord
}

// Renamed returns the number of successful renames.
func (r RootReport) Renamed() int { return r.count(OutcomeRenamed) }

// Failed returns the number of failed filesystem operations.
func (r RootReport) Failed() int { return r.count(OutcomeFailed) }

// Skipped returns the number of entries left alone because of encoding errors.
func (r RootReport) Skipped() int { return r.count(OutcomeSkipped) }

func (r RootReport) count(o Outcome) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Outcome == o {
			n++
		}
	}
	return n
}

// RunConfig contains all parameters needed for a sanitization run.
type RunConfig struct {
	// Roots are the directories to sanitize, in order.
	Roots []string

	// Policy is the normalization policy applied to every root.
	Policy Policy

	// UserPartition is the path prefix roots are expected to live under
	// (e.g. "/Users/"). Roots outside it require approval and skip the
	// underscore collapse.
	UserPartition string

	// LogDir receives one report file per sanitized root.
	LogDir string

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if len(c.Roots) == 0 {
		errs = append(errs, fmt.Errorf("at least one root is required: %w", ErrInvalidConfig))
	}
	for i, root := range c.Roots {
		if strings.TrimSpace(root) == "" {
			errs = append(errs, fmt.Errorf("root %d is empty: %w", i, ErrInvalidConfig))
		}
	}

	if c.UserPartition == "" {
		errs = append(errs, fmt.Errorf("UserPartition is required: %w", ErrInvalidConfig))
	}

	if c.LogDir == "" {
		errs = append(errs, fmt.Errorf("LogDir is required: %w", ErrInvalidConfig))
	}

	if c.Policy != PolicyBlacklist && c.Policy != PolicyAccentStrip {
		errs = append(errs, fmt.Errorf("unknown policy %v: %w", c.Policy, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// RunSummary aggregates the reports of one run.
type RunSummary struct {
	// RunID identifies the run in console output and report files.
	RunID uuid.UUID

	Reports []RootReport

	// LogFiles lists the report files written, in root order.
	LogFiles []string
}

// TotalRenamed returns the number of successful renames across all roots.
func (s RunSummary) TotalRenamed() int {
	n := 0
	for _, r := range s.Reports {
		n += r.Renamed()
	}
	return n
}

// TotalFailed returns the number of failed operations across all roots.
func (s RunSummary) TotalFailed() int {
	n := 0
	for _, r := range s.Reports {
		n += r.Failed()
	}
	return n
}
