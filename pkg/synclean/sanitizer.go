package synclean

import "context"

// RootSanitizer renames every entry below one root so that it satisfies the
// sync target's naming rules.
type RootSanitizer interface {
	// SanitizeRoot walks root top-down. outsidePartition disables the
	// cosmetic underscore collapse. Per-entry failures are returned as
	// records, not errors; the error is reserved for an invalid root or a
	// cancelled context.
	SanitizeRoot(ctx context.Context, root string, outsidePartition bool) (RootReport, error)
}

// Runner sanitizes every root of a RunConfig and writes their reports.
type Runner interface {
	Run(ctx context.Context, config RunConfig) (RunSummary, error)
}
