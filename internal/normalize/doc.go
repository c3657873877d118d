// Package normalize maps a file or directory name to a candidate name that the
// sync target accepts.
//
// The normalizer is a pure function of its input: it performs no I/O and holds
// no mutable state, so a single Normalizer may be shared freely. Collision
// handling is not its concern; the sanitizer resolves collisions against the
// filesystem after a candidate has been produced.
//
// Stages run in a fixed order because later stages assume earlier cleanups:
//
//  1. encoding (policy specific)
//  2. leading/trailing spaces
//  3. trailing periods
//  4. forbidden characters (blacklist policy only)
//  5. reserved device names
//  6. length cap
//  7. consecutive underscore collapse (inside the user partition only)
//
// A name that ends up empty is replaced by a single placeholder.
package normalize
