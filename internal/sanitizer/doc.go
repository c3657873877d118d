// Package sanitizer renames every entry of a directory tree to a name the
// sync target accepts.
//
// Traversal is depth-first over an explicit stack of frames owned by the
// sanitizer. A frame's listing is read once; every entry of the directory is
// normalized, collision-checked and renamed before any child frame is pushed,
// and children are pushed under their final names. A directory renamed while
// its parent is processed is therefore still visited, under its new path, and
// no listing is ever modified while it is being iterated.
//
// Failures below the root (unreadable directories, failed renames, names that
// cannot be re-encoded) become records in the RootReport; traversal continues
// with the rest of the tree.
package sanitizer
