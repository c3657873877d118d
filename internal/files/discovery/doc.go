// Package discovery locates the directories a sanitize run operates on.
//
// Roots are either given explicitly, in which case ValidateRoots checks that
// each one exists and is a directory, or found by Finder, which searches a
// home directory for folders whose name contains the sync pattern
// (for example "OneDrive - Contoso").
//
// Both work through filesystem.FileSystemProvider so they can be tested
// against the in-memory filesystem.
package discovery
