package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider is the set of operations performed on a directory tree.
// Paths are absolute. Errors wrap fs.ErrNotExist, fs.ErrExist and
// fs.ErrPermission where applicable so callers can use errors.Is.
type FileSystemProvider interface {
	// ReadDir returns the entries of a directory sorted by name.
	// Entries describe the link itself for symbolic links.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// Exists reports whether anything, including a dangling symbolic link,
	// occupies path. The error is non-nil only when existence cannot be
	// determined.
	Exists(path string) (bool, error)

	// Rename moves oldPath to newPath. Directories move with their contents.
	Rename(oldPath, newPath string) error

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or truncates the file at path.
	WriteFile(path string, data []byte) error

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error
}
