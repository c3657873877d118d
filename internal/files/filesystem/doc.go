// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines the operations the sanitizer and its collaborators
// perform on a directory tree (listing, existence checks, renames, report
// writes), enabling testability through an in-memory implementation while
// maintaining compatibility with the OS filesystem.
//
// Key types:
//   - FileSystemProvider: The operations available on a tree
//   - FileInfo: File metadata, an alias of fs.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing, with
//     injectable rename and listing failures
package filesystem
