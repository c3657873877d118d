// Package files groups the filesystem-facing sub-packages:
//   - filesystem: FileSystemProvider with OS and in-memory implementations
//   - discovery: validation of explicit folders and search for sync folders
package files
