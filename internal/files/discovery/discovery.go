package discovery

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/synclean/internal/files/filesystem"
	"github.com/vvka-141/synclean/pkg/synclean"
)

// ValidateRoots checks that every path exists and is a directory.
// The first offending path is reported wrapped in synclean.ErrRootNotFound.
func ValidateRoots(fsProvider filesystem.FileSystemProvider, paths []string) error {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if len(paths) == 0 {
		return fmt.Errorf("no folders given: %w", synclean.ErrNoRoots)
	}
	for _, p := range paths {
		info, err := fsProvider.Stat(p)
		if err != nil {
			return fmt.Errorf("folder %s: %w", p, synclean.ErrRootNotFound)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory: %w", p, synclean.ErrRootNotFound)
		}
	}
	return nil
}

// Finder searches a directory tree for sync folders.
// Safe for concurrent use as long as the filesystem provider is.
type Finder struct {
	fsProvider filesystem.FileSystemProvider
	pattern    string
	excluded   map[string]bool
}

// NewFinder creates a Finder matching directory names that contain pattern
// (case-insensitive) and never entering directories named in excluded.
// An empty pattern falls back to synclean.DefaultSyncPattern.
// Panics if fsProvider is nil.
func NewFinder(fsProvider filesystem.FileSystemProvider, pattern string, excluded []string) *Finder {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if strings.TrimSpace(pattern) == "" {
		pattern = synclean.DefaultSyncPattern
	}
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}
	return &Finder{
		fsProvider: fsProvider,
		pattern:    strings.ToLower(pattern),
		excluded:   skip,
	}
}

// Find walks home and returns every matching directory, sorted.
// Matched directories are not searched further and unreadable directories
// are skipped. Returns synclean.ErrNoRoots when nothing matches.
func (f *Finder) Find(home string) ([]string, error) {
	if _, err := f.fsProvider.Stat(home); err != nil {
		return nil, fmt.Errorf("home directory %s: %w", home, synclean.ErrNoRoots)
	}

	var found []string
	stack := []string{home}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := f.fsProvider.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || f.excluded[entry.Name()] {
				continue
			}
			p := filepath.Join(dir, entry.Name())
			if f.Matches(entry.Name()) {
				found = append(found, p)
				continue
			}
			stack = append(stack, p)
		}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("no folder matching %q under %s: %w", f.pattern, home, synclean.ErrNoRoots)
	}
	sort.Strings(found)
	return found, nil
}

// Matches reports whether a directory name contains the sync pattern.
func (f *Finder) Matches(name string) bool {
	return strings.Contains(strings.ToLower(name), f.pattern)
}
