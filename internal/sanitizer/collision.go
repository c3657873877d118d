package sanitizer

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vvka-141/synclean/pkg/synclean"
)

// withSuffix builds the n-th alternative for candidate. Files keep their
// extension last ("cafe-Copy0.txt"); directories, dot-files and names without
// an extension get the suffix appended.
func withSuffix(candidate string, n int, isDir bool) string {
	suffix := synclean.CopySuffix + strconv.Itoa(n)
	if isDir {
		return candidate + suffix
	}
	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(candidate, ext)
	if ext == "" || stem == "" {
		return candidate + suffix
	}
	return stem + suffix + ext
}

// resolveCollision returns the first of candidate, candidate-Copy0,
// candidate-Copy1, ... that is free in dir. The entry's own name, current,
// counts as free so an entry already carrying its suffix keeps it. The search
// is unbounded.
func (s *Sanitizer) resolveCollision(dir, current, candidate string, isDir bool) (string, error) {
	target := candidate
	for n := 0; ; n++ {
		if target == current {
			return target, nil
		}
		taken, err := s.fs.Exists(filepath.Join(dir, target))
		if err != nil {
			return "", err
		}
		if !taken {
			return target, nil
		}
		next := withSuffix(candidate, n, isDir)
		s.logger.Verbose("  Path %q already exists, suffixing with %q",
			filepath.Join(dir, target), synclean.CopySuffix+strconv.Itoa(n))
		target = next
	}
}
