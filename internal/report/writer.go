// Package report persists the outcome of sanitizing one root as a plain-text
// log file next to the other run logs.
package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vvka-141/synclean/internal/files/filesystem"
	"github.com/vvka-141/synclean/pkg/synclean"
)

// Writer writes one log file per root into a fixed directory.
// Files left by earlier runs are overwritten. Within one Writer, roots sharing
// a basename get numbered files ("OneDrive-2-rename.log") instead of
// replacing each other.
// Thread-Safety: NOT safe for concurrent Write() calls.
type Writer struct {
	fsProvider filesystem.FileSystemProvider
	dir        string
	written    map[string]string // log path -> root
}

// NewWriter creates a Writer storing files in dir.
// Panics if fsProvider is nil or dir is empty.
func NewWriter(fsProvider filesystem.FileSystemProvider, dir string) *Writer {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if dir == "" {
		panic("dir cannot be empty")
	}
	return &Writer{fsProvider: fsProvider, dir: dir, written: make(map[string]string)}
}

// Path returns the log file path for root: <dir>/<basename>-rename.log.
func (w *Writer) Path(root string) string {
	return filepath.Join(w.dir, baseName(root)+synclean.LogFileSuffix)
}

// pathFor returns Path(root) unless another root already wrote it through
// this Writer, in which case the first free <basename>-N-rename.log is used.
func (w *Writer) pathFor(root string) string {
	p := w.Path(root)
	for n := 2; ; n++ {
		owner, taken := w.written[p]
		if !taken || owner == root {
			return p
		}
		p = filepath.Join(w.dir, fmt.Sprintf("%s-%d%s", baseName(root), n, synclean.LogFileSuffix))
	}
}

func baseName(root string) string {
	base := filepath.Base(filepath.Clean(root))
	if base == string(filepath.Separator) || base == "." {
		base = "root"
	}
	return base
}

// Write renders rep and stores it, returning the path written.
// roots lists every folder of the run for the header line.
func (w *Writer) Write(runID uuid.UUID, roots []string, rep synclean.RootReport) (string, error) {
	if err := w.fsProvider.MkdirAll(w.dir); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", w.dir, err)
	}

	p := w.pathFor(rep.Root)
	if err := w.fsProvider.WriteFile(p, Render(runID, roots, rep)); err != nil {
		return "", fmt.Errorf("failed to write log file %s: %w", p, err)
	}
	w.written[p] = rep.Root
	return p, nil
}

// Render produces the log file content.
func Render(runID uuid.UUID, roots []string, rep synclean.RootReport) []byte {
	quoted := make([]string, len(roots))
	for i, r := range roots {
		quoted[i] = fmt.Sprintf("%q", r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Folders: %s have been sanitized.\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&buf, "Run: %s\n", runID)
	if len(rep.Records) == 0 {
		return buf.Bytes()
	}

	buf.WriteString("List of renamed files is:\n")
	for _, rec := range rep.Records {
		buf.WriteString(rec.LogLine())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
