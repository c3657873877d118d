package sanitizer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/synclean/internal/files/filesystem"
	"github.com/vvka-141/synclean/internal/normalize"
	"github.com/vvka-141/synclean/pkg/synclean"
)

// frame is one directory waiting to be visited.
type frame struct {
	path  string
	depth int
}

// Sanitizer implements synclean.RootSanitizer.
// Thread-Safety: NOT safe for concurrent SanitizeRoot() calls on the same
// tree; the filesystem is assumed not to change underneath a run.
type Sanitizer struct {
	fs         filesystem.FileSystemProvider
	normalizer *normalize.Normalizer
	logger     synclean.Logger
}

// New creates a Sanitizer. Panics if any dependency is nil.
func New(fs filesystem.FileSystemProvider, normalizer *normalize.Normalizer, logger synclean.Logger) *Sanitizer {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if normalizer == nil {
		panic("normalizer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Sanitizer{fs: fs, normalizer: normalizer, logger: logger}
}

// SanitizeRoot walks root top-down and renames every entry whose normalized
// name differs from its current one.
func (s *Sanitizer) SanitizeRoot(ctx context.Context, root string, outsidePartition bool) (synclean.RootReport, error) {
	report := synclean.RootReport{Root: root, OutsidePartition: outsidePartition}

	info, err := s.fs.Stat(root)
	if err != nil {
		return report, fmt.Errorf("%s: %w", root, synclean.ErrRootNotFound)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%s is not a directory: %w", root, synclean.ErrRootNotFound)
	}

	s.logger.Info("Sanitizing %s folder (policy %s)...", root, s.normalizer.Policy())

	stack := []frame{{path: root}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := s.visit(current, outsidePartition, &report)
		// reversed so that siblings are visited in name order
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	s.logger.Verbose("Visited %d entries under %s", report.Visited, root)
	return report, nil
}

// visit processes every entry of one directory and returns the frames of its
// subdirectories under their final names.
func (s *Sanitizer) visit(f frame, outsidePartition bool, report *synclean.RootReport) []frame {
	s.logger.Verbose("Entering %s (depth %d)", f.path, f.depth)

	entries, err := s.fs.ReadDir(f.path)
	if err != nil {
		s.record(report, synclean.RenameRecord{
			Directory: f.path,
			IsDir:     true,
			Outcome:   synclean.OutcomeFailed,
			Err:       err,
		})
		return nil
	}

	var children []frame
	for _, entry := range entries {
		report.Visited++
		isDir := entry.IsDir()

		final := s.sanitizeEntry(f.path, entry.Name(), isDir, outsidePartition, report)
		if isDir {
			children = append(children, frame{path: filepath.Join(f.path, final), depth: f.depth + 1})
		}
	}
	return children
}

// sanitizeEntry normalizes and renames one entry of dir. It returns the name
// the entry has afterwards, which is the original name whenever the entry was
// left alone.
func (s *Sanitizer) sanitizeEntry(dir, name string, isDir, outsidePartition bool, report *synclean.RootReport) string {
	res, err := s.normalizer.Normalize(name, outsidePartition)
	if err != nil {
		s.record(report, synclean.RenameRecord{
			Directory: dir,
			Original:  name,
			IsDir:     isDir,
			Outcome:   synclean.OutcomeSkipped,
			Err:       err,
		})
		return name
	}
	if res.Name == name {
		return name
	}
	for _, stage := range res.Stages {
		s.logger.Verbose("  %s: %q", stage.Note(), name)
	}

	failed := func(err error) string {
		s.record(report, synclean.RenameRecord{
			Directory: dir,
			Original:  name,
			IsDir:     isDir,
			Outcome:   synclean.OutcomeFailed,
			Err:       err,
		})
		return name
	}

	target, err := s.resolveCollision(dir, name, res.Name, isDir)
	if err != nil {
		return failed(err)
	}
	if target == name {
		s.logger.Verbose("  %q already carries its collision suffix", name)
		return name
	}
	if err := s.fs.Rename(filepath.Join(dir, name), filepath.Join(dir, target)); err != nil {
		return failed(err)
	}

	s.record(report, synclean.RenameRecord{
		Directory: dir,
		Original:  name,
		Final:     target,
		IsDir:     isDir,
		Outcome:   synclean.OutcomeRenamed,
	})
	return target
}

func (s *Sanitizer) record(report *synclean.RootReport, rec synclean.RenameRecord) {
	report.Records = append(report.Records, rec)
	if rec.Outcome == synclean.OutcomeRenamed {
		s.logger.Info("  %s", rec.LogLine())
		return
	}
	s.logger.Error("%s", rec.LogLine())
}

// Verify Sanitizer implements the interface at compile time
var _ synclean.RootSanitizer = (*Sanitizer)(nil)
