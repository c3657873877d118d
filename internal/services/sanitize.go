package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vvka-141/synclean/internal/files/filesystem"
	"github.com/vvka-141/synclean/internal/normalize"
	"github.com/vvka-141/synclean/internal/report"
	"github.com/vvka-141/synclean/internal/sanitizer"
	"github.com/vvka-141/synclean/pkg/synclean"
)

// ReportWriter persists the report of one root and returns the file written.
type ReportWriter interface {
	Write(runID uuid.UUID, roots []string, rep synclean.RootReport) (string, error)
}

// ReportWriterFactory builds the ReportWriter for a run's log directory.
type ReportWriterFactory func(dir string) ReportWriter

// NewReportWriterFactory returns a factory producing report.Writer values on fsProvider.
func NewReportWriterFactory(fsProvider filesystem.FileSystemProvider) ReportWriterFactory {
	return func(dir string) ReportWriter {
		return report.NewWriter(fsProvider, dir)
	}
}

// SanitizeService implements the Runner interface.
// Thread-Safety: NOT safe for concurrent Run() calls on overlapping roots.
type SanitizeService struct {
	fsProvider    filesystem.FileSystemProvider
	approver      synclean.Approver
	logger        synclean.Logger
	writerFactory ReportWriterFactory
	newRunID      func() uuid.UUID
}

// NewSanitizeService creates a new SanitizeService with all dependencies injected.
// Panics on nil dependencies.
func NewSanitizeService(
	fsProvider filesystem.FileSystemProvider,
	approver synclean.Approver,
	logger synclean.Logger,
	writerFactory ReportWriterFactory,
) *SanitizeService {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if writerFactory == nil {
		panic("writerFactory cannot be nil")
	}
	return &SanitizeService{
		fsProvider:    fsProvider,
		approver:      approver,
		logger:        logger,
		writerFactory: writerFactory,
		newRunID:      uuid.New,
	}
}

// Run sanitizes every root of config in order.
//
// Roots outside the user partition are only touched after approval; a
// declined root is reported with Declined set and is not an error. Report
// write failures do not stop the run and are returned joined at the end.
func (s *SanitizeService) Run(ctx context.Context, config synclean.RunConfig) (synclean.RunSummary, error) {
	if err := config.Validate(); err != nil {
		return synclean.RunSummary{}, err
	}

	roots, err := absRoots(config.Roots)
	if err != nil {
		return synclean.RunSummary{}, err
	}

	summary := synclean.RunSummary{RunID: s.newRunID()}
	s.logger.Verbose("Run %s: %d folder(s), policy %s", summary.RunID, len(roots), config.Policy)

	san := sanitizer.New(s.fsProvider, normalize.New(config.Policy, normalize.DefaultRules()), s.logger)
	writer := s.writerFactory(config.LogDir)

	var writeErrs []error
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outside := !insidePartition(root, config.UserPartition)
		if outside {
			s.logger.Verbose("%s is outside %s", root, config.UserPartition)
			approved, err := s.approver.RequestApproval(ctx, root)
			if err != nil {
				return summary, fmt.Errorf("approval for %s failed: %w", root, err)
			}
			if !approved {
				s.logger.Info("Skipping %s", root)
				summary.Reports = append(summary.Reports, synclean.RootReport{
					Root:             root,
					OutsidePartition: true,
					Declined:         true,
				})
				continue
			}
		}

		rep, err := san.SanitizeRoot(ctx, root, outside)
		if err != nil {
			return summary, err
		}
		summary.Reports = append(summary.Reports, rep)

		logFile, err := writer.Write(summary.RunID, roots, rep)
		if err != nil {
			s.logger.Error("Cannot write log for %s: %v", root, err)
			writeErrs = append(writeErrs, err)
			continue
		}
		summary.LogFiles = append(summary.LogFiles, logFile)
		s.logger.Info("Sanitized %s: %d renamed, %d failed, %d skipped (log: %s)",
			root, rep.Renamed(), rep.Failed(), rep.Skipped(), logFile)
	}

	return summary, errors.Join(writeErrs...)
}

// insidePartition reports whether root is partition itself or lies below it.
// The comparison is by path component, so "/UsersShared" is not inside "/Users".
func insidePartition(root, partition string) bool {
	p := filepath.Clean(partition)
	if root == p {
		return true
	}
	sep := string(filepath.Separator)
	if !strings.HasSuffix(p, sep) {
		p += sep
	}
	return strings.HasPrefix(root, p)
}

func absRoots(roots []string) ([]string, error) {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve %s: %w", r, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

// Verify SanitizeService implements the interface at compile time
var _ synclean.Runner = (*SanitizeService)(nil)
