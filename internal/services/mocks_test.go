package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vvka-141/synclean/pkg/synclean"
)

type mockApprover struct {
	approved bool
	err      error
	asked    []string
}

func (m *mockApprover) RequestApproval(_ context.Context, root string) (bool, error) {
	m.asked = append(m.asked, root)
	return m.approved, m.err
}

type mockReportWriter struct {
	dir     string
	failFor map[string]bool
	written []synclean.RootReport
	roots   []string
}

func (m *mockReportWriter) Write(_ uuid.UUID, roots []string, rep synclean.RootReport) (string, error) {
	if m.failFor[rep.Root] {
		return "", errors.New("disk full")
	}
	m.roots = roots
	m.written = append(m.written, rep)
	return m.dir + "/" + rep.Root + ".log", nil
}

type capturingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *capturingLogger) log(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *capturingLogger) Verbose(format string, args ...interface{}) { l.log(format, args...) }
func (l *capturingLogger) Info(format string, args ...interface{})    { l.log(format, args...) }
func (l *capturingLogger) Error(format string, args ...interface{})   { l.log(format, args...) }
