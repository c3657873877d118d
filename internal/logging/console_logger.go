package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vvka-141/synclean/pkg/synclean"
)

// ConsoleLogger writes leveled log messages to stderr.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	logger  *log.Logger
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stderr, verbose)
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to w.
func NewConsoleLoggerWithWriter(w io.Writer, verbose bool) *ConsoleLogger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           log.InfoLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return &ConsoleLogger{verbose: verbose, logger: logger}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.logger.Debugf(format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

var _ synclean.Logger = (*ConsoleLogger)(nil)
