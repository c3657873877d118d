// Package tui holds terminal concerns: interactive-mode detection, the shared
// lipgloss palette and rendering of the end-of-run summary.
package tui
