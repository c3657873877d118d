package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vvka-141/synclean/pkg/synclean"
)

// RenderSummary formats the end-of-run overview: one line per root with its
// counts, the log files written and the totals.
func RenderSummary(summary synclean.RunSummary) string {
	rows := []string{
		TitleStyle.Render("synclean summary") + " " + MutedStyle.Render("run "+summary.RunID.String()),
		"",
	}

	for _, rep := range summary.Reports {
		rows = append(rows, renderRoot(rep))
	}

	if len(summary.LogFiles) > 0 {
		rows = append(rows, "", SubtitleStyle.Render("Log files:"))
		for _, f := range summary.LogFiles {
			rows = append(rows, fmt.Sprintf("  %s %s", SymbolBullet, f))
		}
	}

	totals := fmt.Sprintf("%d renamed, %d failed", summary.TotalRenamed(), summary.TotalFailed())
	if summary.TotalFailed() > 0 {
		totals = ErrorStyle.Render(totals)
	} else {
		totals = SuccessStyle.Render(totals)
	}
	rows = append(rows, "", "Total: "+totals)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderRoot(rep synclean.RootReport) string {
	root := RootStyle.Render(rep.Root)
	if rep.Declined {
		return fmt.Sprintf("%s %s %s", WarningStyle.Render(SymbolSkip), root, WarningStyle.Render("declined"))
	}

	symbol := SuccessStyle.Render(SymbolCheck)
	if rep.Failed() > 0 {
		symbol = ErrorStyle.Render(SymbolCross)
	}
	counts := fmt.Sprintf("%d entries, %d renamed, %d failed, %d skipped",
		rep.Visited, rep.Renamed(), rep.Failed(), rep.Skipped())
	line := fmt.Sprintf("%s %s %s", symbol, root, MutedStyle.Render(counts))
	if rep.OutsidePartition {
		line += " " + WarningStyle.Render("(outside user partition)")
	}
	return line
}
