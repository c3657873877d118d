package tui

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/synclean/pkg/synclean"
)

func TestRenderSummary(t *testing.T) {
	summary := synclean.RunSummary{
		RunID: uuid.MustParse("3e2a7c10-5b4d-4f6e-8a9b-0c1d2e3f4a5b"),
		Reports: []synclean.RootReport{
			{
				Root:    "/Users/alice/OneDrive",
				Visited: 12,
				Records: []synclean.RenameRecord{
					{Original: "a?", Final: "a_", Outcome: synclean.OutcomeRenamed},
					{Original: "b:", Outcome: synclean.OutcomeFailed, Err: errors.New("denied")},
				},
			},
			{Root: "/Volumes/ext", OutsidePartition: true, Declined: true},
			{Root: "/Volumes/usb", OutsidePartition: true, Visited: 3},
		},
		LogFiles: []string{"/tmp/OneDrive-rename.log", "/tmp/usb-rename.log"},
	}

	out := RenderSummary(summary)

	assert.Contains(t, out, "3e2a7c10-5b4d-4f6e-8a9b-0c1d2e3f4a5b")
	assert.Contains(t, out, "/Users/alice/OneDrive")
	assert.Contains(t, out, "12 entries, 1 renamed, 1 failed, 0 skipped")
	assert.Contains(t, out, "declined")
	assert.Contains(t, out, "(outside user partition)")
	assert.Contains(t, out, "/tmp/usb-rename.log")
	assert.Contains(t, out, "1 renamed, 1 failed")
}

func TestRenderSummary_Empty(t *testing.T) {
	out := RenderSummary(synclean.RunSummary{})

	assert.Contains(t, out, "synclean summary")
	assert.Contains(t, out, "0 renamed, 0 failed")
	assert.NotContains(t, out, "Log files:")
}
