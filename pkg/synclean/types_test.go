package synclean_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/synclean/pkg/synclean"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    synclean.Policy
		wantErr bool
	}{
		{"blacklist", synclean.PolicyBlacklist, false},
		{"", synclean.PolicyBlacklist, false},
		{"Accent-Strip", synclean.PolicyAccentStrip, false},
		{"force", synclean.PolicyAccentStrip, false},
		{" accentstrip ", synclean.PolicyAccentStrip, false},
		{"ascii", synclean.PolicyBlacklist, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := synclean.ParsePolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, synclean.ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicy_SetAndString(t *testing.T) {
	var p synclean.Policy
	require.NoError(t, p.Set("accent-strip"))
	assert.Equal(t, synclean.PolicyAccentStrip, p)
	assert.Equal(t, "accent-strip", p.String())
	assert.Equal(t, "policy", p.Type())

	assert.Error(t, p.Set("nope"))
	assert.Equal(t, synclean.PolicyAccentStrip, p, "failed Set must not change the value")
}

func TestRenameRecord_LogLine(t *testing.T) {
	denied := errors.New("permission denied")

	tests := []struct {
		name   string
		record synclean.RenameRecord
		want   string
	}{
		{
			name:   "renamed",
			record: synclean.RenameRecord{Directory: "/d", Original: "a?.txt", Final: "a_.txt"},
			want:   `Renaming: "a?.txt" -> "a_.txt"`,
		},
		{
			name:   "failed rename",
			record: synclean.RenameRecord{Directory: "/d", Original: "x:", Outcome: synclean.OutcomeFailed, Err: denied},
			want:   `ERROR - Cannot rename "x:" in "/d": permission denied. Check out manually.`,
		},
		{
			name:   "unreadable directory",
			record: synclean.RenameRecord{Directory: "/d/locked", Outcome: synclean.OutcomeFailed, Err: denied},
			want:   `ERROR - Cannot read directory "/d/locked": permission denied. Check out manually.`,
		},
		{
			name:   "skipped",
			record: synclean.RenameRecord{Directory: "/d", Original: "a\x81", Outcome: synclean.OutcomeSkipped, Err: synclean.ErrEncoding},
			want:   `SKIPPED - Cannot re-encode name in "/d": name cannot be re-encoded. Check out manually.`,
		},
		{
			name:   "invalid utf-8 is made printable",
			record: synclean.RenameRecord{Directory: "/d", Original: "caf\xe9", Final: "café"},
			want:   `Renaming: "caf�" -> "café"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.LogLine())
		})
	}
}

func TestRootReport_Counts(t *testing.T) {
	report := synclean.RootReport{
		Records: []synclean.RenameRecord{
			{Outcome: synclean.OutcomeRenamed},
			{Outcome: synclean.OutcomeRenamed},
			{Outcome: synclean.OutcomeFailed},
			{Outcome: synclean.OutcomeSkipped},
		},
	}
	assert.Equal(t, 2, report.Renamed())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 1, report.Skipped())

	summary := synclean.RunSummary{Reports: []synclean.RootReport{report, report}}
	assert.Equal(t, 4, summary.TotalRenamed())
	assert.Equal(t, 2, summary.TotalFailed())
}

func TestRunConfig_Validate(t *testing.T) {
	valid := synclean.RunConfig{
		Roots:         []string{"/Users/me/OneDrive"},
		UserPartition: "/Users/",
		LogDir:        "/tmp",
	}
	require.NoError(t, valid.Validate())

	empty := synclean.RunConfig{Policy: synclean.Policy(7)}
	err := empty.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, synclean.ErrInvalidConfig))
	for _, fragment := range []string{"root", "UserPartition", "LogDir", "policy"} {
		assert.Contains(t, err.Error(), fragment)
	}

	blank := valid
	blank.Roots = []string{"  "}
	assert.Error(t, blank.Validate())
}
