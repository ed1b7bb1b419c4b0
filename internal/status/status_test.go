package status

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	slerrors "github.com/alexisbeaulieu97/statusline/pkg/errors"
)

func TestDecodeFullDocument(t *testing.T) {
	t.Parallel()

	input := `{
		"session_id": "abc123def456",
		"current_dir": "/home/dev/project",
		"model": {"id": "claude-sonnet-4", "display_name": "Sonnet 4"},
		"vim_mode": {"mode": "INSERT"},
		"context_window": {"remaining_percentage": 62.5},
		"output_style": {"name": "default"},
		"cost": {"total_cost_usd": 1.25, "total_lines_added": 120, "total_lines_removed": 7},
		"turn_count": 14
	}`

	st, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, "abc123def456", st.SessionID)
	require.Equal(t, "/home/dev/project", st.Directory())
	require.Equal(t, "Sonnet 4", st.Model.DisplayName)
	require.Equal(t, "INSERT", st.VimMode.Mode)
	require.InDelta(t, 62.5, *st.ContextWindow.RemainingPercentage, 0.001)
	require.Equal(t, 120, *st.Cost.TotalLinesAdded)
	require.Equal(t, 14, *st.TurnCount)
}

func TestDecodeEmptyInputYieldsEmptyStatus(t *testing.T) {
	t.Parallel()

	st, err := Decode(strings.NewReader("  \n"))
	require.NoError(t, err)
	require.NotNil(t, st)
	require.Empty(t, st.Directory())
	require.Nil(t, st.Model)
}

func TestDecodeMalformedInput(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("{not json"))
	var parseErr *slerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "stdin", parseErr.Source)
	require.Equal(t, 1, parseErr.Line)
}

func TestDecodeReportsLineOfTypeError(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("{\n  \"session_id\": \"abc\",\n  \"turn_count\": \"many\"\n}"))
	var parseErr *slerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 3, parseErr.Line)
	require.Contains(t, err.Error(), "stdin:3")
}

func TestDirectoryFallsBackToWorkspace(t *testing.T) {
	t.Parallel()

	st := &Status{Workspace: &Workspace{CurrentDir: "/srv/app"}}
	require.Equal(t, "/srv/app", st.Directory())

	var nilStatus *Status
	require.Empty(t, nilStatus.Directory())
}

func TestUsageWindowResetAt(t *testing.T) {
	t.Parallel()

	w := &UsageWindow{ResetTime: "2026-10-18T15:00:00Z", PercentUsed: 40}
	at, ok := w.ResetAt()
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC), at.UTC())

	_, ok = (&UsageWindow{ResetTime: "tomorrow"}).ResetAt()
	require.False(t, ok)

	var missing *UsageWindow
	_, ok = missing.ResetAt()
	require.False(t, ok)
}

func TestLoadUsage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	usage, err := LoadUsage(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	require.Nil(t, usage)

	path := filepath.Join(dir, "usage.json")
	doc := `{
		"current_session": {"reset_time": "2026-10-18T15:00:00Z", "percent_used": 37},
		"weekly_all": {"reset_time": "2026-10-21T00:00:00Z", "percent_used": 81},
		"weekly_sonnet": null,
		"extra_usage": {"is_enabled": true, "monthly_limit": 50, "used_credits": 12.5, "utilization": 25}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	usage, err = LoadUsage(path)
	require.NoError(t, err)
	require.NotNil(t, usage)
	require.InDelta(t, 37, usage.CurrentSession.PercentUsed, 0.001)
	require.Nil(t, usage.WeeklySonnet)
	require.True(t, usage.ExtraUsage.IsEnabled)

	nullPath := filepath.Join(dir, "null.json")
	require.NoError(t, os.WriteFile(nullPath, []byte("null"), 0o644))
	usage, err = LoadUsage(nullPath)
	require.NoError(t, err)
	require.Nil(t, usage)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("[1,2"), 0o644))
	_, err = LoadUsage(badPath)
	require.Error(t, err)
}
