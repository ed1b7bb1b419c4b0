package style

import (
	"math"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/statusline/internal/ansihtml"
)

func TestResolveColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  lipgloss.Color
		ok    bool
	}{
		{"named", "red", "1", true},
		{"named case insensitive", "BrightCyan", "14", true},
		{"gray alias", "grey", "8", true},
		{"ansi256", "ansi256:208", "208", true},
		{"ansi256 out of range", "ansi256:300", "", false},
		{"hex prefix", "hex:FF8800", "#ff8800", true},
		{"hash hex", "#00ff00", "#00ff00", true},
		{"short hex rejected", "#fff", "", false},
		{"unknown", "chartreuse", "", false},
		{"empty", "  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ResolveColor(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorizeEmitsSGR(t *testing.T) {
	t.Parallel()

	basic := New(LevelBasic)
	require.Equal(t, "\x1b[31mred\x1b[0m", basic.Colorize("red", "red", nil))
	require.Equal(t, "\x1b[91mbright\x1b[0m", basic.Colorize("bright", "brightRed", nil))

	extended := New(Level256)
	require.Equal(t, "\x1b[38;5;208morange\x1b[0m", extended.Colorize("orange", "ansi256:208", nil))

	truecolor := New(LevelTrueColor)
	require.Equal(t, "\x1b[38;2;255;0;0mhex\x1b[0m", truecolor.Colorize("hex", "#ff0000", nil))
}

func TestColorizeFallbacks(t *testing.T) {
	t.Parallel()

	c := New(LevelBasic)
	upper := func(s string) string { return "<" + s + ">" }

	require.Equal(t, "<text>", c.Colorize("text", "", upper))
	require.Equal(t, "<text>", c.Colorize("text", "not-a-color", upper))
	require.Equal(t, "text", c.Colorize("text", "", nil))
	require.Equal(t, "", c.Colorize("", "red", upper))
}

func TestColorizeWithoutColorLevel(t *testing.T) {
	t.Parallel()

	c := New(LevelNone)
	require.Equal(t, "plain", c.Colorize("plain", "red", nil))
	require.Equal(t, "plain", c.Dim("plain"))
	require.Equal(t, "plain", c.Bold("plain"))

	var nilColorizer *Colorizer
	require.Equal(t, "plain", nilColorizer.Colorize("plain", "red", nil))
}

func TestColorizeKeepsTextVerbatim(t *testing.T) {
	t.Parallel()

	inputs := []string{"a\tb", "x\nlonger", "  padded  ", "wide 日本 ✓", "\t\t"}
	for _, level := range []Level{LevelBasic, Level256, LevelTrueColor} {
		c := New(level)
		for _, in := range inputs {
			assert.Equal(t, in, ansihtml.StripANSI(c.Colorize(in, "red", nil)), "level %d %q", level, in)
			assert.Equal(t, in, ansihtml.StripANSI(c.Dim(in)), "level %d %q", level, in)
			assert.Equal(t, in, ansihtml.StripANSI(c.Bold(in)), "level %d %q", level, in)
		}
	}

	basic := New(LevelBasic)
	require.Equal(t, "\x1b[31ma\tb\x1b[0m", basic.Colorize("a\tb", "red", nil))
	require.Equal(t, "\x1b[31mx\nlonger\x1b[0m", basic.Colorize("x\nlonger", "red", nil))
}

func TestDimAndBold(t *testing.T) {
	t.Parallel()

	c := New(LevelBasic)
	require.Equal(t, "\x1b[2mdim\x1b[0m", c.Dim("dim"))
	require.Equal(t, "\x1b[1mbold\x1b[0m", c.Bold("bold"))
}

func TestClampPercent(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, ClampPercent(-10))
	require.Equal(t, 100, ClampPercent(150))
	require.Equal(t, 42, ClampPercent(42.9))
	require.Equal(t, 0, ClampPercent(math.NaN()))
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	require.Equal(t, SeverityLow, Severity(49.9, 50, 80))
	require.Equal(t, SeverityMedium, Severity(50, 50, 80))
	require.Equal(t, SeverityMedium, Severity(79.99, 50, 80))
	require.Equal(t, SeverityHigh, Severity(80, 50, 80))
	require.Equal(t, SeverityHigh, Severity(30, 20, 25))
	require.Equal(t, SeverityLow, Severity(10, 0, 0))
}

func TestUsageBarSegments(t *testing.T) {
	t.Parallel()

	c := New(LevelNone)
	opts := DefaultBarOptions()

	tests := []struct {
		percent float64
		want    string
	}{
		{0, "░░░░░░░░░░   0%"},
		{1, "█░░░░░░░░░   1%"},
		{10, "█░░░░░░░░░  10%"},
		{11, "██░░░░░░░░  11%"},
		{55.7, "██████░░░░  55%"},
		{100, "██████████ 100%"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, c.UsageBar(tt.percent, opts), "percent %v", tt.percent)
	}
}

func TestUsageBarClamps(t *testing.T) {
	t.Parallel()

	c := New(LevelNone)
	opts := DefaultBarOptions()

	require.Equal(t, "░░░░░░░░░░   0%", c.UsageBar(-10, opts))
	require.Equal(t, "██████████ 100%", c.UsageBar(150, opts))
}

func TestUsageBarHalves(t *testing.T) {
	t.Parallel()

	c := New(LevelNone)

	barOnly := DefaultBarOptions()
	barOnly.ShowPercent = false
	require.Equal(t, "███░░░░░░░", c.UsageBar(25, barOnly))

	percentOnly := DefaultBarOptions()
	percentOnly.ShowBar = false
	require.Equal(t, " 25%", c.UsageBar(25, percentOnly))

	require.Equal(t, "", c.UsageBar(25, BarOptions{}))
}

func TestUsageBarColorsBySeverity(t *testing.T) {
	t.Parallel()

	c := New(LevelBasic)
	opts := DefaultBarOptions()
	opts.ShowBar = false

	require.Equal(t, "\x1b[32m 10%\x1b[0m", c.UsageBar(10, opts))
	require.Equal(t, "\x1b[33m 60%\x1b[0m", c.UsageBar(60, opts))
	require.Equal(t, "\x1b[31m 90%\x1b[0m", c.UsageBar(90, opts))

	opts.HighThreshold = 95
	opts.MediumColor = "blue"
	require.Equal(t, "\x1b[34m 90%\x1b[0m", c.UsageBar(90, opts))
}
