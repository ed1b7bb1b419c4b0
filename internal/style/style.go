// Package style maps abstract color names to terminal escape sequences and builds
// the block-character usage bars shared by the usage widgets.
package style

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Level selects how many colors escape sequences may use.
type Level int

const (
	LevelNone Level = iota
	LevelBasic
	Level256
	LevelTrueColor
)

// DefaultLevel is used when settings do not specify a color level.
const DefaultLevel = Level256

func (l Level) profile() termenv.Profile {
	switch l {
	case LevelBasic:
		return termenv.ANSI
	case Level256:
		return termenv.ANSI256
	case LevelTrueColor:
		return termenv.TrueColor
	default:
		return termenv.Ascii
	}
}

var (
	hexPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

	namedColors = map[string]string{
		"black":         "0",
		"red":           "1",
		"green":         "2",
		"yellow":        "3",
		"blue":          "4",
		"magenta":       "5",
		"cyan":          "6",
		"white":         "7",
		"gray":          "8",
		"grey":          "8",
		"brightblack":   "8",
		"brightred":     "9",
		"brightgreen":   "10",
		"brightyellow":  "11",
		"brightblue":    "12",
		"brightmagenta": "13",
		"brightcyan":    "14",
		"brightwhite":   "15",
	}
)

// ResolveColor converts a color value from settings into a lipgloss color.
// Accepted forms: a name ("red", "brightCyan", "gray"), "ansi256:N", "hex:RRGGBB" and "#RRGGBB".
func ResolveColor(value string) (lipgloss.Color, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(value))
	if code, ok := namedColors[key]; ok {
		return lipgloss.Color(code), true
	}

	switch {
	case strings.HasPrefix(key, "ansi256:"), strings.HasPrefix(key, "ansi:"):
		raw := key[strings.Index(key, ":")+1:]
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
		return lipgloss.Color(strconv.Itoa(n)), true
	case strings.HasPrefix(key, "hex:"):
		raw := key[len("hex:"):]
		if !hexPattern.MatchString(raw) {
			return "", false
		}
		return lipgloss.Color("#" + raw), true
	case strings.HasPrefix(key, "#"):
		if !hexPattern.MatchString(key[1:]) {
			return "", false
		}
		return lipgloss.Color(key), true
	}

	return "", false
}

// IsColor reports whether value is a color ResolveColor understands.
func IsColor(value string) bool {
	_, ok := ResolveColor(value)
	return ok
}

// Colorizer renders text with a fixed color level regardless of the output device.
// It only wraps text in SGR sequences; the text itself is never reflowed.
type Colorizer struct {
	level   Level
	profile termenv.Profile
}

// New returns a Colorizer pinned to the given level.
func New(level Level) *Colorizer {
	if level < LevelNone || level > LevelTrueColor {
		level = DefaultLevel
	}
	return &Colorizer{level: level, profile: level.profile()}
}

// Level reports the color level the Colorizer was built with.
func (c *Colorizer) Level() Level {
	if c == nil {
		return LevelNone
	}
	return c.level
}

// Colorize applies color to text. When color is empty or unknown the fallback
// formatter is used; with neither, text is returned unchanged.
func (c *Colorizer) Colorize(text, color string, fallback func(string) string) string {
	if text == "" {
		return ""
	}
	if c != nil && c.level != LevelNone {
		if resolved, ok := ResolveColor(color); ok {
			return c.profile.String().Foreground(c.profile.Color(string(resolved))).Styled(text)
		}
	}
	if fallback != nil {
		return fallback(text)
	}
	return text
}

// Dim renders text with reduced intensity.
func (c *Colorizer) Dim(text string) string {
	if text == "" || c == nil || c.level == LevelNone {
		return text
	}
	return c.profile.String().Faint().Styled(text)
}

// Bold renders text in bold.
func (c *Colorizer) Bold(text string) string {
	if text == "" || c == nil || c.level == LevelNone {
		return text
	}
	return c.profile.String().Bold().Styled(text)
}

const (
	barSegments   = 10
	barFilledRune = "█"
	barEmptyRune  = "░"

	// Severity keys double as colors[stateKey] lookups in widget settings.
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// BarOptions controls UsageBar. Zero thresholds and empty colors fall back to defaults.
type BarOptions struct {
	ShowBar         bool
	ShowPercent     bool
	MediumThreshold int
	HighThreshold   int
	LowColor        string
	MediumColor     string
	HighColor       string
}

// DefaultBarOptions shows both halves with the 50/80 green/yellow/red scheme.
func DefaultBarOptions() BarOptions {
	return BarOptions{
		ShowBar:         true,
		ShowPercent:     true,
		MediumThreshold: 50,
		HighThreshold:   80,
		LowColor:        "green",
		MediumColor:     "yellow",
		HighColor:       "red",
	}
}

func (o BarOptions) normalized() BarOptions {
	defaults := DefaultBarOptions()
	if o.MediumThreshold <= 0 {
		o.MediumThreshold = defaults.MediumThreshold
	}
	if o.HighThreshold <= 0 {
		o.HighThreshold = defaults.HighThreshold
	}
	if o.LowColor == "" {
		o.LowColor = defaults.LowColor
	}
	if o.MediumColor == "" {
		o.MediumColor = defaults.MediumColor
	}
	if o.HighColor == "" {
		o.HighColor = defaults.HighColor
	}
	return o
}

// ClampPercent clamps percent to [0,100] and floors it. NaN counts as 0.
func ClampPercent(percent float64) int {
	if math.IsNaN(percent) || percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return 100
	}
	return int(math.Floor(percent))
}

// Severity buckets a percentage: below medium is low, below high is medium, otherwise high.
func Severity(percent float64, medium, high int) string {
	if medium <= 0 {
		medium = 50
	}
	if high <= 0 {
		high = 80
	}
	p := ClampPercent(percent)
	switch {
	case p >= high:
		return SeverityHigh
	case p >= medium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// FormatPercent right-aligns a clamped percentage in three columns.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%3d%%", ClampPercent(percent))
}

// UsageBar renders a 10-segment bar and/or a right-aligned percentage colored by severity.
func (c *Colorizer) UsageBar(percent float64, opts BarOptions) string {
	if !opts.ShowBar && !opts.ShowPercent {
		return ""
	}
	opts = opts.normalized()

	p := ClampPercent(percent)
	parts := make([]string, 0, 2)
	if opts.ShowBar {
		filled := (p + barSegments - 1) / barSegments
		parts = append(parts, strings.Repeat(barFilledRune, filled)+strings.Repeat(barEmptyRune, barSegments-filled))
	}
	if opts.ShowPercent {
		parts = append(parts, FormatPercent(float64(p)))
	}

	var color string
	switch Severity(float64(p), opts.MediumThreshold, opts.HighThreshold) {
	case SeverityHigh:
		color = opts.HighColor
	case SeverityMedium:
		color = opts.MediumColor
	default:
		color = opts.LowColor
	}

	return c.Colorize(strings.Join(parts, " "), color, nil)
}
