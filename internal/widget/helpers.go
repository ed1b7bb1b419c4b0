package widget

import (
	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/style"
)

// stateColor resolves colors[state], then color, then fallback.
func stateColor(cfg *config.WidgetConfig, state, fallback string) string {
	if cfg != nil {
		if state != "" {
			if c := cfg.Colors[state]; c != "" {
				return c
			}
		}
		if cfg.Color != "" {
			return cfg.Color
		}
	}
	return fallback
}

// paint colorizes text using the shared precedence.
func paint(ctx *RenderContext, cfg *config.WidgetConfig, text, state, fallback string) string {
	return ctx.Style.Colorize(text, stateColor(cfg, state, fallback), nil)
}

// paintDim colorizes text using the shared precedence, dimming it when no
// color applies.
func paintDim(ctx *RenderContext, cfg *config.WidgetConfig, text, state string) string {
	return ctx.Style.Colorize(text, stateColor(cfg, state, ""), ctx.Style.Dim)
}

// ThresholdOptions bucket a percentage into low/medium/high.
type ThresholdOptions struct {
	MediumThreshold int `yaml:"mediumThreshold" validate:"min=1,max=100"`
	HighThreshold   int `yaml:"highThreshold" validate:"min=1,max=100,gtefield=MediumThreshold"`
}

func defaultThresholds() ThresholdOptions {
	d := style.DefaultBarOptions()
	return ThresholdOptions{MediumThreshold: d.MediumThreshold, HighThreshold: d.HighThreshold}
}

func (t ThresholdOptions) severity(percent float64) string {
	return style.Severity(percent, t.MediumThreshold, t.HighThreshold)
}

func severityColor(severity string) string {
	d := style.DefaultBarOptions()
	switch severity {
	case style.SeverityHigh:
		return d.HighColor
	case style.SeverityMedium:
		return d.MediumColor
	default:
		return d.LowColor
	}
}

// barOptions builds style bar options whose per-severity colors follow the
// shared precedence.
func barOptions(cfg *config.WidgetConfig, showBar, showPercent bool, t ThresholdOptions) style.BarOptions {
	d := style.DefaultBarOptions()
	return style.BarOptions{
		ShowBar:         showBar,
		ShowPercent:     showPercent,
		MediumThreshold: t.MediumThreshold,
		HighThreshold:   t.HighThreshold,
		LowColor:        stateColor(cfg, style.SeverityLow, d.LowColor),
		MediumColor:     stateColor(cfg, style.SeverityMedium, d.MediumColor),
		HighColor:       stateColor(cfg, style.SeverityHigh, d.HighColor),
	}
}

var severityStates = []string{style.SeverityLow, style.SeverityMedium, style.SeverityHigh}
