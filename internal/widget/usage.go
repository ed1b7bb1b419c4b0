package widget

import (
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/status"
	"github.com/alexisbeaulieu97/statusline/internal/style"
)

type windowSelector func(*status.Usage) *status.UsageWindow

type usageOptions struct {
	CommonOptions    `yaml:",inline"`
	ThresholdOptions `yaml:",inline"`
	Bar              bool `yaml:"bar"`
	ShowBar          bool `yaml:"showBar"`
	ShowPercent      bool `yaml:"showPercent"`
	HidePrefix       bool `yaml:"hidePrefix"`
}

// usageWidget shows how much of one rate-limit window has been consumed.
type usageWidget struct {
	name        string
	description string
	prefix      string
	window      windowSelector
	barOnly     bool
}

func (w usageWidget) Metadata() Metadata {
	return Metadata{
		Name:        w.name,
		Description: w.description,
		Category:    CategoryUsage,
		StateKeys:   severityStates,
	}
}

func (w usageWidget) DefaultOptions() any {
	opts := &usageOptions{
		ThresholdOptions: defaultThresholds(),
		ShowBar:          true,
		ShowPercent:      true,
	}
	if w.barOnly {
		opts.Bar = true
		opts.ShowPercent = false
		opts.HidePrefix = true
	}
	return opts
}

func (w usageWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	if ctx.Usage == nil {
		return "", false
	}
	win := w.window(ctx.Usage)
	if win == nil {
		return "", false
	}
	opts, _ := options[*usageOptions](w, cfg)
	if opts == nil {
		opts = w.DefaultOptions().(*usageOptions)
	}

	var value string
	if opts.Bar {
		value = ctx.Style.UsageBar(win.PercentUsed, barOptions(cfg, opts.ShowBar, opts.ShowPercent, opts.ThresholdOptions))
		if value == "" {
			// Both halves hidden: the data exists, there is just nothing to draw.
			return "", true
		}
	} else {
		severity := opts.severity(win.PercentUsed)
		value = paint(ctx, cfg, fmt.Sprintf("%d%%", style.ClampPercent(win.PercentUsed)), severity, severityColor(severity))
	}
	if opts.HidePrefix {
		return value, true
	}
	return ctx.Style.Dim(w.prefix+":") + " " + value, true
}

type resetOptions struct {
	CommonOptions `yaml:",inline"`
	HidePrefix    bool `yaml:"hidePrefix"`
}

// resetWidget counts down to the end of a usage window.
type resetWidget struct {
	name        string
	description string
	window      windowSelector
}

func (w resetWidget) Metadata() Metadata {
	return Metadata{Name: w.name, Description: w.description, Category: CategoryUsage}
}

func (w resetWidget) DefaultOptions() any { return &resetOptions{} }

func (w resetWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	if ctx.Usage == nil {
		return "", false
	}
	at, ok := w.window(ctx.Usage).ResetAt()
	if !ok {
		return "", false
	}
	text := formatCountdown(at.Sub(ctx.Now))
	if opts, _ := options[*resetOptions](w, cfg); opts == nil || !opts.HidePrefix {
		text = "resets " + text
	}
	return paintDim(ctx, cfg, text, ""), true
}

// formatCountdown renders a duration with its two most significant units.
func formatCountdown(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	if d < time.Minute {
		return "in <1m"
	}
	d = d.Truncate(time.Minute)
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("in %dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("in %dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("in %dm", minutes)
	}
}

type extraUsageOptions struct {
	CommonOptions    `yaml:",inline"`
	ThresholdOptions `yaml:",inline"`
	ShowLimit        bool `yaml:"showLimit"`
	HidePrefix       bool `yaml:"hidePrefix"`
}

type extraUsageWidget struct{}

func (extraUsageWidget) Metadata() Metadata {
	return Metadata{
		Name:        "extraUsage",
		Description: "Credits spent beyond the plan allowance",
		Category:    CategoryUsage,
		StateKeys:   severityStates,
	}
}

func (extraUsageWidget) DefaultOptions() any {
	return &extraUsageOptions{ThresholdOptions: defaultThresholds(), ShowLimit: true}
}

func (w extraUsageWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	if ctx.Usage == nil {
		return "", false
	}
	extra := ctx.Usage.ExtraUsage
	if extra == nil || !extra.IsEnabled || extra.UsedCredits == nil {
		return "", false
	}
	opts, _ := options[*extraUsageOptions](w, cfg)
	if opts == nil {
		opts = w.DefaultOptions().(*extraUsageOptions)
	}

	text := fmt.Sprintf("$%.2f", *extra.UsedCredits)
	if opts.ShowLimit && extra.MonthlyLimit != nil {
		text += fmt.Sprintf("/$%.2f", *extra.MonthlyLimit)
	}

	var utilization float64
	switch {
	case extra.Utilization != nil:
		utilization = *extra.Utilization
	case extra.MonthlyLimit != nil && *extra.MonthlyLimit > 0:
		utilization = *extra.UsedCredits / *extra.MonthlyLimit * 100
	}
	severity := opts.severity(utilization)
	text = paint(ctx, cfg, text, severity, severityColor(severity))
	if opts.HidePrefix {
		return text, true
	}
	return ctx.Style.Dim("Extra:") + " " + text, true
}

func usageWidgets() []Widget {
	session := func(u *status.Usage) *status.UsageWindow { return u.CurrentSession }
	weekly := func(u *status.Usage) *status.UsageWindow { return u.WeeklyAll }
	return []Widget{
		usageWidget{name: "sessionUsage", description: "Current session window usage", prefix: "Session", window: session},
		usageWidget{name: "weeklyUsage", description: "Weekly usage across all models", prefix: "Weekly", window: weekly},
		usageWidget{name: "weeklySonnet", description: "Weekly Sonnet usage", prefix: "Sonnet", window: func(u *status.Usage) *status.UsageWindow { return u.WeeklySonnet }},
		usageWidget{name: "weeklyOpus", description: "Weekly Opus usage", prefix: "Opus", window: func(u *status.Usage) *status.UsageWindow { return u.WeeklyOpus }},
		usageWidget{name: "weeklyOAuthApps", description: "Weekly usage by OAuth apps", prefix: "OAuth apps", window: func(u *status.Usage) *status.UsageWindow { return u.WeeklyOAuthApps }},
		usageWidget{name: "weeklyCowork", description: "Weekly Cowork usage", prefix: "Cowork", window: func(u *status.Usage) *status.UsageWindow { return u.WeeklyCowork }},
		usageWidget{name: "sessionUsageBar", description: "Current session window usage bar", prefix: "Session", window: session, barOnly: true},
		usageWidget{name: "weeklyUsageBar", description: "Weekly usage bar", prefix: "Weekly", window: weekly, barOnly: true},
		resetWidget{name: "sessionReset", description: "Time until the session window resets", window: session},
		resetWidget{name: "weeklyReset", description: "Time until the weekly window resets", window: weekly},
		extraUsageWidget{},
	}
}
