package widget

import (
	"github.com/alexisbeaulieu97/statusline/internal/config"
)

// SeparatorName is the registry key the row composer treats as a separator.
const SeparatorName = "separator"

type textOptions struct {
	CommonOptions `yaml:",inline"`
	Text          string `yaml:"text"`
}

type textWidget struct{}

func (textWidget) Metadata() Metadata {
	return Metadata{Name: "text", Description: "Fixed text", Category: CategoryLayout}
}

func (textWidget) DefaultOptions() any { return &textOptions{} }

func (w textWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	opts, _ := options[*textOptions](w, cfg)
	if opts == nil || opts.Text == "" {
		return "", false
	}
	return paint(ctx, cfg, opts.Text, "", ""), true
}

type clockOptions struct {
	CommonOptions `yaml:",inline"`
	Format        string `yaml:"format" validate:"required"`
}

type clockWidget struct{}

func (clockWidget) Metadata() Metadata {
	return Metadata{Name: "clock", Description: "Current time", Category: CategoryLayout}
}

func (clockWidget) DefaultOptions() any { return &clockOptions{Format: "15:04"} }

func (w clockWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	format := "15:04"
	if opts, _ := options[*clockOptions](w, cfg); opts != nil && opts.Format != "" {
		format = opts.Format
	}
	return paintDim(ctx, cfg, ctx.Now.Format(format), ""), true
}

type separatorOptions struct {
	CommonOptions `yaml:",inline"`
	Char          string `yaml:"char"`
	Padding       bool   `yaml:"padding"`
}

type separatorWidget struct{}

func (separatorWidget) Metadata() Metadata {
	return Metadata{Name: SeparatorName, Description: "Visual divider between widgets", Category: CategoryLayout}
}

func (separatorWidget) DefaultOptions() any { return &separatorOptions{Char: "|", Padding: true} }

// Render always succeeds; the row composer removes separators that end up
// at a row boundary or next to another separator.
func (w separatorWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	opts, _ := options[*separatorOptions](w, cfg)
	if opts == nil {
		opts = w.DefaultOptions().(*separatorOptions)
	}
	text := opts.Char
	if opts.Padding {
		text = " " + text + " "
	}
	if text == "" {
		return "", true
	}
	return paintDim(ctx, cfg, text, ""), true
}

func builtins() []Widget {
	widgets := []Widget{
		directoryWidget{},
		gitBranchWidget{},
		gitStatusWidget{},
		gitAheadBehindWidget{},
		gitRootWidget{},
		modelWidget{},
		contextRemainingWidget{},
		contextBarWidget{},
		vimModeWidget{},
		outputStyleWidget{},
		costWidget{},
		linesChangedWidget{},
		turnCountWidget{},
		sessionIDWidget{},
	}
	widgets = append(widgets, usageWidgets()...)
	return append(widgets,
		textWidget{},
		clockWidget{},
		separatorWidget{},
	)
}
