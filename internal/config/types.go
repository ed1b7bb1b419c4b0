package config

// Settings is the declarative status line configuration.
type Settings struct {
	Version         int              `yaml:"version,omitempty" json:"version,omitempty"`
	Rows            [][]WidgetConfig `yaml:"rows" json:"rows" validate:"dive,dive"`
	ColorLevel      int              `yaml:"colorLevel" json:"colorLevel" validate:"min=0,max=3"`
	TerminalPalette string           `yaml:"terminalPalette,omitempty" json:"terminalPalette,omitempty" validate:"omitempty,palette_id"`
	Log             LogSettings      `yaml:"log,omitempty" json:"log,omitempty"`
}

// LogSettings configures diagnostics. The status line itself never logs to stdout.
type LogSettings struct {
	Level string `yaml:"level,omitempty" json:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error disabled"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// WidgetConfig is one slot of a row.
type WidgetConfig struct {
	Widget  string            `yaml:"widget" json:"widget" validate:"required"`
	Color   string            `yaml:"color,omitempty" json:"color,omitempty"`
	Colors  map[string]string `yaml:"colors,omitempty" json:"colors,omitempty"`
	Options map[string]any    `yaml:"options,omitempty" json:"options,omitempty"`

	// Typed holds the widget's decoded option table once the settings boundary
	// has prepared it. Widgets decode lazily when it is nil.
	Typed any `yaml:"-" json:"-"`
}

// CurrentVersion is the settings schema version written by DefaultSettings.
const CurrentVersion = 1

// DefaultPalette is the preview palette used when settings do not name one.
const DefaultPalette = "xterm"

// DefaultSettings returns the configuration used when no settings file exists.
func DefaultSettings() *Settings {
	sep := WidgetConfig{Widget: "separator"}
	return &Settings{
		Version: CurrentVersion,
		Rows: [][]WidgetConfig{
			{
				{Widget: "model"},
				sep,
				{Widget: "directory"},
				sep,
				{Widget: "gitBranch"},
				sep,
				{Widget: "gitStatus", Options: map[string]any{"showClean": false}},
				sep,
				{Widget: "contextBar"},
			},
			{
				{Widget: "sessionUsage"},
				sep,
				{Widget: "sessionReset"},
				sep,
				{Widget: "weeklyUsage"},
				sep,
				{Widget: "cost"},
			},
		},
		ColorLevel:      2,
		TerminalPalette: DefaultPalette,
		Log:             LogSettings{Level: "warn"},
	}
}

// WidgetNames lists the widget keys referenced by the settings, in row order.
func (s *Settings) WidgetNames() []string {
	if s == nil {
		return nil
	}
	var names []string
	for _, row := range s.Rows {
		for _, item := range row {
			names = append(names, item.Widget)
		}
	}
	return names
}

// Palette returns the configured preview palette id, defaulting to xterm.
func (s *Settings) Palette() string {
	if s == nil || s.TerminalPalette == "" {
		return DefaultPalette
	}
	return s.TerminalPalette
}
