// Package tui is an interactive terminal preview of a status line
// configuration across the built-in scenarios.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/statusline/internal/ansihtml"
	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/preview"
	"github.com/alexisbeaulieu97/statusline/internal/style"
)

// Options configure a preview Model.
type Options struct {
	Scenario string
	HomeDir  string
	Width    int
	Now      func() time.Time
}

// Model contains the Bubbletea state for the status line preview.
type Model struct {
	settings  *config.Settings
	scenarios []preview.Scenario
	current   int
	palettes  []ansihtml.PaletteInfo
	palette   int
	level     style.Level
	homeDir   string
	now       func() time.Time

	rows []preview.Row

	width    int
	height   int
	keys     KeyMap
	help     help.Model
	quitting bool
}

// NewModel constructs a preview model for the given settings.
func NewModel(settings *config.Settings, opts Options) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		settings:  settings,
		scenarios: preview.Scenarios(now()),
		palettes:  ansihtml.Palettes(),
		level:     style.Level(settings.ColorLevel),
		homeDir:   opts.HomeDir,
		now:       now,
		width:     opts.Width,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	if m.level == style.LevelNone {
		m.level = style.DefaultLevel
	}
	for i, s := range m.scenarios {
		if s.Name == opts.Scenario {
			m.current = i
		}
	}
	for i, p := range m.palettes {
		if p.ID == settings.Palette() {
			m.palette = i
		}
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Scenario returns the scenario being previewed.
func (m Model) Scenario() preview.Scenario {
	return m.scenarios[m.current]
}

// Palette returns the id of the active palette.
func (m Model) Palette() string {
	return m.palettes[m.palette].ID
}

// Rows returns the rendered rows of the current scenario.
func (m Model) Rows() []preview.Row {
	return m.rows
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m *Model) refresh() {
	level := m.level
	m.rows = preview.Render(m.settings, m.Scenario(), m.Palette(), preview.Options{
		TerminalWidth: m.width,
		Now:           m.now(),
		HomeDir:       m.homeDir,
		ColorLevel:    &level,
	})
}

func (m *Model) step(delta int) {
	n := len(m.scenarios)
	m.current = ((m.current+delta)%n + n) % n
	m.refresh()
}
