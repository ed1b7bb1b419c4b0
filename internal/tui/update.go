package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/statusline/internal/style"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextScenario):
			m.step(1)
		case key.Matches(msg, m.keys.PrevScenario):
			m.step(-1)
		case key.Matches(msg, m.keys.NextPalette):
			m.palette = (m.palette + 1) % len(m.palettes)
			m.refresh()
		case key.Matches(msg, m.keys.CycleColors):
			m.level = nextLevel(m.level)
			m.refresh()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

func nextLevel(l style.Level) style.Level {
	if l >= style.LevelTrueColor {
		return style.LevelNone
	}
	return l + 1
}
