package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the preview's keyboard shortcuts.
type KeyMap struct {
	NextScenario key.Binding
	PrevScenario key.Binding
	NextPalette  key.Binding
	CycleColors  key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextScenario: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next scenario"),
		),
		PrevScenario: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "previous scenario"),
		),
		NextPalette: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next palette"),
		),
		CycleColors: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle color level"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScenario, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextScenario, k.PrevScenario},
		{k.NextPalette, k.CycleColors},
		{k.Help, k.Quit},
	}
}
