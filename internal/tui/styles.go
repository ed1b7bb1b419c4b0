package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	fitStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	overflowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	rowStyle      = lipgloss.NewStyle().PaddingLeft(2)
	helpStyle     = lipgloss.NewStyle().MarginTop(1)
)
