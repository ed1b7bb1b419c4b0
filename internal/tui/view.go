package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/statusline/internal/preview"
	"github.com/alexisbeaulieu97/statusline/internal/style"
)

var levelNames = map[style.Level]string{
	style.LevelNone:      "no color",
	style.LevelBasic:     "16 colors",
	style.Level256:       "256 colors",
	style.LevelTrueColor: "truecolor",
}

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	scenario := m.Scenario()
	sections := []string{
		titleStyle.Render(fmt.Sprintf("statusline • %s", scenario.Name)),
		subtitleStyle.Render(fmt.Sprintf("%s · %s · %s", scenario.Description, m.Palette(), levelNames[m.level])),
	}

	for _, row := range m.rows {
		sections = append(sections, sectionStyle.Render(fmt.Sprintf("Row %d", row.Index+1))+" "+m.widthBadge(row))
		sections = append(sections, renderRow(row))
	}
	if len(m.rows) == 0 {
		sections = append(sections, emptyStyle.Render("no rows configured"))
	}

	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderRow(row preview.Row) string {
	if strings.TrimSpace(row.Text) == "" {
		return rowStyle.Render(emptyStyle.Render("(empty)"))
	}
	return rowStyle.Render(row.ANSI)
}

// widthBadge reports the row's display width against the terminal width.
func (m Model) widthBadge(row preview.Row) string {
	if m.width <= 0 {
		return subtitleStyle.Render(fmt.Sprintf("%d cols", row.Width))
	}
	label := fmt.Sprintf("%d/%d cols", row.Width, m.width)
	if row.Width > m.width {
		return overflowStyle.Render(label + " overflow")
	}
	return fitStyle.Render(label)
}
