package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/statusline/internal/preview"
	"github.com/alexisbeaulieu97/statusline/internal/tui"
)

func newTUICmd(rootFlags *rootFlags) *cobra.Command {
	var scenario string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Preview the configured status line interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, warnings, err := loadSettings(rootFlags.settingsPath)
			if err != nil {
				return newCommandError("start preview", "loading settings", err, "Run 'statusline validate' for details.")
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", w)
			}

			home, _ := os.UserHomeDir()
			m := tui.NewModel(settings, tui.Options{Scenario: scenario, HomeDir: home})
			program := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return newCommandError("start preview", "running interactive preview", err, "Ensure the terminal supports full-screen programs.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", preview.DefaultScenario, "Scenario shown first")

	return cmd
}
