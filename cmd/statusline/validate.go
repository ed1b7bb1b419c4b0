package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/widget"
	slerrors "github.com/alexisbeaulieu97/statusline/pkg/errors"
)

func newValidateCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [settings-file]",
		Short: "Check a settings file and report every problem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootFlags.settingsPath
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(cmd, path)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, path string) error {
	resolved, err := resolvePath(path, defaultSettingsPath)
	if err != nil {
		return newCommandError("validate", "determining settings path", err, "Pass the settings file explicitly.")
	}

	_, warnings, err := config.Load(resolved, widget.DefaultRegistry())
	if err != nil {
		return newCommandError("validate", resolved, err, validationSuggestion(err))
	}

	out := cmd.OutOrStdout()
	if len(warnings) == 0 {
		fmt.Fprintf(out, "✓ %s is valid\n", resolved)
		return nil
	}

	for _, w := range warnings {
		fmt.Fprintf(out, "✗ %v\n", w)
	}
	return newCommandError("validate", resolved, fmt.Errorf("%d problem(s) found", len(warnings)),
		"Fix the reported widgets; unknown options and names are ignored at render time.")
}

func validationSuggestion(err error) string {
	var parseErr *slerrors.ParseError
	if errors.As(err, &parseErr) {
		return "Check the YAML syntax near the reported line."
	}
	var validationErr *slerrors.ValidationError
	if errors.As(err, &validationErr) {
		return "Correct the reported field and run validate again."
	}
	return "Check the settings file permissions and try again."
}
