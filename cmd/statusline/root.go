package main

import (
	"time"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	settingsPath string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "statusline",
		Short: "Render a configurable status line from session JSON on stdin",
		Long: `statusline reads the session JSON document on stdin and prints one or more
rows of widgets configured in the settings file. Rendering never fails the
caller: problems are logged and whatever could be rendered is printed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.settingsPath = flags.settingsPath
			opts.verbose = flags.verbose
			return renderCmdRunner(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.settingsPath, "settings", "", "Settings file (default ~/.config/statusline/settings.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	cmd.Flags().StringVar(&opts.usagePath, "usage-file", "", "Usage snapshot JSON (default ~/.cache/statusline/usage.json)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Terminal width override")
	cmd.Flags().DurationVar(&opts.gitTimeout, "git-timeout", 300*time.Millisecond, "Maximum time spent reading git state")

	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newPalettesCmd())
	cmd.AddCommand(newWidgetsCmd())
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newTUICmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
