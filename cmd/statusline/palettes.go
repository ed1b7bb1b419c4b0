package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/statusline/internal/ansihtml"
)

type palettesOptions struct {
	jsonOutput bool
}

func newPalettesCmd() *cobra.Command {
	opts := &palettesOptions{}

	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List the terminal palettes available for HTML previews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalettes(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runPalettes(cmd *cobra.Command, opts *palettesOptions) error {
	infos := ansihtml.Palettes()

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tFOREGROUND\tBACKGROUND")
	for _, info := range infos {
		p := ansihtml.PaletteByID(info.ID)
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", info.ID, info.Name, p.Foreground, p.Background)
	}
	return writer.Flush()
}
