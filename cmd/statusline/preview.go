package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/statusline/internal/ansihtml"
	"github.com/alexisbeaulieu97/statusline/internal/preview"
	"github.com/alexisbeaulieu97/statusline/internal/style"
)

var previewFormats = []string{"ansi", "text", "html", "document", "json"}

type previewOptions struct {
	scenario   string
	palette    string
	format     string
	width      int
	colorLevel int
}

func newPreviewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the configured rows against a canned scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.OutOrStdout(), rootFlags, opts, cmd.Flags().Changed("color-level"))
		},
	}

	cmd.Flags().StringVar(&opts.scenario, "scenario", preview.DefaultScenario, "Scenario: "+strings.Join(preview.ScenarioNames(), ", "))
	cmd.Flags().StringVar(&opts.palette, "palette", "", "Terminal palette used for HTML output (default from settings)")
	cmd.Flags().StringVar(&opts.format, "format", "ansi", "Output format: "+strings.Join(previewFormats, ", "))
	cmd.Flags().IntVar(&opts.width, "width", 0, "Terminal width passed to widgets")
	cmd.Flags().IntVar(&opts.colorLevel, "color-level", int(style.DefaultLevel), "Color level override (0-3)")

	return cmd
}

func runPreview(out io.Writer, rootFlags *rootFlags, opts *previewOptions, levelChanged bool) error {
	scenario, ok := preview.LookupScenario(opts.scenario, time.Now())
	if !ok {
		return newCommandError("preview", fmt.Sprintf("unknown scenario %q", opts.scenario), nil,
			"Choose one of: "+strings.Join(preview.ScenarioNames(), ", "))
	}
	if opts.palette != "" {
		if _, ok := ansihtml.LookupPalette(opts.palette); !ok {
			return newCommandError("preview", fmt.Sprintf("unknown palette %q", opts.palette), nil,
				"Run 'statusline palettes' to list the available palettes.")
		}
	}

	settings, warnings, err := loadSettings(rootFlags.settingsPath)
	if err != nil {
		return newCommandError("preview", "loading settings", err, "Run 'statusline validate' for details.")
	}
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %v\n", w)
	}

	renderOpts := preview.Options{TerminalWidth: opts.width}
	if levelChanged {
		if opts.colorLevel < int(style.LevelNone) || opts.colorLevel > int(style.LevelTrueColor) {
			return newCommandError("preview", fmt.Sprintf("color level %d out of range", opts.colorLevel), nil,
				"Use 0 (none), 1 (16 colors), 2 (256 colors) or 3 (truecolor).")
		}
		level := style.Level(opts.colorLevel)
		renderOpts.ColorLevel = &level
	}

	paletteID := opts.palette
	if paletteID == "" {
		paletteID = settings.Palette()
	}
	rows := preview.Render(settings, scenario, paletteID, renderOpts)

	switch opts.format {
	case "ansi":
		for _, row := range rows {
			fmt.Fprintln(out, row.ANSI)
		}
	case "text":
		for _, row := range rows {
			fmt.Fprintln(out, row.Text)
		}
	case "html":
		for _, row := range rows {
			fmt.Fprintln(out, row.HTML)
		}
	case "document":
		doc, err := preview.Document(rows, paletteID)
		if err != nil {
			return err
		}
		fmt.Fprint(out, doc)
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(struct {
			Scenario string        `json:"scenario"`
			Palette  string        `json:"palette"`
			Rows     []preview.Row `json:"rows"`
		}{Scenario: scenario.Name, Palette: paletteID, Rows: rows})
	default:
		return newCommandError("preview", fmt.Sprintf("unknown format %q", opts.format), nil,
			"Use one of: "+strings.Join(previewFormats, ", "))
	}
	return nil
}
