package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/statusline/internal/widget"
)

const catalogWrapWidth = 100

type widgetsOptions struct {
	raw      bool
	category string
}

func newWidgetsCmd() *cobra.Command {
	opts := &widgetsOptions{}

	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Describe the built-in widgets and their options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidgets(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the catalog as markdown without styling")
	cmd.Flags().StringVar(&opts.category, "category", "", "Only list widgets in this category (git, session, usage, layout)")

	return cmd
}

func runWidgets(out io.Writer, opts *widgetsOptions) error {
	md := widgetCatalog(widget.DefaultRegistry(), widget.Category(opts.category))
	if opts.raw || !isTerminal(out) {
		_, err := io.WriteString(out, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(catalogWrapWidth),
	)
	if err != nil {
		_, err = io.WriteString(out, md)
		return err
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		rendered = md
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// widgetCatalog renders the registry as markdown, grouped by category.
func widgetCatalog(reg *widget.Registry, only widget.Category) string {
	var b strings.Builder
	b.WriteString("# Widgets\n")

	metas := reg.Metadata()
	order := map[widget.Category]int{}
	for _, meta := range metas {
		if _, seen := order[meta.Category]; !seen {
			order[meta.Category] = len(order)
		}
	}
	sort.SliceStable(metas, func(i, j int) bool {
		return order[metas[i].Category] < order[metas[j].Category]
	})

	var current widget.Category
	for _, meta := range metas {
		if only != "" && meta.Category != only {
			continue
		}
		if meta.Category != current {
			current = meta.Category
			fmt.Fprintf(&b, "\n## %s\n", current)
		}

		fmt.Fprintf(&b, "\n### `%s`\n\n%s\n", meta.Name, meta.Description)
		if meta.DefaultColor != "" {
			fmt.Fprintf(&b, "\n- default color: `%s`\n", meta.DefaultColor)
		}
		if len(meta.StateKeys) > 0 {
			fmt.Fprintf(&b, "- color states: `%s`\n", strings.Join(meta.StateKeys, "`, `"))
		}

		w, ok := reg.Lookup(meta.Name)
		if !ok {
			continue
		}
		if defaults, err := yaml.Marshal(w.DefaultOptions()); err == nil && strings.TrimSpace(string(defaults)) != "{}" {
			fmt.Fprintf(&b, "\n```yaml\n%s```\n", defaults)
		}
	}
	return b.String()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
