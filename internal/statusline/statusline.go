// Package statusline composes configured widget rows into status line text.
package statusline

import (
	"strings"

	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/widget"
)

// Renderer renders single widget slots. *widget.Registry satisfies it.
type Renderer interface {
	Render(ctx *widget.RenderContext, cfg *config.WidgetConfig) (string, bool)
}

type renderedItem struct {
	isSeparator bool
	output      string
}

// ComposeRow renders one row. Absent widgets are dropped, separators at
// either end are removed, and runs of separators collapse to the first one.
func ComposeRow(ctx *widget.RenderContext, row []config.WidgetConfig, r Renderer) string {
	if r == nil {
		r = widget.DefaultRegistry()
	}

	items := make([]renderedItem, 0, len(row))
	for i := range row {
		out, ok := r.Render(ctx, &row[i])
		if !ok {
			continue
		}
		items = append(items, renderedItem{
			isSeparator: row[i].Widget == widget.SeparatorName,
			output:      out,
		})
	}

	for len(items) > 0 && items[0].isSeparator {
		items = items[1:]
	}
	for len(items) > 0 && items[len(items)-1].isSeparator {
		items = items[:len(items)-1]
	}

	var b strings.Builder
	prevSeparator := false
	for _, item := range items {
		if item.isSeparator && prevSeparator {
			continue
		}
		prevSeparator = item.isSeparator
		b.WriteString(item.output)
	}
	return b.String()
}

// RenderStatusLineRows renders every configured row, keeping empty rows so
// indexes line up with the settings.
func RenderStatusLineRows(ctx *widget.RenderContext) []string {
	return renderRows(ctx, widget.DefaultRegistry())
}

// RenderStatusLine renders all rows and joins the non-empty ones with newlines.
func RenderStatusLine(ctx *widget.RenderContext) string {
	return joinRows(RenderStatusLineRows(ctx))
}

func renderRows(ctx *widget.RenderContext, r Renderer) []string {
	if ctx == nil || ctx.Settings == nil {
		return nil
	}
	rows := make([]string, len(ctx.Settings.Rows))
	for i, row := range ctx.Settings.Rows {
		rows[i] = ComposeRow(ctx, row, r)
	}
	return rows
}

func joinRows(rows []string) string {
	kept := make([]string, 0, len(rows))
	for _, row := range rows {
		if row != "" {
			kept = append(kept, row)
		}
	}
	return strings.Join(kept, "\n")
}
