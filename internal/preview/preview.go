// Package preview renders a configuration against canned scenarios and
// converts the result to HTML for display outside a terminal.
package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/alexisbeaulieu97/statusline/internal/ansihtml"
	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/statusline"
	"github.com/alexisbeaulieu97/statusline/internal/style"
	"github.com/alexisbeaulieu97/statusline/internal/widget"
)

// Row is one rendered status line row in every output form.
type Row struct {
	Index int    `json:"index"`
	ANSI  string `json:"ansi"`
	HTML  string `json:"html"`
	Text  string `json:"text"`
	Width int    `json:"width"`
}

// Options tune a preview render. Zero values use defaults.
type Options struct {
	TerminalWidth int
	Now           time.Time
	HomeDir       string
	// ColorLevel overrides the settings' color level when set.
	ColorLevel *style.Level
}

// Render renders every configured row for the scenario and converts each to
// HTML under the given palette.
func Render(settings *config.Settings, scenario Scenario, paletteID string, opts Options) []Row {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if paletteID == "" {
		paletteID = settings.Palette()
	}
	level := style.Level(settings.ColorLevel)
	if opts.ColorLevel != nil {
		level = *opts.ColorLevel
	}

	ctx := widget.NewRenderContext(widget.ContextOptions{
		Status:        scenario.Status,
		Usage:         scenario.Usage,
		TerminalWidth: opts.TerminalWidth,
		Settings:      settings,
		MockGitInfo:   &widget.GitOverride{Info: scenario.Git},
		HomeDir:       opts.HomeDir,
		Now:           opts.Now,
		Style:         style.New(level),
	})

	lines := statusline.RenderStatusLineRows(ctx)
	rows := make([]Row, len(lines))
	for i, line := range lines {
		text := ansihtml.StripANSI(line)
		rows[i] = Row{
			Index: i,
			ANSI:  line,
			HTML:  ansihtml.ToHTML(line, paletteID),
			Text:  text,
			Width: runewidth.StringWidth(text),
		}
	}
	return rows
}

var documentTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>statusline preview ({{.Palette.Name}})</title>
<style>
body { margin: 0; padding: 1em; background: {{.Background}}; color: {{.Foreground}}; }
pre { margin: 0; font-family: ui-monospace, Menlo, Consolas, monospace; }
</style>
</head>
<body>
{{range .Rows}}<pre data-row="{{.Index}}">{{.HTML}}</pre>
{{end}}</body>
</html>
`))

type documentRow struct {
	Index int
	HTML  template.HTML
}

// Document wraps rendered rows in a standalone HTML page colored like the palette.
func Document(rows []Row, paletteID string) (string, error) {
	palette := ansihtml.PaletteByID(paletteID)
	data := struct {
		Palette    ansihtml.Palette
		Background template.CSS
		Foreground template.CSS
		Rows       []documentRow
	}{
		Palette:    palette,
		Background: template.CSS(palette.Background),
		Foreground: template.CSS(palette.Foreground),
	}
	for _, row := range rows {
		// Row HTML is produced by ansihtml, which escapes all literal text.
		data.Rows = append(data.Rows, documentRow{Index: row.Index, HTML: template.HTML(row.HTML)})
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render preview document: %w", err)
	}
	return buf.String(), nil
}
