package widget

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/style"
)

var numbers = message.NewPrinter(language.English)

// Directory formats.
const (
	DirFull     = "full"
	DirHome     = "home"
	DirBasename = "basename"
	DirSegments = "segments"
)

type directoryOptions struct {
	CommonOptions `yaml:",inline"`
	Format        string `yaml:"format" validate:"oneof=full home basename segments"`
	Segments      int    `yaml:"segments" validate:"min=1"`
}

type directoryWidget struct{}

func (directoryWidget) Metadata() Metadata {
	return Metadata{
		Name:         "directory",
		Description:  "Current working directory",
		Category:     CategorySession,
		DefaultColor: "blue",
	}
}

func (directoryWidget) DefaultOptions() any {
	return &directoryOptions{Format: DirHome, Segments: 2}
}

func (w directoryWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	dir := ctx.Status.Directory()
	if dir == "" {
		return "", false
	}
	opts, _ := options[*directoryOptions](w, cfg)
	if opts == nil {
		opts = w.DefaultOptions().(*directoryOptions)
	}
	return paint(ctx, cfg, formatDirectory(dir, ctx.HomeDir, opts.Format, opts.Segments), "", w.Metadata().DefaultColor), true
}

func formatDirectory(dir, home, format string, segments int) string {
	dir = filepath.Clean(dir)
	switch format {
	case DirFull:
		return dir
	case DirBasename:
		return filepath.Base(dir)
	}

	short := abbreviateHome(dir, home)
	if format != DirSegments {
		return short
	}
	if segments < 1 {
		segments = 1
	}
	sep := string(filepath.Separator)
	parts := strings.Split(strings.TrimPrefix(short, sep), sep)
	if len(parts) <= segments {
		return short
	}
	return "…" + sep + strings.Join(parts[len(parts)-segments:], sep)
}

func abbreviateHome(dir, home string) string {
	if home == "" {
		return dir
	}
	home = filepath.Clean(home)
	if dir == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(dir, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return dir
}

type modelOptions struct {
	CommonOptions `yaml:",inline"`
	UseID         bool `yaml:"useId"`
}

type modelWidget struct{}

func (modelWidget) Metadata() Metadata {
	return Metadata{
		Name:         "model",
		Description:  "Active model display name",
		Category:     CategorySession,
		DefaultColor: "cyan",
		StateKeys:    []string{"opus", "sonnet", "haiku"},
	}
}

func (modelWidget) DefaultOptions() any { return &modelOptions{} }

func (w modelWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	m := ctx.Status.Model
	if m == nil {
		return "", false
	}
	opts, _ := options[*modelOptions](w, cfg)
	name := m.DisplayName
	if name == "" || (opts != nil && opts.UseID) {
		name = m.ID
	}
	if name == "" {
		name = m.DisplayName
	}
	if name == "" {
		return "", false
	}
	return paint(ctx, cfg, name, modelFamily(m.ID+" "+m.DisplayName), w.Metadata().DefaultColor), true
}

func modelFamily(s string) string {
	s = strings.ToLower(s)
	for _, family := range []string{"opus", "sonnet", "haiku"} {
		if strings.Contains(s, family) {
			return family
		}
	}
	return ""
}

type contextOptions struct {
	CommonOptions    `yaml:",inline"`
	ThresholdOptions `yaml:",inline"`
	ShowUsed         bool `yaml:"showUsed"`
}

type contextRemainingWidget struct{}

func (contextRemainingWidget) Metadata() Metadata {
	return Metadata{
		Name:        "contextRemaining",
		Description: "Context window left (or used) as a percentage",
		Category:    CategorySession,
		StateKeys:   severityStates,
	}
}

func (contextRemainingWidget) DefaultOptions() any {
	return &contextOptions{ThresholdOptions: defaultThresholds()}
}

func (w contextRemainingWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	used, ok := contextUsed(ctx)
	if !ok {
		return "", false
	}
	opts, _ := options[*contextOptions](w, cfg)
	if opts == nil {
		opts = w.DefaultOptions().(*contextOptions)
	}
	severity := opts.severity(float64(used))
	text := fmt.Sprintf("%d%% left", 100-used)
	if opts.ShowUsed {
		text = fmt.Sprintf("%d%% used", used)
	}
	return paint(ctx, cfg, text, severity, severityColor(severity)), true
}

// contextUsed converts the remaining percentage into a clamped used percentage.
func contextUsed(ctx *RenderContext) (int, bool) {
	cw := ctx.Status.ContextWindow
	if cw == nil || cw.RemainingPercentage == nil {
		return 0, false
	}
	return 100 - style.ClampPercent(*cw.RemainingPercentage), true
}

type contextBarOptions struct {
	CommonOptions    `yaml:",inline"`
	ThresholdOptions `yaml:",inline"`
	ShowBar          bool `yaml:"showBar"`
	ShowPercent      bool `yaml:"showPercent"`
}

type contextBarWidget struct{}

func (contextBarWidget) Metadata() Metadata {
	return Metadata{
		Name:        "contextBar",
		Description: "Context window usage bar",
		Category:    CategorySession,
		StateKeys:   severityStates,
	}
}

func (contextBarWidget) DefaultOptions() any {
	return &contextBarOptions{ThresholdOptions: defaultThresholds(), ShowBar: true, ShowPercent: true}
}

func (w contextBarWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	used, ok := contextUsed(ctx)
	if !ok {
		return "", false
	}
	opts, _ := options[*contextBarOptions](w, cfg)
	if opts == nil {
		opts = w.DefaultOptions().(*contextBarOptions)
	}
	return ctx.Style.UsageBar(float64(used), barOptions(cfg, opts.ShowBar, opts.ShowPercent, opts.ThresholdOptions)), true
}

type vimModeOptions struct {
	CommonOptions `yaml:",inline"`
	Format        string `yaml:"format" validate:"oneof=full short"`
}

type vimModeWidget struct{}

var vimModeColors = map[string]string{
	"normal":  "blue",
	"insert":  "green",
	"visual":  "magenta",
	"replace": "red",
}

func (vimModeWidget) Metadata() Metadata {
	return Metadata{
		Name:         "vimMode",
		Description:  "Editor vim mode",
		Category:     CategorySession,
		DefaultColor: "yellow",
		StateKeys:    []string{"normal", "insert", "visual", "replace"},
	}
}

func (vimModeWidget) DefaultOptions() any { return &vimModeOptions{Format: "full"} }

func (w vimModeWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	vm := ctx.Status.VimMode
	if vm == nil || strings.TrimSpace(vm.Mode) == "" {
		return "", false
	}
	mode := strings.TrimSpace(vm.Mode)
	state := strings.ToLower(mode)
	opts, _ := options[*vimModeOptions](w, cfg)

	text := strings.ToUpper(mode)
	if opts != nil && opts.Format == "short" {
		text = strings.ToUpper(string([]rune(mode)[:1]))
	}
	fallback, ok := vimModeColors[state]
	if !ok {
		fallback = w.Metadata().DefaultColor
	}
	return paint(ctx, cfg, text, state, fallback), true
}

type outputStyleOptions struct {
	CommonOptions `yaml:",inline"`
	HideDefault   bool `yaml:"hideDefault"`
}

type outputStyleWidget struct{}

func (outputStyleWidget) Metadata() Metadata {
	return Metadata{
		Name:         "outputStyle",
		Description:  "Active output style",
		Category:     CategorySession,
		DefaultColor: "magenta",
	}
}

func (outputStyleWidget) DefaultOptions() any { return &outputStyleOptions{} }

func (w outputStyleWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	out := ctx.Status.OutputStyle
	if out == nil || out.Name == "" {
		return "", false
	}
	opts, _ := options[*outputStyleOptions](w, cfg)
	if opts != nil && opts.HideDefault && strings.EqualFold(out.Name, "default") {
		return "", false
	}
	return paint(ctx, cfg, out.Name, "", w.Metadata().DefaultColor), true
}

type costOptions struct {
	CommonOptions `yaml:",inline"`
	Decimals      int `yaml:"decimals" validate:"min=0,max=6"`
}

type costWidget struct{}

func (costWidget) Metadata() Metadata {
	return Metadata{
		Name:         "cost",
		Description:  "Session cost in USD",
		Category:     CategorySession,
		DefaultColor: "green",
	}
}

func (costWidget) DefaultOptions() any { return &costOptions{Decimals: 2} }

func (w costWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	c := ctx.Status.Cost
	if c == nil || c.TotalCostUSD == nil {
		return "", false
	}
	decimals := 2
	if opts, _ := options[*costOptions](w, cfg); opts != nil {
		decimals = opts.Decimals
	}
	return paint(ctx, cfg, fmt.Sprintf("$%.*f", decimals, *c.TotalCostUSD), "", w.Metadata().DefaultColor), true
}

type linesChangedWidget struct{}

func (linesChangedWidget) Metadata() Metadata {
	return Metadata{
		Name:        "linesChanged",
		Description: "Lines added and removed this session",
		Category:    CategorySession,
		StateKeys:   []string{"added", "removed"},
	}
}

func (linesChangedWidget) DefaultOptions() any { return &basicOptions{} }

func (w linesChangedWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	c := ctx.Status.Cost
	if c == nil || (c.TotalLinesAdded == nil && c.TotalLinesRemoved == nil) {
		return "", false
	}
	var added, removed int
	if c.TotalLinesAdded != nil {
		added = *c.TotalLinesAdded
	}
	if c.TotalLinesRemoved != nil {
		removed = *c.TotalLinesRemoved
	}
	return paint(ctx, cfg, numbers.Sprintf("+%d", added), "added", "green") + " " +
		paint(ctx, cfg, numbers.Sprintf("-%d", removed), "removed", "red"), true
}

type turnCountWidget struct{}

func (turnCountWidget) Metadata() Metadata {
	return Metadata{
		Name:        "turnCount",
		Description: "Number of conversation turns",
		Category:    CategorySession,
	}
}

func (turnCountWidget) DefaultOptions() any { return &basicOptions{} }

func (w turnCountWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	n := ctx.Status.TurnCount
	if n == nil {
		return "", false
	}
	unit := "turns"
	if *n == 1 {
		unit = "turn"
	}
	return paint(ctx, cfg, numbers.Sprintf("%d %s", *n, unit), "", ""), true
}

type sessionIDOptions struct {
	CommonOptions `yaml:",inline"`
	Length        int `yaml:"length" validate:"min=0"`
}

type sessionIDWidget struct{}

func (sessionIDWidget) Metadata() Metadata {
	return Metadata{
		Name:        "sessionId",
		Description: "Session identifier, shortened",
		Category:    CategorySession,
	}
}

func (sessionIDWidget) DefaultOptions() any { return &sessionIDOptions{Length: 8} }

func (w sessionIDWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	id := ctx.Status.SessionID
	if id == "" {
		return "", false
	}
	if opts, _ := options[*sessionIDOptions](w, cfg); opts != nil && opts.Length > 0 {
		if runes := []rune(id); len(runes) > opts.Length {
			id = string(runes[:opts.Length])
		}
	}
	return paintDim(ctx, cfg, id, ""), true
}
