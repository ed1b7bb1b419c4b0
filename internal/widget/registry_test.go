package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/gitinfo"
	"github.com/alexisbeaulieu97/statusline/internal/status"
	"github.com/alexisbeaulieu97/statusline/internal/style"
	slerrors "github.com/alexisbeaulieu97/statusline/pkg/errors"
)

var testNow = time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func testContext(st *status.Status, opts ...func(*ContextOptions)) *RenderContext {
	o := ContextOptions{
		Status:  st,
		HomeDir: "/home/dev",
		Now:     testNow,
		Style:   style.New(style.LevelNone),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return NewRenderContext(o)
}

func withGit(info *gitinfo.Info) func(*ContextOptions) {
	return func(o *ContextOptions) { o.MockGitInfo = &GitOverride{Info: info} }
}

func withUsage(u *status.Usage) func(*ContextOptions) {
	return func(o *ContextOptions) { o.Usage = u }
}

func withStyle(level style.Level) func(*ContextOptions) {
	return func(o *ContextOptions) { o.Style = style.New(level) }
}

func render(t *testing.T, ctx *RenderContext, cfg config.WidgetConfig) (string, bool) {
	t.Helper()
	return DefaultRegistry().Render(ctx, &cfg)
}

func TestDefaultRegistryNames(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	names := reg.Names()
	for _, want := range []string{
		"directory", "gitBranch", "gitStatus", "gitAheadBehind", "gitRoot",
		"model", "contextRemaining", "contextBar", "vimMode", "outputStyle",
		"cost", "linesChanged", "turnCount", "sessionId",
		"sessionUsage", "weeklyUsage", "weeklySonnet", "weeklyOpus", "weeklyOAuthApps", "weeklyCowork",
		"sessionUsageBar", "weeklyUsageBar", "sessionReset", "weeklyReset", "extraUsage",
		"text", "clock", "separator",
	} {
		assert.Contains(t, names, want)
	}
	assert.Len(t, reg.Metadata(), len(names))

	for _, md := range reg.Metadata() {
		w, ok := reg.Lookup(md.Name)
		require.True(t, ok)
		_, common := w.DefaultOptions().(commonOptioner)
		assert.True(t, common, "%s options must embed CommonOptions", md.Name)
		assert.NotEmpty(t, md.Description, md.Name)
	}
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.Register(textWidget{}))
	require.Error(t, reg.Register(textWidget{}))
	require.Error(t, reg.Register(nil))
	assert.Equal(t, []string{"text"}, reg.Names())

	var nilReg *Registry
	_, ok := nilReg.Lookup("text")
	assert.False(t, ok)
	assert.Nil(t, nilReg.Names())
}

func TestRenderUnknownWidgetIsAbsent(t *testing.T) {
	t.Parallel()

	out, ok := render(t, testContext(nil), config.WidgetConfig{Widget: "nope", Options: map[string]any{"naVisibility": "na"}})
	assert.False(t, ok)
	assert.Empty(t, out)

	_, ok = DefaultRegistry().Render(testContext(nil), nil)
	assert.False(t, ok)
}

func TestRenderToleratesPartialContexts(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	contexts := map[string]*RenderContext{
		"nil":         nil,
		"literal":     {},
		"status only": {Status: &status.Status{Model: &status.Model{DisplayName: "Opus"}}},
		"usage only":  {Usage: &status.Usage{CurrentSession: &status.UsageWindow{PercentUsed: 40}}},
	}
	for name, ctx := range contexts {
		for _, widgetName := range reg.Names() {
			cfg := config.WidgetConfig{Widget: widgetName}
			require.NotPanics(t, func() { reg.Render(ctx, &cfg) }, "%s context, widget %s", name, widgetName)
		}
	}

	out, ok := reg.Render(&RenderContext{Status: &status.Status{Model: &status.Model{DisplayName: "Opus"}}}, &config.WidgetConfig{Widget: "model"})
	assert.True(t, ok)
	assert.Contains(t, out, "Opus")

	out, ok = reg.Render(&RenderContext{}, &config.WidgetConfig{Widget: "model", Options: map[string]any{"naVisibility": "dash"}})
	assert.True(t, ok)
	assert.Contains(t, out, "-")
}

func TestNAVisibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		visibility string
		want       string
		present    bool
	}{
		{visibility: "", want: "", present: false},
		{visibility: "hide", want: "", present: false},
		{visibility: "na", want: "N/A", present: true},
		{visibility: "dash", want: "-", present: true},
		{visibility: "empty", want: "", present: true},
	}

	for _, tc := range tests {
		t.Run("visibility="+tc.visibility, func(t *testing.T) {
			t.Parallel()
			cfg := config.WidgetConfig{Widget: "model"}
			if tc.visibility != "" {
				cfg.Options = map[string]any{"naVisibility": tc.visibility}
			}
			out, ok := render(t, testContext(&status.Status{}), cfg)
			assert.Equal(t, tc.present, ok)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestNAVisibilityUsesDimFallback(t *testing.T) {
	t.Parallel()

	ctx := testContext(nil, withStyle(style.LevelBasic))
	out, ok := render(t, ctx, config.WidgetConfig{Widget: "cost", Options: map[string]any{"naVisibility": "na"}})
	require.True(t, ok)
	assert.Equal(t, "\x1b[2mN/A\x1b[0m", out)

	out, ok = render(t, ctx, config.WidgetConfig{Widget: "cost", Color: "red", Options: map[string]any{"naVisibility": "dash"}})
	require.True(t, ok)
	assert.Equal(t, "\x1b[31m-\x1b[0m", out)
}

func TestLabelPolicy(t *testing.T) {
	t.Parallel()

	ctx := testContext(&status.Status{Model: &status.Model{DisplayName: "Opus 4"}})

	out, ok := render(t, ctx, config.WidgetConfig{Widget: "model", Options: map[string]any{"label": "Model"}})
	require.True(t, ok)
	assert.Equal(t, "Model: Opus 4", out)

	out, ok = render(t, ctx, config.WidgetConfig{Widget: "model", Options: map[string]any{"label": ""}})
	require.True(t, ok)
	assert.Equal(t, "Opus 4", out)

	out, ok = render(t, ctx, config.WidgetConfig{Widget: "cost", Options: map[string]any{"label": "Cost", "naVisibility": "na"}})
	require.True(t, ok)
	assert.Equal(t, "Cost: N/A", out)

	colored := testContext(&status.Status{Model: &status.Model{DisplayName: "Opus 4"}}, withStyle(style.LevelBasic))
	out, ok = render(t, colored, config.WidgetConfig{Widget: "model", Color: "red", Options: map[string]any{"label": "M"}})
	require.True(t, ok)
	assert.Equal(t, "\x1b[31mM\x1b[0m: \x1b[31mOpus 4\x1b[0m", out)
}

func TestColorPrecedence(t *testing.T) {
	t.Parallel()

	ctx := testContext(nil, withStyle(style.LevelBasic), withGit(&gitinfo.Info{Branch: "main", Modified: 1}))

	out, _ := render(t, ctx, config.WidgetConfig{Widget: "gitBranch"})
	assert.Equal(t, "\x1b[35mmain\x1b[0m", out, "widget default")

	out, _ = render(t, ctx, config.WidgetConfig{Widget: "gitBranch", Color: "blue"})
	assert.Equal(t, "\x1b[34mmain\x1b[0m", out, "color overrides default")

	out, _ = render(t, ctx, config.WidgetConfig{Widget: "gitBranch", Color: "blue", Colors: map[string]string{"dirty": "red", "clean": "green"}})
	assert.Equal(t, "\x1b[31mmain\x1b[0m", out, "state color overrides color")

	out, _ = render(t, ctx, config.WidgetConfig{Widget: "gitBranch", Colors: map[string]string{"clean": "green"}})
	assert.Equal(t, "\x1b[35mmain\x1b[0m", out, "other state colors do not apply")
}

func TestDecodeOptions(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	cfg := config.WidgetConfig{Widget: "directory", Options: map[string]any{"format": "segments", "segments": 3}}
	require.NoError(t, reg.DecodeOptions(&cfg))
	opts, ok := cfg.Typed.(*directoryOptions)
	require.True(t, ok)
	assert.Equal(t, DirSegments, opts.Format)
	assert.Equal(t, 3, opts.Segments)

	empty := config.WidgetConfig{Widget: "separator"}
	require.NoError(t, reg.DecodeOptions(&empty))
	assert.Equal(t, &separatorOptions{Char: "|", Padding: true}, empty.Typed)

	bad := config.WidgetConfig{Widget: "directory", Options: map[string]any{"format": "weird"}}
	err := reg.DecodeOptions(&bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'format'")
	assert.Equal(t, lookupWidget(t, "directory").DefaultOptions(), bad.Typed)

	typo := config.WidgetConfig{Widget: "separator", Options: map[string]any{"chr": "/"}}
	require.Error(t, reg.DecodeOptions(&typo))

	wrongType := config.WidgetConfig{Widget: "cost", Options: map[string]any{"decimals": "two"}}
	require.Error(t, reg.DecodeOptions(&wrongType))

	thresholds := config.WidgetConfig{Widget: "contextBar", Options: map[string]any{"mediumThreshold": 90, "highThreshold": 60}}
	require.Error(t, reg.DecodeOptions(&thresholds))

	badVisibility := config.WidgetConfig{Widget: "text", Options: map[string]any{"naVisibility": "sometimes"}}
	require.Error(t, reg.DecodeOptions(&badVisibility))

	unknown := config.WidgetConfig{Widget: "nope"}
	require.Error(t, reg.DecodeOptions(&unknown))
	require.Error(t, reg.DecodeOptions(nil))
}

func TestPrepareWithRegistry(t *testing.T) {
	t.Parallel()

	settings := &config.Settings{Rows: [][]config.WidgetConfig{{
		{Widget: "separator", Options: map[string]any{"char": "/", "padding": false}},
		{Widget: "modl"},
		{Widget: "cost", Options: map[string]any{"decimals": 9}},
	}}}

	warnings := config.Prepare(settings, DefaultRegistry())
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Error(), `did you mean "model"`)

	var optErr *slerrors.OptionError
	require.ErrorAs(t, warnings[1], &optErr)
	assert.Equal(t, "cost", optErr.Widget)
	assert.Equal(t, 2, optErr.Column)

	out, ok := render(t, testContext(nil), settings.Rows[0][0])
	require.True(t, ok)
	assert.Equal(t, "/", out)
}

func TestTypedOptionsFallBackToDefaults(t *testing.T) {
	t.Parallel()

	ctx := testContext(&status.Status{Cost: &status.Cost{TotalCostUSD: ptr(1.23456)}})
	out, ok := render(t, ctx, config.WidgetConfig{Widget: "cost", Options: map[string]any{"decimals": "many"}})
	require.True(t, ok)
	assert.Equal(t, "$1.23", out)
}

func TestRenderContextDefaults(t *testing.T) {
	t.Parallel()

	ctx := NewRenderContext(ContextOptions{})
	require.NotNil(t, ctx.Status)
	require.NotNil(t, ctx.Settings)
	require.NotNil(t, ctx.Style)
	assert.False(t, ctx.Now.IsZero())
	assert.Equal(t, style.Level(ctx.Settings.ColorLevel), ctx.Style.Level())
}

func TestRenderContextGitInfo(t *testing.T) {
	t.Parallel()

	live := &gitinfo.Info{Branch: "live"}
	mock := &gitinfo.Info{Branch: "mock"}

	assert.Same(t, live, NewRenderContext(ContextOptions{Git: live}).GitInfo())
	assert.Same(t, mock, NewRenderContext(ContextOptions{Git: live, MockGitInfo: &GitOverride{Info: mock}}).GitInfo())
	assert.Nil(t, NewRenderContext(ContextOptions{Git: live, MockGitInfo: &GitOverride{}}).GitInfo())

	var nilCtx *RenderContext
	assert.Nil(t, nilCtx.GitInfo())
}

func lookupWidget(t *testing.T, name string) Widget {
	t.Helper()
	widget, ok := DefaultRegistry().Lookup(name)
	require.True(t, ok)
	return widget
}
