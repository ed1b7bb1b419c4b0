package widget

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/statusline/internal/config"
)

type gitBranchOptions struct {
	CommonOptions `yaml:",inline"`
	Icon          string `yaml:"icon"`
}

type gitBranchWidget struct{}

func (gitBranchWidget) Metadata() Metadata {
	return Metadata{
		Name:         "gitBranch",
		Description:  "Current branch, or @<sha> on a detached HEAD",
		Category:     CategoryGit,
		DefaultColor: "magenta",
		StateKeys:    []string{"clean", "dirty"},
	}
}

func (gitBranchWidget) DefaultOptions() any { return &gitBranchOptions{} }

func (w gitBranchWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	info := ctx.GitInfo()
	if info == nil {
		return "", false
	}
	name := info.Branch
	if info.Detached || name == "" {
		sha := info.ShortCommit()
		if sha == "" {
			return "", false
		}
		name = "@" + sha
	}
	opts, _ := options[*gitBranchOptions](w, cfg)
	if opts != nil && opts.Icon != "" {
		name = opts.Icon + " " + name
	}
	state := "clean"
	if info.Dirty() {
		state = "dirty"
	}
	return paint(ctx, cfg, name, state, w.Metadata().DefaultColor), true
}

type gitStatusOptions struct {
	CommonOptions `yaml:",inline"`
	ShowClean     bool   `yaml:"showClean"`
	CleanText     string `yaml:"cleanText"`
}

type gitStatusWidget struct{}

func (gitStatusWidget) Metadata() Metadata {
	return Metadata{
		Name:         "gitStatus",
		Description:  "Staged (+), modified (~) and untracked (?) file counts",
		Category:     CategoryGit,
		DefaultColor: "yellow",
		StateKeys:    []string{"clean", "dirty"},
	}
}

func (gitStatusWidget) DefaultOptions() any {
	return &gitStatusOptions{ShowClean: true, CleanText: "✓"}
}

func (w gitStatusWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	info := ctx.GitInfo()
	if info == nil {
		return "", false
	}
	opts, _ := options[*gitStatusOptions](w, cfg)
	if opts == nil {
		opts = w.DefaultOptions().(*gitStatusOptions)
	}

	if !info.Dirty() {
		if !opts.ShowClean || opts.CleanText == "" {
			return "", false
		}
		return paint(ctx, cfg, opts.CleanText, "clean", "green"), true
	}

	var parts []string
	if info.Staged > 0 {
		parts = append(parts, fmt.Sprintf("+%d", info.Staged))
	}
	if info.Modified > 0 {
		parts = append(parts, fmt.Sprintf("~%d", info.Modified))
	}
	if info.Untracked > 0 {
		parts = append(parts, fmt.Sprintf("?%d", info.Untracked))
	}
	return paint(ctx, cfg, strings.Join(parts, " "), "dirty", w.Metadata().DefaultColor), true
}

type gitAheadBehindWidget struct{}

func (gitAheadBehindWidget) Metadata() Metadata {
	return Metadata{
		Name:         "gitAheadBehind",
		Description:  "Commits ahead (↑) and behind (↓) the upstream branch",
		Category:     CategoryGit,
		DefaultColor: "cyan",
		StateKeys:    []string{"ahead", "behind"},
	}
}

func (gitAheadBehindWidget) DefaultOptions() any { return &basicOptions{} }

func (w gitAheadBehindWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	info := ctx.GitInfo()
	if info == nil || !info.HasUpstream || (info.Ahead == 0 && info.Behind == 0) {
		return "", false
	}
	var parts []string
	state := "ahead"
	if info.Ahead > 0 {
		parts = append(parts, fmt.Sprintf("↑%d", info.Ahead))
	}
	if info.Behind > 0 {
		parts = append(parts, fmt.Sprintf("↓%d", info.Behind))
		state = "behind"
	}
	return paint(ctx, cfg, strings.Join(parts, " "), state, w.Metadata().DefaultColor), true
}

type gitRootWidget struct{}

func (gitRootWidget) Metadata() Metadata {
	return Metadata{
		Name:         "gitRoot",
		Description:  "Name of the repository's top-level directory",
		Category:     CategoryGit,
		DefaultColor: "brightBlue",
	}
}

func (gitRootWidget) DefaultOptions() any { return &basicOptions{} }

func (w gitRootWidget) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	name := ctx.GitInfo().RepoName()
	if name == "" {
		return "", false
	}
	return paint(ctx, cfg, name, "", w.Metadata().DefaultColor), true
}
