package widget

import (
	"os"
	"time"

	"github.com/alexisbeaulieu97/statusline/internal/config"
	"github.com/alexisbeaulieu97/statusline/internal/gitinfo"
	"github.com/alexisbeaulieu97/statusline/internal/status"
	"github.com/alexisbeaulieu97/statusline/internal/style"
)

// GitOverride replaces live git facts, typically for previews. A nil Info
// means "no repository".
type GitOverride struct {
	Info *gitinfo.Info
}

// RenderContext is the snapshot a render call reads. It is not modified
// after NewRenderContext returns.
type RenderContext struct {
	Status        *status.Status
	Usage         *status.Usage
	TerminalWidth int
	Settings      *config.Settings
	MockGitInfo   *GitOverride
	Git           *gitinfo.Info
	HomeDir       string
	Now           time.Time
	Style         *style.Colorizer
}

// ContextOptions feeds NewRenderContext. Zero fields get defaults.
type ContextOptions struct {
	Status        *status.Status
	Usage         *status.Usage
	TerminalWidth int
	Settings      *config.Settings
	MockGitInfo   *GitOverride
	Git           *gitinfo.Info
	HomeDir       string
	Now           time.Time
	Style         *style.Colorizer
}

// NewRenderContext builds a RenderContext, filling in the empty status,
// default settings, the user's home directory, the current time and a
// Colorizer at the settings' color level.
func NewRenderContext(opts ContextOptions) *RenderContext {
	ctx := &RenderContext{
		Status:        opts.Status,
		Usage:         opts.Usage,
		TerminalWidth: opts.TerminalWidth,
		Settings:      opts.Settings,
		MockGitInfo:   opts.MockGitInfo,
		Git:           opts.Git,
		HomeDir:       opts.HomeDir,
		Now:           opts.Now,
		Style:         opts.Style,
	}
	if ctx.Status == nil {
		ctx.Status = &status.Status{}
	}
	if ctx.Settings == nil {
		ctx.Settings = config.DefaultSettings()
	}
	if ctx.HomeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			ctx.HomeDir = home
		}
	}
	if ctx.Now.IsZero() {
		ctx.Now = time.Now()
	}
	if ctx.Style == nil {
		ctx.Style = style.New(style.Level(ctx.Settings.ColorLevel))
	}
	return ctx
}

// complete returns c when every field widgets dereference is set, otherwise a
// copy filled in by NewRenderContext. A nil c yields a fresh empty snapshot.
func (c *RenderContext) complete() *RenderContext {
	if c == nil {
		return NewRenderContext(ContextOptions{})
	}
	if c.Status != nil && c.Settings != nil && c.Style != nil && !c.Now.IsZero() {
		return c
	}
	return NewRenderContext(ContextOptions{
		Status:        c.Status,
		Usage:         c.Usage,
		TerminalWidth: c.TerminalWidth,
		Settings:      c.Settings,
		MockGitInfo:   c.MockGitInfo,
		Git:           c.Git,
		HomeDir:       c.HomeDir,
		Now:           c.Now,
		Style:         c.Style,
	})
}

// GitInfo returns the override when one is set, else the live facts.
func (c *RenderContext) GitInfo() *gitinfo.Info {
	if c == nil {
		return nil
	}
	if c.MockGitInfo != nil {
		return c.MockGitInfo.Info
	}
	return c.Git
}
