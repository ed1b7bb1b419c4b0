// Package widget defines the status line widget contract, the render context
// widgets read from, and the closed registry of built-in widgets.
package widget

import (
	"github.com/alexisbeaulieu97/statusline/internal/config"
)

// Category groups widgets in listings.
type Category string

const (
	CategoryGit     Category = "git"
	CategorySession Category = "session"
	CategoryUsage   Category = "usage"
	CategoryLayout  Category = "layout"
)

// Metadata describes a widget for catalogs and settings validation.
type Metadata struct {
	Name         string
	Description  string
	Category     Category
	DefaultColor string
	// StateKeys lists the colors[...] keys the widget resolves.
	StateKeys []string
}

// Widget renders one slot of a row.
//
// Render returns false when the fact the widget displays is unavailable. It
// must not panic for any context or configuration.
type Widget interface {
	Metadata() Metadata
	// DefaultOptions returns a fresh pointer to the widget's option struct,
	// populated with defaults. Settings options decode into it.
	DefaultOptions() any
	Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool)
}

// NA visibility modes.
const (
	NAHide  = "hide"
	NAShow  = "na"
	NADash  = "dash"
	NAEmpty = "empty"
)

// CommonOptions are recognized by every widget and applied by the registry.
type CommonOptions struct {
	Label        string `yaml:"label,omitempty"`
	NAVisibility string `yaml:"naVisibility,omitempty" validate:"omitempty,oneof=hide na dash empty"`
}

// Common exposes the shared options of any option struct embedding CommonOptions.
func (c CommonOptions) Common() CommonOptions {
	return c
}

type commonOptioner interface {
	Common() CommonOptions
}

// basicOptions is the option table of widgets without options of their own.
type basicOptions struct {
	CommonOptions `yaml:",inline"`
}
