package widget

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/statusline/internal/config"
)

// Registry maps widget names to implementations.
type Registry struct {
	mu      sync.RWMutex
	widgets map[string]Widget
	order   []string
}

var _ config.Catalog = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{widgets: make(map[string]Widget)}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the registry holding every built-in widget.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		for _, w := range builtins() {
			if err := r.Register(w); err != nil {
				panic(err)
			}
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Register adds a widget under its metadata name.
func (r *Registry) Register(w Widget) error {
	if w == nil {
		return errors.New("widget is nil")
	}
	name := w.Metadata().Name
	if name == "" {
		return errors.New("widget metadata requires a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.widgets[name]; exists {
		return fmt.Errorf("widget %q already registered", name)
	}
	r.widgets[name] = w
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the widget registered under name.
func (r *Registry) Lookup(name string) (Widget, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.widgets[name]
	return w, ok
}

// Names lists registered names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Metadata lists every registered widget's metadata in registration order.
func (r *Registry) Metadata() []Metadata {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Metadata, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.widgets[name].Metadata())
	}
	return out
}

// DecodeOptions decodes cfg.Options into the widget's option table and stores
// it in cfg.Typed. On failure the defaults are stored and the error returned.
func (r *Registry) DecodeOptions(cfg *config.WidgetConfig) error {
	if cfg == nil {
		return errors.New("widget config is nil")
	}
	w, ok := r.Lookup(cfg.Widget)
	if !ok {
		return fmt.Errorf("unknown widget %q", cfg.Widget)
	}
	typed, err := decodeOptions(w, cfg.Options)
	if err != nil {
		cfg.Typed = w.DefaultOptions()
		return err
	}
	cfg.Typed = typed
	return nil
}

// Render renders one configured slot, applying the shared N/A and label
// policies. Unknown widgets render nothing.
func (r *Registry) Render(ctx *RenderContext, cfg *config.WidgetConfig) (string, bool) {
	if cfg == nil {
		return "", false
	}
	w, ok := r.Lookup(cfg.Widget)
	if !ok {
		return "", false
	}
	ctx = ctx.complete()

	var common CommonOptions
	if c, ok := options[commonOptioner](w, cfg); ok {
		common = c.Common()
	}

	text, ok := w.Render(ctx, cfg)
	if !ok {
		text, ok = notAvailable(ctx, cfg, common.NAVisibility)
		if !ok {
			return "", false
		}
	}
	if common.Label != "" && text != "" {
		text = ctx.Style.Colorize(common.Label, cfg.Color, ctx.Style.Dim) + ": " + text
	}
	return text, true
}

func notAvailable(ctx *RenderContext, cfg *config.WidgetConfig, visibility string) (string, bool) {
	switch visibility {
	case NAShow:
		return ctx.Style.Colorize("N/A", cfg.Color, ctx.Style.Dim), true
	case NADash:
		return ctx.Style.Colorize("-", cfg.Color, ctx.Style.Dim), true
	case NAEmpty:
		return "", true
	default:
		return "", false
	}
}

// decodeOptions decodes raw into a fresh default option table. Unknown keys
// are rejected so typos surface as settings warnings.
func decodeOptions(w Widget, raw map[string]any) (any, error) {
	target := w.DefaultOptions()
	if len(raw) > 0 {
		data, err := yaml.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("encode options: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(target); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
	}
	if err := config.GetValidator().Struct(target); err != nil {
		return nil, fmt.Errorf("validate options: %w", err)
	}
	return target, nil
}

// options returns cfg's typed option table as T, decoding lazily when the
// settings boundary has not prepared it. Decode failures yield the defaults.
func options[T any](w Widget, cfg *config.WidgetConfig) (T, bool) {
	if cfg != nil {
		if typed, ok := cfg.Typed.(T); ok {
			return typed, true
		}
		if cfg.Typed == nil {
			if decoded, err := decodeOptions(w, cfg.Options); err == nil {
				if typed, ok := decoded.(T); ok {
					return typed, true
				}
			}
		}
	}
	typed, ok := w.DefaultOptions().(T)
	return typed, ok
}
