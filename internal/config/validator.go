package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sahilm/fuzzy"

	"github.com/alexisbeaulieu97/statusline/internal/ansihtml"
	"github.com/alexisbeaulieu97/statusline/internal/style"
	slerrors "github.com/alexisbeaulieu97/statusline/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Catalog is the view of the widget registry the settings boundary needs.
type Catalog interface {
	Names() []string
	DecodeOptions(item *WidgetConfig) error
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(yamlTagName)

		_ = v.RegisterValidation("palette_id", func(fl validator.FieldLevel) bool {
			_, ok := ansihtml.LookupPalette(fl.Field().String())
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the shared validator, including the palette_id tag.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// Validate performs structural validation. Problems limited to a single widget are
// reported by Prepare instead so the rest of the status line still renders.
func Validate(cfg *Settings) error {
	if cfg == nil {
		return slerrors.NewValidationError("settings", "settings are nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	return nil
}

// Prepare decodes every widget's typed options and lints names and colors.
// It mutates cfg in place and returns non-fatal warnings.
func Prepare(cfg *Settings, catalog Catalog) []error {
	if cfg == nil || catalog == nil {
		return nil
	}

	names := catalog.Names()
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}

	var warnings []error
	for r := range cfg.Rows {
		for c := range cfg.Rows[r] {
			item := &cfg.Rows[r][c]

			if _, ok := known[item.Widget]; !ok {
				msg := fmt.Sprintf("unknown widget %q", item.Widget)
				if suggestion := Suggest(item.Widget, names); suggestion != "" {
					msg = fmt.Sprintf("%s (did you mean %q?)", msg, suggestion)
				}
				warnings = append(warnings, slerrors.NewValidationError(fieldForItem(r, c, "widget"), msg, nil))
				continue
			}

			if item.Color != "" && !style.IsColor(item.Color) {
				warnings = append(warnings, slerrors.NewValidationError(fieldForItem(r, c, "color"), fmt.Sprintf("unknown color %q", item.Color), nil))
			}
			states := make([]string, 0, len(item.Colors))
			for state := range item.Colors {
				states = append(states, state)
			}
			sort.Strings(states)
			for _, state := range states {
				if color := item.Colors[state]; !style.IsColor(color) {
					warnings = append(warnings, slerrors.NewValidationError(fieldForItem(r, c, "colors."+state), fmt.Sprintf("unknown color %q", color), nil))
				}
			}

			if err := catalog.DecodeOptions(item); err != nil {
				warnings = append(warnings, slerrors.NewOptionError(item.Widget, r, c, err))
			}
		}
	}

	return warnings
}

// Suggest returns the closest known name for an unknown widget, or "".
func Suggest(name string, known []string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	for _, candidate := range known {
		if strings.EqualFold(candidate, name) {
			return candidate
		}
	}
	matches := fuzzy.Find(name, known)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := settingsPath(ve.Namespace())
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return slerrors.NewValidationError(field, msg, err)
	}

	return slerrors.NewValidationError("settings", err.Error(), err)
}

// yamlTagName names fields by their settings key so errors point at what the
// user wrote.
func yamlTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// settingsPath drops the root struct name: "Settings.rows[0][1].widget"
// becomes "rows[0][1].widget".
func settingsPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldForItem(row, column int, field string) string {
	return fmt.Sprintf("rows[%d][%d].%s", row, column, field)
}
