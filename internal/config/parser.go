package config

import (
	"bytes"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	slerrors "github.com/alexisbeaulieu97/statusline/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads settings from disk, validates them and prepares every widget's typed options.
// A missing file yields DefaultSettings. Warnings describe problems that degrade rendering
// without preventing it; err is reserved for unreadable or structurally invalid settings.
func Load(path string, catalog Catalog) (*Settings, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultSettings()
			return cfg, Prepare(cfg, catalog), nil
		}
		return nil, nil, slerrors.NewParseError(path, 0, err)
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, Prepare(cfg, catalog), nil
}

// Parse decodes YAML or JSON settings and validates them. Keys missing from the
// document keep their DefaultSettings values.
func Parse(data []byte, source string) (*Settings, error) {
	cfg := DefaultSettings()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, slerrors.NewParseError(source, extractLine(err), err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractLine pulls the line number out of a yaml.v3 error message.
func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
