// Package status holds the facts a host application pipes into the status line
// and the OAuth usage snapshot it may hand alongside them.
package status

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	slerrors "github.com/alexisbeaulieu97/statusline/pkg/errors"
)

// Status is the JSON document received on stdin. Every field is optional.
type Status struct {
	SessionID     string         `json:"session_id,omitempty"`
	CurrentDir    string         `json:"current_dir,omitempty"`
	Workspace     *Workspace     `json:"workspace,omitempty"`
	Model         *Model         `json:"model,omitempty"`
	VimMode       *VimMode       `json:"vim_mode,omitempty"`
	ContextWindow *ContextWindow `json:"context_window,omitempty"`
	OutputStyle   *OutputStyle   `json:"output_style,omitempty"`
	Cost          *Cost          `json:"cost,omitempty"`
	TurnCount     *int           `json:"turn_count,omitempty"`
}

// Workspace carries the directories reported by hosts that nest them.
type Workspace struct {
	CurrentDir string `json:"current_dir,omitempty"`
	ProjectDir string `json:"project_dir,omitempty"`
}

// Model describes the active model.
type Model struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// VimMode reports the editor mode when vim keybindings are enabled.
type VimMode struct {
	Mode string `json:"mode,omitempty"`
}

// ContextWindow reports how much of the context window is still free.
type ContextWindow struct {
	RemainingPercentage *float64 `json:"remaining_percentage,omitempty"`
}

// OutputStyle names the active output style.
type OutputStyle struct {
	Name string `json:"name,omitempty"`
}

// Cost aggregates session cost and edit metrics.
type Cost struct {
	TotalCostUSD      *float64 `json:"total_cost_usd,omitempty"`
	TotalLinesAdded   *int     `json:"total_lines_added,omitempty"`
	TotalLinesRemoved *int     `json:"total_lines_removed,omitempty"`
}

// Directory returns the current directory, preferring the top-level field.
func (s *Status) Directory() string {
	if s == nil {
		return ""
	}
	if dir := strings.TrimSpace(s.CurrentDir); dir != "" {
		return dir
	}
	if s.Workspace != nil {
		return strings.TrimSpace(s.Workspace.CurrentDir)
	}
	return ""
}

// Usage is an OAuth usage snapshot. A nil *Usage means no OAuth session.
type Usage struct {
	CurrentSession  *UsageWindow `json:"current_session"`
	WeeklyAll       *UsageWindow `json:"weekly_all"`
	WeeklySonnet    *UsageWindow `json:"weekly_sonnet"`
	WeeklyOAuthApps *UsageWindow `json:"weekly_oauth_apps,omitempty"`
	WeeklyCowork    *UsageWindow `json:"weekly_cowork,omitempty"`
	WeeklyOpus      *UsageWindow `json:"weekly_opus,omitempty"`
	ExtraUsage      *ExtraUsage  `json:"extra_usage,omitempty"`
}

// UsageWindow is one rate-limit window.
type UsageWindow struct {
	ResetTime   string  `json:"reset_time"`
	PercentUsed float64 `json:"percent_used"`
}

// ResetAt parses ResetTime as RFC 3339. ok is false when the timestamp is missing or malformed.
func (w *UsageWindow) ResetAt() (time.Time, bool) {
	if w == nil || strings.TrimSpace(w.ResetTime) == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(w.ResetTime))
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// ExtraUsage describes pay-as-you-go credits beyond the plan limits.
type ExtraUsage struct {
	IsEnabled    bool     `json:"is_enabled"`
	MonthlyLimit *float64 `json:"monthly_limit,omitempty"`
	UsedCredits  *float64 `json:"used_credits,omitempty"`
	Utilization  *float64 `json:"utilization,omitempty"`
}

// Decode reads a Status document. An empty input yields an empty Status.
func Decode(r io.Reader) (*Status, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, slerrors.NewParseError("stdin", 0, err)
	}

	st := &Status{}
	if len(bytes.TrimSpace(data)) == 0 {
		return st, nil
	}

	if err := json.Unmarshal(data, st); err != nil {
		return nil, slerrors.NewParseError("stdin", jsonErrorLine(data, err), err)
	}
	return st, nil
}

// jsonErrorLine locates syntax and type errors; other errors report no line.
func jsonErrorLine(data []byte, err error) int {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return slerrors.LineAt(data, syntaxErr.Offset)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return slerrors.LineAt(data, typeErr.Offset)
	}
	return 0
}

// LoadUsage reads a usage snapshot file. A missing file is not an error and yields nil.
func LoadUsage(path string) (*Usage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, slerrors.NewParseError(path, 0, err)
	}

	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return nil, nil
	}

	var usage Usage
	if err := json.Unmarshal(data, &usage); err != nil {
		return nil, slerrors.NewParseError(path, jsonErrorLine(data, err), fmt.Errorf("decode usage snapshot: %w", err))
	}
	return &usage, nil
}
