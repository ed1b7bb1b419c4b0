package preview

import (
	"time"

	"github.com/alexisbeaulieu97/statusline/internal/gitinfo"
	"github.com/alexisbeaulieu97/statusline/internal/status"
)

// DefaultScenario is used when no scenario is named.
const DefaultScenario = "full"

// Scenario is a canned set of inputs for previewing a configuration.
type Scenario struct {
	Name        string
	Description string
	Status      *status.Status
	Usage       *status.Usage
	// Git is the repository state; nil previews a directory outside git.
	Git *gitinfo.Info
}

// Scenarios returns the built-in scenarios with usage windows relative to now.
func Scenarios(now time.Time) []Scenario {
	return []Scenario{
		{
			Name:        "full",
			Description: "Every field populated, dirty repository with upstream",
			Status:      fullStatus(),
			Usage:       fullUsage(now),
			Git:         dirtyRepo(),
		},
		{
			Name:        "minimal",
			Description: "Only directory and model, clean repository, no OAuth session",
			Status: &status.Status{
				CurrentDir: "/home/dev/projects/statusline",
				Model:      &status.Model{ID: "claude-sonnet-4-5", DisplayName: "Sonnet 4.5"},
			},
			Git: &gitinfo.Info{Branch: "main", Commit: "4f1c2d9e8b7a6c5d", RootDir: "/home/dev/projects/statusline"},
		},
		{
			Name:        "no-git",
			Description: "Full session outside any repository",
			Status:      fullStatus(),
			Usage:       fullUsage(now),
		},
		{
			Name:        "no-usage",
			Description: "Full session without usage data",
			Status:      fullStatus(),
			Git:         &gitinfo.Info{Branch: "main", Commit: "4f1c2d9e8b7a6c5d", RootDir: "/home/dev/projects/statusline"},
		},
	}
}

// ScenarioNames lists the built-in scenario names in order.
func ScenarioNames() []string {
	scenarios := Scenarios(time.Time{})
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	return names
}

// LookupScenario finds a built-in scenario by name.
func LookupScenario(name string, now time.Time) (Scenario, bool) {
	if name == "" {
		name = DefaultScenario
	}
	for _, s := range Scenarios(now) {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

func fullStatus() *status.Status {
	remaining := 63.0
	cost := 2.4718
	added, removed := 1287, 342
	turns := 42
	return &status.Status{
		SessionID:     "9f3a7c21-5b8e-4d1a-a2f0-6c3e9b1d7e44",
		CurrentDir:    "/home/dev/projects/statusline/internal/widget",
		Workspace:     &status.Workspace{CurrentDir: "/home/dev/projects/statusline/internal/widget", ProjectDir: "/home/dev/projects/statusline"},
		Model:         &status.Model{ID: "claude-opus-4-1", DisplayName: "Opus 4.1"},
		VimMode:       &status.VimMode{Mode: "NORMAL"},
		ContextWindow: &status.ContextWindow{RemainingPercentage: &remaining},
		OutputStyle:   &status.OutputStyle{Name: "Explanatory"},
		Cost:          &status.Cost{TotalCostUSD: &cost, TotalLinesAdded: &added, TotalLinesRemoved: &removed},
		TurnCount:     &turns,
	}
}

func fullUsage(now time.Time) *status.Usage {
	reset := func(d time.Duration) string { return now.Add(d).UTC().Format(time.RFC3339) }
	limit, used, utilization := 50.0, 12.75, 25.5
	return &status.Usage{
		CurrentSession:  &status.UsageWindow{PercentUsed: 37, ResetTime: reset(2*time.Hour + 14*time.Minute)},
		WeeklyAll:       &status.UsageWindow{PercentUsed: 64, ResetTime: reset(3*24*time.Hour + 5*time.Hour)},
		WeeklySonnet:    &status.UsageWindow{PercentUsed: 22, ResetTime: reset(3*24*time.Hour + 5*time.Hour)},
		WeeklyOpus:      &status.UsageWindow{PercentUsed: 88, ResetTime: reset(3*24*time.Hour + 5*time.Hour)},
		WeeklyOAuthApps: &status.UsageWindow{PercentUsed: 5, ResetTime: reset(3*24*time.Hour + 5*time.Hour)},
		WeeklyCowork:    &status.UsageWindow{PercentUsed: 12, ResetTime: reset(3*24*time.Hour + 5*time.Hour)},
		ExtraUsage:      &status.ExtraUsage{IsEnabled: true, MonthlyLimit: &limit, UsedCredits: &used, Utilization: &utilization},
	}
}

func dirtyRepo() *gitinfo.Info {
	return &gitinfo.Info{
		Branch:      "feature/usage-bars",
		Commit:      "a83bc41f09d2e7715c6b",
		RootDir:     "/home/dev/projects/statusline",
		Staged:      2,
		Modified:    3,
		Untracked:   1,
		HasUpstream: true,
		Ahead:       2,
		Behind:      1,
	}
}
