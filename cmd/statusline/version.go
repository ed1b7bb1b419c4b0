package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set through -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type buildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Modified  bool
}

// resolveBuildInfo prefers ldflags values and falls back to the module and
// VCS stamps the Go toolchain embeds, so `go install` builds report something useful.
func resolveBuildInfo(read func() (*debug.BuildInfo, bool)) buildInfo {
	info := buildInfo{Version: version, Commit: commit, Date: date}

	bi, ok := read()
	if !ok || bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" && s.Value != "" {
				info.Commit = s.Value
				if len(info.Commit) > 12 {
					info.Commit = info.Commit[:12]
				}
			}
		case "vcs.time":
			if info.Date == "unknown" && s.Value != "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := resolveBuildInfo(debug.ReadBuildInfo)
			commitLine := info.Commit
			if info.Modified {
				commitLine += " (modified)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "statusline %s\ncommit: %s\nbuilt: %s\n", info.Version, commitLine, info.Date)
			if info.GoVersion != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "go: %s\n", info.GoVersion)
			}
			return nil
		},
	}

	return cmd
}
