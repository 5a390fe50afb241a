package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// buildInfo describes the ytdash binary.
type buildInfo struct {
	Version string
	Commit  string
	Built   string
	Module  string
	Go      string
	OSArch  string
}

// currentBuild merges the release metadata injected with -ldflags with what
// the Go toolchain embedded in the binary. Injected values win.
func currentBuild(read func() (*debug.BuildInfo, bool)) buildInfo {
	info := buildInfo{
		Version: version,
		Commit:  commit,
		Built:   date,
		Module:  "github.com/huangsam/ytdash",
		Go:      runtime.Version(),
		OSArch:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	bi, ok := read()
	if !ok {
		return info
	}
	if bi.Main.Path != "" {
		info.Module = bi.Main.Path
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Built == "unknown" {
				info.Built = s.Value
			}
		case "vcs.modified":
			if s.Value == "true" && !strings.HasSuffix(info.Commit, "-dirty") {
				info.Commit += "-dirty"
			}
		}
	}
	return info
}

// String renders the block printed by `ytdash version`.
func (b buildInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ytdash %s\n", b.Version)
	fmt.Fprintf(&sb, "  Module:   %s\n", b.Module)
	fmt.Fprintf(&sb, "  Commit:   %s\n", b.Commit)
	fmt.Fprintf(&sb, "  Built:    %s\n", b.Built)
	fmt.Fprintf(&sb, "  Go:       %s (%s)\n", b.Go, b.OSArch)
	return sb.String()
}

// versionCmd prints the build metadata of the binary.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ytdash build metadata.",
	Long: `Print the release version, source commit, build time, module path and
Go toolchain of this ytdash binary. Release builds set the version,
commit and date through -ldflags; local builds fall back to the VCS
stamp embedded by the Go toolchain.

Include this output when reporting a rendering or loading problem
with a channel export.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Print(currentBuild(debug.ReadBuildInfo))
	},
}
