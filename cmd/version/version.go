package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// These variables are set during build time via ldflags
var (
	BuildVersion = "latest"
	BuildDate    = "unknown"
	GitCommitID  = "unknown"
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version information
func Get() Info {
	return Info{
		Version:   BuildVersion,
		BuildDate: BuildDate,
		GitCommit: GitCommitID,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a formatted version string
func String() string {
	info := Get()
	return fmt.Sprintf("unreal-mcp-server %s (built on %s, commit %s, %s %s)",
		info.Version, info.BuildDate, info.GitCommit, info.GoVersion, info.Platform)
}

// Command returns the version subcommand
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), String())
		},
	}
}
