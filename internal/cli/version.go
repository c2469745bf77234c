package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata. cmd/hostwatch fills these from -ldflags through SetVersionInfo.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Long: `Print the hostwatch version, commit, build date, Go toolchain, and platform.
With --short only the raw version string is printed, for use in scripts.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout(), versionShort)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version string")
}

func writeVersion(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, version)
		return
	}
	fmt.Fprintf(w, "hostwatch %s\n", formatVersion(version))
	fmt.Fprintf(w, "commit: %s\n", commit)
	fmt.Fprintf(w, "built: %s\n", date)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// buildTag is the one-line identity written to the daemon log at startup,
// e.g. "hostwatch v1.2.3 (abc1234)".
func buildTag() string {
	return fmt.Sprintf("hostwatch %s (%s)", formatVersion(version), commit)
}

// formatVersion adds a "v" prefix to release versions. "dev" and "" are left alone.
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo records the build metadata injected into main.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
