package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/hostwatch/internal/config"
	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/rileyhilliard/hostwatch/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var cfgFile string

// rootCmd monitors one host. Subcommands handle everything else.
var rootCmd = &cobra.Command{
	Use:   "hostwatch <ipv4> <interval> <start|stop|status|run>",
	Short: "Poll a remote host over SSH and log what changed",
	Long: `hostwatch connects to one host over SSH every <interval> seconds and appends
a report to the output file: process count, top memory consumers, disk usage,
and new lines from the remote log that mention "error".

Only one instance runs at a time. The lock file records its PID.

Examples:
  hostwatch 192.168.1.10 5 start
  hostwatch 192.168.1.10 5 status
  hostwatch 192.168.1.10 5 stop
  hostwatch 192.168.1.10 30 run`,
	Args: func(cmd *cobra.Command, args []string) error {
		_, err := parseInvocation(args)
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := parseInvocation(args)
		if err != nil {
			return err
		}
		return dispatch(cmd, inv)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/hostwatch/config.yaml)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.WrapWithCode(err, errors.ErrConfig, "Invalid flag", "See hostwatch --help")
	})
}

// Execute runs the root command and exits with the mapped status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(handleError(err, os.Stderr))
	}
}

// handleError prints err and returns the exit status. Usage errors also get
// the usage text.
func handleError(err error, w io.Writer) int {
	ui.NewPrinter(w, colorFor(w)).Error(err)

	code := errors.ExitCode(err)
	if code == errors.ExitUsage {
		fmt.Fprintf(w, "\n%s", rootCmd.UsageString())
	}
	return code
}

// loadConfig loads the config selected by --config, making the path absolute
// so a detached child running in / finds the same file.
func loadConfig() (*config.Config, string, error) {
	path, err := config.Find(cfgFile)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// colorFor enables color only for terminals.
func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.ShouldColor(f)
}
