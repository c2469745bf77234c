package cli

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/config"
	"github.com/rileyhilliard/hostwatch/internal/daemon"
	"github.com/rileyhilliard/hostwatch/internal/logger"
	"github.com/rileyhilliard/hostwatch/internal/monitor"
	"github.com/rileyhilliard/hostwatch/internal/remote"
	"github.com/rileyhilliard/hostwatch/internal/ui"
	"github.com/rileyhilliard/hostwatch/pkg/sshutil"
	"github.com/spf13/cobra"
)

// dispatch runs the requested mode.
func dispatch(cmd *cobra.Command, inv invocation) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := ui.NewPrinter(out, colorFor(out))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch inv.Mode {
	case ModeStart:
		if daemon.IsChild() {
			return serveMonitor(ctx, inv.Target, cfg, os.Stdout, logger.NewEnvLogger("daemon"))
		}
		return startCommand(ctx, p, inv, cfg, cfgPath)
	case ModeStop:
		return stopCommand(p, cfg)
	case ModeStatus:
		return statusCommand(p, cfg)
	default:
		return serveMonitor(ctx, inv.Target, cfg, out, logger.NewEnvLogger("monitor"))
	}
}

func newController(cfg *config.Config) *daemon.Controller {
	return &daemon.Controller{
		LockPath:   cfg.LockFile,
		OutputPath: cfg.OutputFile,
		Log:        logger.NewEnvLogger("cli"),
	}
}

// childArgs rebuilds the command line for the detached child.
func childArgs(inv invocation, cfgPath string) []string {
	args := []string{inv.Target.Host.String(), strconv.Itoa(int(inv.Target.Interval / time.Second)), string(ModeStart)}
	if cfgPath != "" {
		args = append(args, "--config", cfgPath)
	}
	return args
}

func startCommand(ctx context.Context, p *ui.Printer, inv invocation, cfg *config.Config, cfgPath string) error {
	ctrl := newController(cfg)
	ctrl.Args = childArgs(inv, cfgPath)

	pid, err := ctrl.Start(ctx)
	if err != nil {
		return err
	}

	p.Success("Monitoring %s (pid %d)", inv.Target, pid)
	p.Detail("lock", cfg.LockFile)
	p.Detail("output", cfg.OutputFile)
	return nil
}

func stopCommand(p *ui.Printer, cfg *config.Config) error {
	pid, err := newController(cfg).Stop()
	if err != nil {
		return err
	}
	p.Success("Sent SIGTERM to hostwatch (pid %d)", pid)
	return nil
}

func statusCommand(p *ui.Printer, cfg *config.Config) error {
	st, err := newController(cfg).Status()
	if err != nil {
		return err
	}

	switch {
	case st.Running:
		p.Running("hostwatch is running (pid %d)", st.PID)
	case st.Stale:
		p.Warn("Lock file names pid %d but no such process is running", st.PID)
		p.Detail("lock", cfg.LockFile)
	default:
		p.Stopped("hostwatch is not running")
	}
	return nil
}

// serveMonitor holds the lock and runs the scheduler until a signal arrives.
func serveMonitor(ctx context.Context, target config.Target, cfg *config.Config, out io.Writer, log logger.Logger) error {
	log.Info("%s watching %s", buildTag(), target)
	exec := remote.NewSSHExecutor(target.Host.String(), sshOptions(cfg, log), log)
	defer exec.Close()

	sampler := monitor.NewSampler(exec, cfg.Commands, cfg.TopN, log)
	tracker := monitor.NewTracker(exec, cfg.Log, log)
	sched := monitor.NewScheduler(sampler, tracker, out, target.Interval, log)

	return daemon.Serve(ctx, cfg.LockFile, log, sched.Run)
}

func sshOptions(cfg *config.Config, log logger.Logger) sshutil.Options {
	return sshutil.Options{
		User:                  cfg.SSH.User,
		Port:                  cfg.SSH.Port,
		IdentityFile:          cfg.SSH.IdentityFile,
		Timeout:               cfg.SSH.Timeout,
		StrictHostKeyChecking: cfg.SSH.StrictHostKeyChecking,
		Warn: func(msg string) {
			log.Warn("%s", msg)
		},
	}
}
