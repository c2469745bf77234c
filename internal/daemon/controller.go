package daemon

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/rileyhilliard/hostwatch/internal/logger"
)

// ChildEnv is set to "1" in the environment of the detached child.
const ChildEnv = "HOSTWATCH_DAEMON_CHILD"

// DefaultStartTimeout bounds how long Start waits for the child to claim the lock.
const DefaultStartTimeout = 10 * time.Second

var errNoProcess = stderrors.New("no such process")

// IsChild reports whether this process was started by Controller.Start.
func IsChild() bool {
	return os.Getenv(ChildEnv) == "1"
}

// Controller starts, stops and inspects the background instance.
type Controller struct {
	// LockPath is the single-instance lock file.
	LockPath string

	// OutputPath receives the child's stdout and stderr, opened for append.
	OutputPath string

	// Executable is re-executed as the child. Empty means os.Executable().
	Executable string

	// Args are passed to the child.
	Args []string

	// Env is the child's environment before ChildEnv is added.
	// Nil means os.Environ().
	Env []string

	// StartTimeout bounds the wait for the child's lock file.
	StartTimeout time.Duration

	Log logger.Logger
}

// Status describes the lock file and its owner.
type Status struct {
	Running bool
	PID     int

	// Stale is set when the lock file exists but its PID is gone.
	Stale bool
}

func (c *Controller) logger() logger.Logger {
	if c.Log == nil {
		return logger.Noop()
	}
	return c.Log
}

// Start launches the detached child and returns its PID once the child has
// written the lock file. If the lock file already exists Start returns an
// error matching ErrAlreadyRunning and touches nothing.
func (c *Controller) Start(ctx context.Context) (int, error) {
	exists, err := lockExists(c.LockPath)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, alreadyRunning(c.LockPath)
	}

	exe := c.Executable
	if exe == "" {
		exe, err = os.Executable()
		if err != nil {
			return 0, errors.WrapWithCode(err, errors.ErrDaemon,
				"Can't find the hostwatch executable",
				"Run hostwatch by its full path")
		}
	}

	out, err := os.OpenFile(c.OutputPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrDaemon,
			fmt.Sprintf("Can't open output file %s", c.OutputPath),
			"Check the directory exists and is writable")
	}
	defer out.Close()

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrDaemon,
			"Can't open "+os.DevNull,
			"")
	}
	defer devNull.Close()

	env := c.Env
	if env == nil {
		env = os.Environ()
	}

	cmd := exec.Command(exe, c.Args...)
	cmd.Env = append(append([]string(nil), env...), ChildEnv+"=1")
	cmd.Dir = "/"
	cmd.Stdin = devNull
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.SysProcAttr = detachAttrs()

	if err := cmd.Start(); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrDaemon,
			"Failed to start background process",
			"Check that "+exe+" is executable")
	}
	pid := cmd.Process.Pid
	c.logger().Debug("started child pid %d", pid)

	// Reap the child if it dies while we are still around.
	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	if err := c.waitReady(ctx, pid, exited); err != nil {
		return 0, err
	}
	return pid, nil
}

// waitReady polls until the lock file names pid.
func (c *Controller) waitReady(ctx context.Context, pid int, exited <-chan error) error {
	timeout := c.StartTimeout
	if timeout <= 0 {
		timeout = DefaultStartTimeout
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	tick := time.NewTicker(25 * time.Millisecond)
	defer tick.Stop()

	for {
		if owner, err := ReadPID(c.LockPath); err == nil && owner == pid {
			return nil
		}

		select {
		case <-ctx.Done():
			return errors.WrapWithCode(ctx.Err(), errors.ErrDaemon,
				"Gave up waiting for the background process",
				"")
		case err := <-exited:
			msg := "Background process exited before it was ready"
			if err != nil {
				msg = fmt.Sprintf("%s (%v)", msg, err)
			}
			return errors.New(errors.ErrDaemon, msg,
				"See "+c.OutputPath+" for details")
		case <-deadline.C:
			return errors.New(errors.ErrDaemon,
				fmt.Sprintf("Background process %d didn't create %s within %s", pid, c.LockPath, timeout),
				"See "+c.OutputPath+" for details")
		case <-tick.C:
		}
	}
}

// Stop sends SIGTERM to the PID in the lock file and returns that PID. It
// neither waits for the process to exit nor removes the lock file.
func (c *Controller) Stop() (int, error) {
	pid, err := ReadPID(c.LockPath)
	if err != nil {
		return 0, err
	}

	if err := terminate(pid); err != nil {
		if stderrors.Is(err, errNoProcess) {
			return 0, errors.New(errors.ErrDaemon,
				fmt.Sprintf("No process with pid %d; the lock file is stale", pid),
				"Delete "+c.LockPath+" and start again")
		}
		return 0, errors.WrapWithCode(err, errors.ErrDaemon,
			fmt.Sprintf("Failed to signal pid %d", pid),
			"Check that you own the hostwatch process")
	}

	c.logger().Debug("sent SIGTERM to pid %d", pid)
	return pid, nil
}

// Status reads the lock file without changing it.
func (c *Controller) Status() (Status, error) {
	pid, err := ReadPID(c.LockPath)
	if err != nil {
		if stderrors.Is(err, ErrNotRunning) {
			return Status{}, nil
		}
		return Status{}, err
	}

	if !processAlive(pid) {
		return Status{PID: pid, Stale: true}, nil
	}
	return Status{Running: true, PID: pid}, nil
}
