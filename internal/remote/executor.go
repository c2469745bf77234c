// Package remote is the boundary between hostwatch and the monitored machine.
// It exposes two operations: run a command and return its stdout, and fetch
// the full current contents of a file.
package remote

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/rileyhilliard/hostwatch/internal/logger"
	"github.com/rileyhilliard/hostwatch/pkg/sshutil"
)

// Executor runs commands and fetches files on the target host.
type Executor interface {
	// Run executes cmd and returns its stdout. A non-zero exit status is an error.
	Run(ctx context.Context, cmd string) (string, error)

	// Fetch returns the full current contents of the file at path.
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// SSHExecutor implements Executor over a single lazily-dialed SSH connection.
// A connection that fails at the transport level is dropped and redialed on
// the next call, so one bad cycle doesn't poison the ones after it.
type SSHExecutor struct {
	host string
	opts sshutil.Options
	dial sshutil.Dialer
	log  logger.Logger

	mu     sync.Mutex
	client sshutil.SSHClient
}

var _ Executor = (*SSHExecutor)(nil)

// NewSSHExecutor creates an executor for host. Nothing is dialed until the
// first Run or Fetch.
func NewSSHExecutor(host string, opts sshutil.Options, log logger.Logger) *SSHExecutor {
	if log == nil {
		log = logger.Noop()
	}
	return &SSHExecutor{
		host: host,
		opts: opts,
		dial: sshutil.DialClient,
		log:  log,
	}
}

// SetDialer replaces the function used to open connections.
func (e *SSHExecutor) SetDialer(d sshutil.Dialer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dial = d
}

// Run executes cmd on the target and returns stdout.
func (e *SSHExecutor) Run(ctx context.Context, cmd string) (string, error) {
	out, err := e.exec(ctx, cmd)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Fetch reads a remote file with cat. The bytes are returned unmodified so
// callers can do offset arithmetic on them.
func (e *SSHExecutor) Fetch(ctx context.Context, path string) ([]byte, error) {
	return e.exec(ctx, "cat "+QuotePath(path))
}

func (e *SSHExecutor) exec(ctx context.Context, cmd string) ([]byte, error) {
	client, err := e.get()
	if err != nil {
		return nil, err
	}

	stdout, stderr, exitCode, err := client.ExecContext(ctx, cmd)
	if err != nil {
		// Cancellation is ours, not the connection's fault.
		if ctx.Err() == nil {
			e.log.Warn("dropping connection to %s after transport error: %v", e.host, err)
			e.drop(client)
		}
		return nil, err
	}

	if exitCode != 0 {
		return nil, errors.New(errors.ErrExec,
			fmt.Sprintf("Remote command exited with status %d: %s", exitCode, cmd),
			strings.TrimSpace(string(stderr)))
	}

	return stdout, nil
}

// get returns the cached connection, dialing a new one if needed.
func (e *SSHExecutor) get() (sshutil.SSHClient, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return e.client, nil
	}

	e.log.Debug("dialing %s", e.host)
	client, err := e.dial(e.host, e.opts)
	if err != nil {
		return nil, err
	}
	e.log.Info("connected to %s at %s", client.GetHost(), client.GetAddress())
	e.client = client
	return client, nil
}

// drop closes client and forgets it if it is still the cached connection.
func (e *SSHExecutor) drop(client sshutil.SSHClient) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == client {
		_ = e.client.Close()
		e.client = nil
	}
}

// Close closes the cached connection, if any, and the shared SSH agent
// connection.
func (e *SSHExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sshutil.CloseAgent()
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}
