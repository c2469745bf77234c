package daemon

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/rileyhilliard/hostwatch/internal/logger"
)

var terminationSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP}

// DefaultGracePeriod is how long WatchSignals waits for a clean exit after a
// termination signal before exiting the process itself.
const DefaultGracePeriod = 10 * time.Second

// Handle owns the lock file of the running instance.
type Handle struct {
	Path string
	PID  int

	log   logger.Logger
	grace time.Duration
	exit  func(int)
	sigs  chan os.Signal

	once       sync.Once
	releaseErr error
}

// Establish claims the lock file for this process. The umask is cleared first
// so the file gets exactly lockFileMode. If the file already exists nothing is
// changed and the returned error matches ErrAlreadyRunning.
//
// Termination signals are captured before the PID becomes visible in the lock
// file. A signal that arrives before WatchSignals is queued and handled once
// watching starts.
func Establish(lockPath string, log logger.Logger) (*Handle, error) {
	if log == nil {
		log = logger.Noop()
	}

	resetUmask()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, terminationSignals...)

	pid := os.Getpid()
	if err := createLock(lockPath, pid); err != nil {
		signal.Stop(sigs)
		return nil, err
	}
	log.Info("lock %s acquired by pid %d", lockPath, pid)

	return &Handle{
		Path:  lockPath,
		PID:   pid,
		log:   log,
		grace: DefaultGracePeriod,
		exit:  os.Exit,
		sigs:  sigs,
	}, nil
}

// Release removes the lock file and stops capturing signals. Only the first
// call does anything; later calls return the first call's result.
func (h *Handle) Release() error {
	h.once.Do(func() {
		signal.Stop(h.sigs)
		err := os.Remove(h.Path)
		if err != nil && !os.IsNotExist(err) {
			h.releaseErr = errors.WrapWithCode(err, errors.ErrLock,
				"Failed to remove lock file "+h.Path,
				"Delete it by hand before starting hostwatch again")
			h.log.Error("releasing lock: %v", err)
			return
		}
		h.log.Info("lock %s released", h.Path)
	})
	return h.releaseErr
}

// WatchSignals releases the lock and calls cancel when SIGTERM, SIGINT or
// SIGHUP arrives. If the process is still alive a grace period later it exits
// with status 0. The returned function stops watching.
func (h *Handle) WatchSignals(cancel context.CancelFunc) (stop func()) {
	sigs := h.sigs
	done := make(chan struct{})
	var stopOnce sync.Once

	go func() {
		select {
		case <-done:
			return
		case sig := <-sigs:
			h.log.Info("received %s, shutting down", sig)
			_ = h.Release()
			cancel()
		}

		timer := time.NewTimer(h.grace)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			h.log.Warn("still running %s after signal, exiting", h.grace)
			h.exit(0)
		}
	}()

	return func() {
		stopOnce.Do(func() {
			signal.Stop(sigs)
			close(done)
		})
	}
}

// Serve runs fn as the lock-holding instance. It claims the lock, watches for
// termination signals, and removes the lock when fn returns for any reason.
// Cancellation by signal is a clean exit and returns nil.
func Serve(ctx context.Context, lockPath string, log logger.Logger, fn func(context.Context) error) error {
	h, err := Establish(lockPath, log)
	if err != nil {
		return err
	}
	return h.serve(ctx, fn)
}

func (h *Handle) serve(ctx context.Context, fn func(context.Context) error) error {
	defer h.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := h.WatchSignals(cancel)
	defer stop()

	err := fn(ctx)
	if ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
		err = nil
	}
	if rerr := h.Release(); err == nil {
		err = rerr
	}
	return err
}
