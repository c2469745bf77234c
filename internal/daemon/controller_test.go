package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_StartWhileLocked(t *testing.T) {
	dir := t.TempDir()
	lock := filepath.Join(dir, "hostwatch.pid")
	out := filepath.Join(dir, "hostwatch.log")
	require.NoError(t, os.WriteFile(lock, []byte("31337"), 0644))

	c := &Controller{LockPath: lock, OutputPath: out, Executable: "/nonexistent/hostwatch"}
	pid, err := c.Start(context.Background())

	assert.Zero(t, pid)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	data, _ := os.ReadFile(lock)
	assert.Equal(t, "31337", string(data))
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "nothing is created when already running")
}

func TestController_StartBadExecutable(t *testing.T) {
	dir := t.TempDir()
	c := &Controller{
		LockPath:   filepath.Join(dir, "hostwatch.pid"),
		OutputPath: filepath.Join(dir, "hostwatch.log"),
		Executable: filepath.Join(dir, "missing"),
	}

	_, err := c.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDaemon))
}

func TestController_StopNotRunning(t *testing.T) {
	c := &Controller{LockPath: filepath.Join(t.TempDir(), "hostwatch.pid")}

	pid, err := c.Stop()
	assert.Zero(t, pid)
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.Equal(t, errors.ExitFailure, errors.ExitCode(err))
}

func TestController_StopCorruptLock(t *testing.T) {
	lock := filepath.Join(t.TempDir(), "hostwatch.pid")
	require.NoError(t, os.WriteFile(lock, []byte("garbage"), 0644))

	c := &Controller{LockPath: lock}
	_, err := c.Stop()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrLock))

	_, statErr := os.Stat(lock)
	assert.NoError(t, statErr, "stop never removes the lock file")
}

func TestController_StatusNotRunning(t *testing.T) {
	c := &Controller{LockPath: filepath.Join(t.TempDir(), "hostwatch.pid")}

	st, err := c.Status()
	require.NoError(t, err)
	assert.Equal(t, Status{}, st)
}

func TestController_StatusSelf(t *testing.T) {
	lock := filepath.Join(t.TempDir(), "hostwatch.pid")
	h, err := Establish(lock, nil)
	require.NoError(t, err)
	defer h.Release()

	c := &Controller{LockPath: lock}
	st, err := c.Status()
	require.NoError(t, err)
	assert.Equal(t, Status{Running: true, PID: os.Getpid()}, st)
}

func TestIsChild(t *testing.T) {
	t.Setenv(ChildEnv, "")
	assert.False(t, IsChild())

	t.Setenv(ChildEnv, "1")
	assert.True(t, IsChild())
}
