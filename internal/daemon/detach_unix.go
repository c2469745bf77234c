//go:build unix

package daemon

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// detachAttrs puts the child in a new session with no controlling terminal.
func detachAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

func resetUmask() {
	unix.Umask(0)
}

// processAlive reports whether pid exists. EPERM means it exists but belongs
// to someone else.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}

// terminate sends SIGTERM to pid.
func terminate(pid int) error {
	err := unix.Kill(pid, unix.SIGTERM)
	if err == unix.ESRCH {
		return errNoProcess
	}
	return err
}
