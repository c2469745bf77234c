//go:build !unix

package daemon

import (
	stderrors "errors"
	"syscall"
)

func detachAttrs() *syscall.SysProcAttr { return nil }

func resetUmask() {}

func processAlive(int) bool { return false }

func terminate(int) error {
	return stderrors.New("signals are not supported on this platform")
}
