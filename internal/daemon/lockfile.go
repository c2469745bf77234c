package daemon

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rileyhilliard/hostwatch/internal/errors"
)

// ErrAlreadyRunning is returned by Start and Establish when the lock file exists.
var ErrAlreadyRunning = errors.New(errors.ErrLock,
	"hostwatch is already running",
	"Stop it first, or delete the lock file if no hostwatch process owns it")

// ErrNotRunning is returned by Stop when there is no lock file.
var ErrNotRunning = errors.New(errors.ErrLock,
	"hostwatch is not running",
	"Start it with: hostwatch <ipv4> <interval> start")

// lockFileMode is applied with a zero umask in the child.
const lockFileMode = 0644

// lockExists reports whether the lock file is present.
func lockExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.WrapWithCode(err, errors.ErrLock,
		fmt.Sprintf("Can't check lock file %s", path),
		"Check permissions on the lock file's directory")
}

// createLock creates path exclusively and writes pid into it.
func createLock(path string, pid int) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, lockFileMode)
	if err != nil {
		if os.IsExist(err) {
			return alreadyRunning(path)
		}
		return errors.WrapWithCode(err, errors.ErrLock,
			fmt.Sprintf("Can't create lock file %s", path),
			"Check the directory exists and is writable")
	}

	_, werr := f.WriteString(strconv.Itoa(pid))
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(path)
		return errors.WrapWithCode(werr, errors.ErrLock,
			fmt.Sprintf("Can't write PID to lock file %s", path),
			"Check free disk space")
	}
	return nil
}

// ReadPID returns the PID recorded in the lock file. A missing file yields
// ErrNotRunning.
func ReadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, notRunning(path)
		}
		return 0, errors.WrapWithCode(err, errors.ErrLock,
			fmt.Sprintf("Can't read lock file %s", path),
			"Check permissions on the lock file")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, errors.New(errors.ErrLock,
			fmt.Sprintf("Lock file %s doesn't contain a PID: %q", path, summarizePID(data)),
			"Delete the lock file if no hostwatch process is running")
	}
	return pid, nil
}

// alreadyRunning copies ErrAlreadyRunning with the path in the suggestion.
// errors.Is still matches the sentinel.
func alreadyRunning(path string) error {
	e := *ErrAlreadyRunning
	e.Suggestion = fmt.Sprintf("Stop it first, or delete %s if no hostwatch process owns it", path)
	return &e
}

func notRunning(path string) error {
	e := *ErrNotRunning
	e.Suggestion = fmt.Sprintf("No lock file at %s. Start it with: hostwatch <ipv4> <interval> start", path)
	return &e
}

func summarizePID(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > 20 {
		s = s[:20] + "..."
	}
	return s
}
