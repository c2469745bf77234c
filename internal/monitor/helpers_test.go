package monitor

import (
	"context"
	"sync"

	"github.com/rileyhilliard/hostwatch/internal/config"
	"github.com/rileyhilliard/hostwatch/internal/errors"
)

// fakeExecutor answers Run from a command table and Fetch from a file table.
type fakeExecutor struct {
	mu       sync.Mutex
	outputs  map[string]string
	runErrs  map[string]error
	files    map[string][]byte
	fetchErr error
	calls    []string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		outputs: make(map[string]string),
		runErrs: make(map[string]error),
		files:   make(map[string][]byte),
	}
}

func (f *fakeExecutor) Run(ctx context.Context, cmd string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.runErrs[cmd]; ok {
		return "", err
	}
	out, ok := f.outputs[cmd]
	if !ok {
		return "", errors.New(errors.ErrExec, "Remote command exited with status 127: "+cmd, "")
	}
	return out, nil
}

func (f *fakeExecutor) Fetch(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "fetch "+path)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	content, ok := f.files[path]
	if !ok {
		return nil, errors.New(errors.ErrExec, "Remote command exited with status 1: cat "+path, "No such file or directory")
	}
	return append([]byte(nil), content...), nil
}

func (f *fakeExecutor) set(cmd, out string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.runErrs, cmd)
	f.outputs[cmd] = out
}

func (f *fakeExecutor) fail(cmd string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runErrs[cmd] = err
}

func (f *fakeExecutor) writeFile(path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = []byte(content)
}

func (f *fakeExecutor) appendFile(path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = append(f.files[path], content...)
}

const (
	dfOutput = `Filesystem     1024-blocks     Used Available Capacity Mounted on
/dev/sda1         51474912 21080408  27756680      44% /
`
	topOutput = `   1234 postgres 12.5 204800 postgres
    987 root      4.1  65536 dockerd
    555 www-data  2.0  32768 nginx
    321 root      1.1  16384 containerd
    100 syslog    0.5   8192 rsyslogd
`
)

// healthyExecutor answers the default commands with plausible output.
func healthyExecutor(procs string) *fakeExecutor {
	f := newFakeExecutor()
	f.set(config.DefaultProcessCount, procs)
	f.set(config.DefaultTopMemory, topOutput)
	f.set(config.DefaultDiskUsage, dfOutput)
	f.writeFile(config.DefaultLogPath, "")
	return f
}

func defaultCommands() config.CommandsConfig {
	return config.DefaultConfig().Commands
}
