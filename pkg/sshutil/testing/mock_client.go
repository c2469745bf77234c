// Package testing provides an in-memory SSH client for tests.
package testing

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/rileyhilliard/hostwatch/pkg/sshutil"
)

// CommandResponse defines a canned response for a specific command pattern.
type CommandResponse struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Error    error
}

// MockClient simulates an SSH connection for testing.
// Commands are answered from registered responses first; "cat <path>" falls
// back to a virtual file table so remote log fetches can be scripted.
type MockClient struct {
	mu       sync.Mutex
	host     string
	address  string
	closed   bool
	files    map[string][]byte
	commands map[string]CommandResponse // pattern -> response
	calls    []string
}

var _ sshutil.SSHClient = (*MockClient)(nil)

// NewMockClient creates a new mock SSH client with no files or responses.
func NewMockClient(host string) *MockClient {
	return &MockClient{
		host:     host,
		address:  host + ":22",
		files:    make(map[string][]byte),
		commands: make(map[string]CommandResponse),
	}
}

// ExecContext answers cmd from the registered responses and virtual files.
// A cancelled ctx fails before anything is recorded.
func (m *MockClient) ExecContext(ctx context.Context, cmd string) (stdout, stderr []byte, exitCode int, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, -1, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, cmd)

	if m.closed {
		return nil, nil, -1, errors.New("connection closed")
	}

	if resp, ok := m.commands[cmd]; ok {
		return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Error
	}

	for pattern, resp := range m.commands {
		if matched, _ := regexp.MatchString(pattern, cmd); matched {
			return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Error
		}
	}

	if strings.HasPrefix(cmd, "cat ") {
		path := extractPath(strings.TrimPrefix(cmd, "cat "))
		content, ok := m.files[path]
		if !ok {
			return nil, []byte("cat: " + path + ": No such file or directory"), 1, nil
		}
		out := make([]byte, len(content))
		copy(out, content)
		return out, nil, 0, nil
	}

	// Unknown command - return success by default
	return nil, nil, 0, nil
}

// Close marks the connection as closed. Later calls fail.
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// IsClosed reports whether Close has been called.
func (m *MockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// GetHost returns the host name.
func (m *MockClient) GetHost() string {
	return m.host
}

// GetAddress returns the host:port address.
func (m *MockClient) GetAddress() string {
	return m.address
}

// SetCommandResponse registers a canned response for a command pattern.
// The pattern can be an exact string or a regex pattern.
func (m *MockClient) SetCommandResponse(pattern string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[pattern] = resp
}

// SetOutput is shorthand for a successful command with the given stdout.
func (m *MockClient) SetOutput(cmd, stdout string) {
	m.SetCommandResponse("^"+regexp.QuoteMeta(cmd)+"$", CommandResponse{Stdout: []byte(stdout)})
}

// WriteFile replaces the content of a virtual remote file.
func (m *MockClient) WriteFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), content...)
}

// AppendFile appends to a virtual remote file, creating it if needed.
func (m *MockClient) AppendFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append(m.files[path], content...)
}

// RemoveFile deletes a virtual remote file.
func (m *MockClient) RemoveFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}

// Calls returns every command received so far, in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// extractPath strips surrounding quotes and redirects from a path argument.
func extractPath(arg string) string {
	arg = strings.TrimSpace(arg)
	arg = strings.TrimSuffix(arg, " 2>/dev/null")
	arg = strings.TrimSpace(arg)
	if len(arg) >= 2 && (arg[0] == '"' || arg[0] == '\'') && arg[len(arg)-1] == arg[0] {
		return arg[1 : len(arg)-1]
	}
	return arg
}
