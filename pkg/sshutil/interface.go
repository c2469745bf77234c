package sshutil

import "context"

// SSHClient defines the interface for SSH command execution.
// Both the real Client and mock implementations satisfy this interface.
type SSHClient interface {
	// ExecContext runs a command and returns stdout, stderr, and exit code.
	// Exit code is -1 if the command couldn't be executed at all.
	// A non-zero exit code with nil error means the command ran but failed.
	// Cancelling ctx aborts the command.
	ExecContext(ctx context.Context, cmd string) (stdout, stderr []byte, exitCode int, err error)

	// Close closes the SSH connection.
	Close() error

	// GetHost returns the original host used to connect.
	GetHost() string

	// GetAddress returns the resolved host:port address.
	GetAddress() string
}

// Dialer opens a new SSHClient. DialClient is the production implementation;
// tests substitute a function returning a mock.
type Dialer func(host string, opts Options) (SSHClient, error)

// DialClient adapts Dial to the Dialer signature.
func DialClient(host string, opts Options) (SSHClient, error) {
	c, err := Dial(host, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}
