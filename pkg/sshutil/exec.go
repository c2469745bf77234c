package sshutil

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rileyhilliard/hostwatch/internal/errors"
	"golang.org/x/crypto/ssh"
)

// ExecContext runs a command on the remote host and returns the output.
// Exit code is -1 if the command couldn't be executed at all.
// On cancellation the session is closed so the remote side sees EOF and the
// call returns promptly with ctx.Err() as the cause.
func (c *Client) ExecContext(ctx context.Context, cmd string) (stdout, stderr []byte, exitCode int, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, -1, err
	}

	session, err := c.Client.NewSession()
	if err != nil {
		return nil, nil, -1, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmd)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		_ = session.Close()
		<-done
		return nil, nil, -1, errors.WrapWithCode(ctx.Err(), errors.ErrExec,
			fmt.Sprintf("Command cancelled: %s", cmd),
			"")
	case runErr = <-done:
	}

	if runErr != nil {
		var exitErr *ssh.ExitError
		if stderrors.As(runErr, &exitErr) {
			return stdoutBuf.Bytes(), stderrBuf.Bytes(), exitErr.ExitStatus(), nil
		}
		return nil, nil, -1, errors.WrapWithCode(runErr, errors.ErrExec,
			fmt.Sprintf("Failed to execute command: %s", cmd),
			"Check if the command exists on the remote host.")
	}

	return stdoutBuf.Bytes(), stderrBuf.Bytes(), 0, nil
}
