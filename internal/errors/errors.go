package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig = "CONFIG"
	ErrSSH    = "SSH"
	ErrExec   = "EXEC"
	ErrLock   = "LOCK"
	ErrParse  = "PARSE"
	ErrDaemon = "DAEMON"
)

// Exit codes returned by the hostwatch binary.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrSSH code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrSSH,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a structured Error carrying the same code and
// message. This lets package-level sentinels built with New match copies that
// were wrapped further up the stack.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e == t || (e.Code == t.Code && e.Message == t.Message)
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var hwErr *Error
	if errors.As(err, &hwErr) {
		return hwErr.Code == code
	}
	return false
}

// ExitCode maps an error to the process exit status used by the CLI.
// Validation problems exit with ExitUsage, everything else with ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsCode(err, ErrConfig) {
		return ExitUsage
	}
	return ExitFailure
}
