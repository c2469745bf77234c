package cli

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/hostwatch/internal/config"
	"github.com/rileyhilliard/hostwatch/internal/errors"
)

// Mode is the action requested on the command line.
type Mode string

const (
	ModeStart  Mode = "start"
	ModeStop   Mode = "stop"
	ModeStatus Mode = "status"
	ModeRun    Mode = "run"
)

var modes = []Mode{ModeStart, ModeStop, ModeStatus, ModeRun}

// ParseMode accepts one of the mode keywords, case-sensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if string(m) == s {
			return m, nil
		}
	}

	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return "", errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown mode %q", s),
		"Use one of: "+strings.Join(names, ", "))
}

// invocation is a validated command line.
type invocation struct {
	Target config.Target
	Mode   Mode
}

// parseInvocation validates <ipv4> <interval> <mode>. Nothing else happens
// until it succeeds.
func parseInvocation(args []string) (invocation, error) {
	if len(args) != 3 {
		return invocation{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Expected 3 arguments, got %d", len(args)),
			"Usage: hostwatch <ipv4> <interval> <start|stop|status|run>")
	}

	target, err := config.ParseTarget(args[0], args[1])
	if err != nil {
		return invocation{}, err
	}

	mode, err := ParseMode(args[2])
	if err != nil {
		return invocation{}, err
	}

	return invocation{Target: target, Mode: mode}, nil
}
