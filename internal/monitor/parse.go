package monitor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rileyhilliard/hostwatch/internal/errors"
)

var (
	firstIntegerRe = regexp.MustCompile(`\d+`)
	percentRe      = regexp.MustCompile(`(\d+)%`)
)

// ParseProcessCount returns the first integer in the output of the process
// count command.
func ParseProcessCount(out string) (int, error) {
	match := firstIntegerRe.FindString(out)
	if match == "" {
		return 0, errors.New(errors.ErrParse,
			fmt.Sprintf("No process count in output: %q", summarize(out)),
			"The process count command should print a number, e.g. `ps -e --no-headers | wc -l`")
	}
	return atoi(match)
}

// ParseDiskPercent returns the first percentage in df-style output.
// The header's "Capacity" or "Use%" column name has no digits, so the first
// match is the usage of the first listed filesystem. Values above 100 are
// rejected.
func ParseDiskPercent(out string) (int, error) {
	m := percentRe.FindStringSubmatch(out)
	if m == nil {
		return 0, errors.New(errors.ErrParse,
			fmt.Sprintf("No disk usage percentage in output: %q", summarize(out)),
			"The disk usage command should print a percentage, e.g. `df -P /`")
	}
	pct, err := atoi(m[1])
	if err != nil {
		return 0, err
	}
	if pct > 100 {
		return 0, errors.New(errors.ErrParse,
			fmt.Sprintf("Disk usage out of range: %d%%", pct),
			"The first percentage in the disk usage output should be the Use% column")
	}
	return pct, nil
}

// TopLines returns at most n non-empty lines of out, each trimmed of
// surrounding whitespace. No other parsing is done.
func TopLines(out string, n int) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if len(lines) == n {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrParse,
			fmt.Sprintf("Number out of range: %s", s),
			"")
	}
	return n, nil
}

// summarize shortens command output for error messages.
func summarize(out string) string {
	out = strings.TrimSpace(out)
	const max = 60
	if len(out) > max {
		return out[:max] + "..."
	}
	return out
}
