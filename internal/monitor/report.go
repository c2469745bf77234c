package monitor

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TimestampFormat is the layout of a report's first line.
const TimestampFormat = time.ANSIC

// Separator is the line written under the timestamp.
var Separator = strings.Repeat("-", 40)

// Report is the text written for one cycle.
type Report struct {
	Time  time.Time
	lines []string
}

// NewReport starts a report stamped with t.
func NewReport(t time.Time) *Report {
	return &Report{Time: t}
}

// Add appends body lines. Line terminators are not expected.
func (r *Report) Add(lines ...string) {
	r.lines = append(r.lines, lines...)
}

// Body returns the lines between the separator and the trailing blank line.
func (r *Report) Body() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// String renders the full block, including the trailing blank line.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString(r.Time.Format(TimestampFormat))
	b.WriteByte('\n')
	b.WriteString(Separator)
	b.WriteByte('\n')
	for _, line := range r.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// WriteTo writes the report in a single Write call so concurrent appenders
// to the same file do not interleave inside a block.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// FormatDelta renders a signed delta: +3, -2, +0.
func FormatDelta(current, previous int) string {
	return fmt.Sprintf("%+d", current-previous)
}

func processLine(count, previous int) string {
	return fmt.Sprintf("Processes: %d (%s)", count, FormatDelta(count, previous))
}

func diskLine(percent, previous int) string {
	return fmt.Sprintf("Disk usage: %d%% (%s)", percent, FormatDelta(percent, previous))
}
