package monitor

import (
	"bytes"
	"context"

	"github.com/rileyhilliard/hostwatch/internal/config"
	"github.com/rileyhilliard/hostwatch/internal/logger"
	"github.com/rileyhilliard/hostwatch/internal/remote"
)

// ScanFrom returns the lines of content at or after offset that contain
// marker, compared case-insensitively. Lines are returned in file order with
// their trailing "\n" or "\r\n" removed. A final line without a terminator
// is included.
//
// The returned offset is len(content). If offset is past the end of content
// (the file shrank), no lines are returned and offset comes back unchanged.
func ScanFrom(content []byte, offset int64, marker string) ([]string, int64) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(content)) {
		return nil, offset
	}

	needle := bytes.ToLower([]byte(marker))
	rest := content[offset:]

	var lines []string
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = nil
		}
		line = bytes.TrimSuffix(line, []byte("\r"))

		if bytes.Contains(bytes.ToLower(line), needle) {
			lines = append(lines, string(line))
		}
	}

	return lines, int64(len(content))
}

// Tracker tails one remote log file by byte offset.
// It holds no offset itself; callers thread it through CycleState.
type Tracker struct {
	exec            remote.Executor
	path            string
	marker          string
	resetOnTruncate bool
	log             logger.Logger
}

// NewTracker creates a tracker for the log described by cfg.
func NewTracker(exec remote.Executor, cfg config.LogConfig, log logger.Logger) *Tracker {
	if log == nil {
		log = logger.Noop()
	}
	marker := cfg.Marker
	if marker == "" {
		marker = config.DefaultMarker
	}
	return &Tracker{
		exec:            exec,
		path:            cfg.Path,
		marker:          marker,
		resetOnTruncate: cfg.ResetOnTruncate,
		log:             log,
	}
}

// Tail fetches the whole log and returns the matching lines past offset.
// On fetch failure it returns the error with no lines and offset unchanged.
func (t *Tracker) Tail(ctx context.Context, offset int64) ([]string, int64, error) {
	content, err := t.exec.Fetch(ctx, t.path)
	if err != nil {
		return nil, offset, err
	}

	if offset > int64(len(content)) {
		if !t.resetOnTruncate {
			t.log.Debug("%s is %d bytes, behind offset %d; waiting for it to grow", t.path, len(content), offset)
			return nil, offset, nil
		}
		t.log.Info("%s shrank from %d to %d bytes, rescanning from the start", t.path, offset, len(content))
		offset = 0
	}

	lines, next := ScanFrom(content, offset, t.marker)
	return lines, next, nil
}
