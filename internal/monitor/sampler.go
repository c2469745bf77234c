package monitor

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/config"
	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/rileyhilliard/hostwatch/internal/logger"
	"github.com/rileyhilliard/hostwatch/internal/remote"
)

// Sampler runs the diagnostic commands for one cycle.
type Sampler struct {
	exec remote.Executor
	cmds config.CommandsConfig
	topN int
	log  logger.Logger
	now  func() time.Time
}

// NewSampler creates a sampler that runs cmds through exec.
func NewSampler(exec remote.Executor, cmds config.CommandsConfig, topN int, log logger.Logger) *Sampler {
	if log == nil {
		log = logger.Noop()
	}
	if topN < 1 {
		topN = config.DefaultTopN
	}
	return &Sampler{
		exec: exec,
		cmds: cmds,
		topN: topN,
		log:  log,
		now:  time.Now,
	}
}

// SetClock replaces the time source used to stamp reports.
func (s *Sampler) SetClock(now func() time.Time) {
	s.now = now
}

// Sample runs process count, top memory and disk usage in that order and
// returns the report together with the next baseline. A metric that fails
// keeps its value from prev. LogOffset is passed through untouched.
func (s *Sampler) Sample(ctx context.Context, prev CycleState) (*Report, CycleState) {
	report := NewReport(s.now())
	next := prev

	if count, err := s.processCount(ctx); err != nil {
		s.log.Warn("process count: %s", reason(err))
		report.Add(fmt.Sprintf("Processes: unavailable (%s)", reason(err)))
	} else {
		report.Add(processLine(count, prev.ProcCount))
		next.ProcCount = count
	}

	if out, err := s.exec.Run(ctx, s.cmds.TopMemory); err != nil {
		s.log.Warn("top memory: %s", reason(err))
	} else {
		report.Add(TopLines(out, s.topN)...)
	}

	if percent, err := s.diskPercent(ctx); err != nil {
		s.log.Warn("disk usage: %s", reason(err))
	} else {
		report.Add(diskLine(percent, prev.DiskPercent))
		next.DiskPercent = percent
	}

	return report, next
}

func (s *Sampler) processCount(ctx context.Context) (int, error) {
	out, err := s.exec.Run(ctx, s.cmds.ProcessCount)
	if err != nil {
		return 0, err
	}
	return ParseProcessCount(out)
}

func (s *Sampler) diskPercent(ctx context.Context) (int, error) {
	out, err := s.exec.Run(ctx, s.cmds.DiskUsage)
	if err != nil {
		return 0, err
	}
	return ParseDiskPercent(out)
}

// reason reduces an error to one line for the report and the log.
func reason(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}
