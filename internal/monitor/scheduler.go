package monitor

import (
	"context"
	"io"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/logger"
)

// Scheduler runs cycles one after another, sleeping Interval between the end
// of one cycle and the start of the next.
type Scheduler struct {
	sampler  *Sampler
	tracker  *Tracker
	out      io.Writer
	interval time.Duration
	log      logger.Logger

	state CycleState
}

// NewScheduler wires a sampler and tracker to the report stream out.
func NewScheduler(sampler *Sampler, tracker *Tracker, out io.Writer, interval time.Duration, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Noop()
	}
	return &Scheduler{
		sampler:  sampler,
		tracker:  tracker,
		out:      out,
		interval: interval,
		log:      log,
	}
}

// State returns the baseline the next cycle will diff against. It is owned
// by the goroutine in Run; read it only before Run starts or after it returns.
func (s *Scheduler) State() CycleState {
	return s.state
}

// Run loops until ctx is cancelled and then returns ctx.Err(). Failures
// inside a cycle are reported and never stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("monitoring started, interval %s", s.interval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("monitoring stopped")
			return ctx.Err()
		case <-timer.C:
		}

		report, next := s.Cycle(ctx, s.state)
		if ctx.Err() != nil {
			// Half-finished cycle; the baseline is not advanced.
			continue
		}

		s.state = next

		if _, err := report.WriteTo(s.out); err != nil {
			s.log.Error("writing report: %v", err)
		}

		timer.Reset(s.interval)
	}
}

// Cycle samples the diagnostics, tails the log, and returns the report and
// the next baseline. It does not write the report.
func (s *Scheduler) Cycle(ctx context.Context, prev CycleState) (*Report, CycleState) {
	report, next := s.sampler.Sample(ctx, prev)

	lines, offset, err := s.tracker.Tail(ctx, prev.LogOffset)
	if err != nil {
		s.log.Warn("log tail: %s", reason(err))
	}
	report.Add(lines...)
	next.LogOffset = offset

	return report, next
}
