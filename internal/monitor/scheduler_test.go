package monitor

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/hostwatch/internal/config"
	"github.com/rileyhilliard/hostwatch/internal/errors"
	"github.com/rileyhilliard/hostwatch/internal/logger"
	"github.com/rileyhilliard/hostwatch/internal/remote"
	"github.com/rileyhilliard/hostwatch/pkg/sshutil"
	sshtesting "github.com/rileyhilliard/hostwatch/pkg/sshutil/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportSink collects report blocks and cancels once it has seen enough.
type reportSink struct {
	mu      sync.Mutex
	blocks  []string
	want    int
	cancel  context.CancelFunc
	onWrite func(n int)
}

func (s *reportSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, string(p))
	if s.onWrite != nil {
		s.onWrite(len(s.blocks))
	}
	if s.cancel != nil && len(s.blocks) >= s.want {
		s.cancel()
	}
	return len(p), nil
}

func (s *reportSink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.blocks...)
}

func newTestScheduler(exec remote.Executor, out *reportSink, log logger.Logger) *Scheduler {
	cfg := config.DefaultConfig()
	sampler := NewSampler(exec, cfg.Commands, cfg.TopN, log)
	sampler.SetClock(func() time.Time { return fixedTime })
	tracker := NewTracker(exec, cfg.Log, log)
	return NewScheduler(sampler, tracker, out, 5*time.Millisecond, log)
}

func TestScheduler_RunThreadsState(t *testing.T) {
	exec := healthyExecutor("100")
	exec.writeFile(config.DefaultLogPath, "first error\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sink := &reportSink{want: 3, cancel: cancel}
	sink.onWrite = func(n int) {
		// Runs between cycle 1 and cycle 2.
		if n == 1 {
			exec.set(config.DefaultProcessCount, "104")
			exec.appendFile(config.DefaultLogPath, "second ERROR\n")
		}
	}
	sched := newTestScheduler(exec, sink, nil)

	err := sched.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	blocks := sink.snapshot()
	require.Len(t, blocks, 3)

	assert.Contains(t, blocks[0], "Processes: 100 (+100)")
	assert.Contains(t, blocks[0], "first error")
	assert.True(t, strings.HasSuffix(blocks[0], "\n\n"))

	assert.Contains(t, blocks[1], "Processes: 104 (+4)")
	assert.Contains(t, blocks[1], "second ERROR")
	assert.NotContains(t, blocks[1], "first error")

	assert.Contains(t, blocks[2], "Processes: 104 (+0)")
	assert.NotContains(t, blocks[2], "error")
	assert.NotContains(t, blocks[2], "ERROR")

	state := sched.State()
	assert.Equal(t, 104, state.ProcCount)
	assert.Equal(t, int64(len("first error\nsecond ERROR\n")), state.LogOffset)
}

func TestScheduler_StopsDuringSleep(t *testing.T) {
	exec := healthyExecutor("1")
	ctx, cancel := context.WithCancel(context.Background())

	sink := &reportSink{}
	cfg := config.DefaultConfig()
	sched := NewScheduler(
		NewSampler(exec, cfg.Commands, cfg.TopN, nil),
		NewTracker(exec, cfg.Log, nil),
		sink, time.Hour, nil)

	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 1 }, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestScheduler_CycleTailFailureKeepsOffset(t *testing.T) {
	exec := healthyExecutor("5")
	exec.fetchErr = errors.New(errors.ErrSSH, "Connection lost", "")
	log := logger.NewBufferLogger()
	sched := newTestScheduler(exec, &reportSink{}, log)

	report, next := sched.Cycle(context.Background(), CycleState{ProcCount: 5, DiskPercent: 44, LogOffset: 99})

	assert.Equal(t, int64(99), next.LogOffset)
	assert.Equal(t, "Processes: 5 (+0)", report.Body()[0])
	assert.True(t, log.HasLevel("warn"))
}

func TestScheduler_OverSSHExecutor(t *testing.T) {
	mock := sshtesting.NewMockClient("10.0.0.5")
	mock.SetOutput(config.DefaultProcessCount, "     42\n")
	mock.SetOutput(config.DefaultTopMemory, topOutput)
	mock.SetOutput(config.DefaultDiskUsage, dfOutput)
	logContent := "Oct 16 kernel: Buffer I/O error on dev sda1\n"
	mock.WriteFile(config.DefaultLogPath, []byte(logContent))

	exec := remote.NewSSHExecutor("10.0.0.5", sshutil.Options{}, nil)
	exec.SetDialer(func(string, sshutil.Options) (sshutil.SSHClient, error) { return mock, nil })
	defer exec.Close()

	sched := newTestScheduler(exec, &reportSink{}, nil)
	report, next := sched.Cycle(context.Background(), CycleState{})

	var buf bytes.Buffer
	_, err := report.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Processes: 42 (+42)")
	assert.Contains(t, out, "Disk usage: 44% (+44)")
	assert.Contains(t, out, "Buffer I/O error on dev sda1")
	assert.Equal(t, CycleState{ProcCount: 42, DiskPercent: 44, LogOffset: int64(len(logContent))}, next)
}
