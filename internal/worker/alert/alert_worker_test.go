package alert

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archive-alert/internal/config"
	"github.com/archive-alert/internal/domain"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) RunCycle(ctx context.Context) (*domain.CycleResult, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.CycleResult{}, nil
}

func startWorker(t *testing.T, w *AlertWorker) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()
	return cancel, errCh
}

func TestAlertWorker_RunOnStart(t *testing.T) {
	runner := &countingRunner{}
	w := NewAlertWorker(runner, &config.SchedulerConfig{
		Interval:     time.Hour,
		PollInterval: 5 * time.Millisecond,
		RunOnStart:   true,
	}, zap.NewNop())

	cancel, errCh := startWorker(t, w)
	defer cancel()

	assert.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Stop())
	assert.NoError(t, <-errCh)
	assert.EqualValues(t, 1, runner.calls.Load(), "next run is an interval away")
}

func TestAlertWorker_FirstRunAfterInterval(t *testing.T) {
	runner := &countingRunner{}
	w := NewAlertWorker(runner, &config.SchedulerConfig{
		Interval:     time.Hour,
		PollInterval: 5 * time.Millisecond,
	}, zap.NewNop())

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var offset atomic.Int64
	w.now = func() time.Time { return base.Add(time.Duration(offset.Load())) }

	cancel, errCh := startWorker(t, w)

	time.Sleep(30 * time.Millisecond)
	assert.EqualValues(t, 0, runner.calls.Load())

	offset.Store(int64(time.Hour))
	assert.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	offset.Store(int64(2 * time.Hour))
	assert.Eventually(t, func() bool { return runner.calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}

func TestAlertWorker_CycleErrorIsFatal(t *testing.T) {
	runner := &countingRunner{err: errors.New("authentication failed")}
	w := NewAlertWorker(runner, &config.SchedulerConfig{
		Interval:     time.Hour,
		PollInterval: 5 * time.Millisecond,
		RunOnStart:   true,
	}, zap.NewNop())

	cancel, errCh := startWorker(t, w)
	defer cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failed")
	case <-time.After(time.Second):
		t.Fatal("worker did not return")
	}
	assert.EqualValues(t, 1, runner.calls.Load())
}
