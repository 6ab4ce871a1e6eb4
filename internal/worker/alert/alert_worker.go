package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/archive-alert/internal/config"
	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/worker"
	"go.uber.org/zap"
)

// CycleRunner выполняет один цикл оповещения
type CycleRunner interface {
	RunCycle(ctx context.Context) (*domain.CycleResult, error)
}

// AlertWorker запускает цикл оповещения по расписанию
type AlertWorker struct {
	*worker.BaseWorker
	runner       CycleRunner
	interval     time.Duration
	pollInterval time.Duration
	runOnStart   bool
	now          func() time.Time
}

// NewAlertWorker создает новый AlertWorker
func NewAlertWorker(runner CycleRunner, cfg *config.SchedulerConfig, logger *zap.Logger) *AlertWorker {
	return &AlertWorker{
		BaseWorker:   worker.NewBaseWorker("archive-alert", logger),
		runner:       runner,
		interval:     cfg.Interval,
		pollInterval: cfg.PollInterval,
		runOnStart:   cfg.RunOnStart,
		now:          time.Now,
	}
}

// Start blocks until the worker is stopped, ctx is cancelled or a cycle fails.
// Cycles run one at a time on this goroutine.
func (w *AlertWorker) Start(ctx context.Context) error {
	logger := w.Logger()

	nextRun := w.now().Add(w.interval)
	if w.runOnStart {
		nextRun = w.now()
	}

	logger.Info("Starting AlertWorker",
		zap.Duration("interval", w.interval),
		zap.Duration("poll_interval", w.pollInterval),
		zap.Time("next_run", nextRun))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		if !w.now().Before(nextRun) {
			if _, err := w.runner.RunCycle(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error("Alert cycle failed", zap.Error(err))
				return fmt.Errorf("alert cycle: %w", err)
			}

			nextRun = w.now().Add(w.interval)
			logger.Debug("Next alert cycle scheduled", zap.Time("next_run", nextRun))
		}

		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
		}
	}
}
