package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/domain/repository"
	apperrors "github.com/archive-alert/internal/pkg/errors"
	"github.com/archive-alert/internal/usecase/dto"
	"go.uber.org/zap"
)

// CycleSource отдаёт результат последнего цикла
type CycleSource interface {
	LastCycle() (*domain.CycleResult, error)
}

// StatusUseCase обслуживает read-only API состояния; хранилище не изменяет
type StatusUseCase struct {
	counters     repository.CounterRepository
	cycles       CycleSource
	storeBackend string
	aoiFile      string
	interval     time.Duration
	started      time.Time
	logger       *zap.Logger
}

// NewStatusUseCase создает новый экземпляр StatusUseCase
func NewStatusUseCase(
	counters repository.CounterRepository,
	cycles CycleSource,
	storeBackend string,
	aoiFile string,
	interval time.Duration,
	logger *zap.Logger,
) *StatusUseCase {
	return &StatusUseCase{
		counters:     counters,
		cycles:       cycles,
		storeBackend: storeBackend,
		aoiFile:      aoiFile,
		interval:     interval,
		started:      time.Now(),
		logger:       logger,
	}
}

func (uc *StatusUseCase) GetHealth(ctx context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:       "ok",
		StoreBackend: uc.storeBackend,
		Uptime:       time.Since(uc.started).Truncate(time.Second).String(),
	}
}

// GetStatus returns scheduler settings and the last finished cycle, if any.
func (uc *StatusUseCase) GetStatus(ctx context.Context) (*dto.StatusResponse, error) {
	resp := &dto.StatusResponse{
		AOIFile:         uc.aoiFile,
		IntervalMinutes: uc.interval.Minutes(),
	}

	last, err := uc.cycles.LastCycle()
	switch {
	case err == nil:
		resp.LastCycle = last
	case errors.Is(err, apperrors.ErrNoCycleYet):
	default:
		return nil, fmt.Errorf("get last cycle: %w", err)
	}

	return resp, nil
}

func (uc *StatusUseCase) ListCounters(ctx context.Context) (*dto.CountersResponse, error) {
	counts, err := uc.counters.All(ctx)
	if err != nil {
		uc.logger.Error("Failed to list counters", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCounterStore, err)
	}

	return &dto.CountersResponse{
		Counters: counts,
		Total:    len(counts),
	}, nil
}

func (uc *StatusUseCase) GetCounter(ctx context.Context, aoi string) (*dto.CounterResponse, error) {
	count, err := uc.counters.Get(ctx, aoi)
	if err != nil {
		if errors.Is(err, apperrors.ErrAOINotRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCounterStore, err)
	}

	return &dto.CounterResponse{AOI: aoi, SceneCount: count}, nil
}
