package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/domain/repository"
	apperrors "github.com/archive-alert/internal/pkg/errors"
	"github.com/archive-alert/internal/pkg/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlertUseCase выполняет цикл оповещения: поиск, отчёт, сравнение, письмо, сохранение
type AlertUseCase struct {
	catalog   repository.CatalogRepository
	aois      repository.AOIRepository
	reports   repository.ReportRepository
	activity  repository.ActivityLogRepository
	counters  repository.CounterRepository
	notifier  repository.Notifier
	publisher repository.StreamRepository
	stream    string
	defaults  domain.SearchDefaults
	now       func() time.Time
	logger    *zap.Logger

	mu   sync.RWMutex
	last *domain.CycleResult
}

// AlertOption настраивает необязательные зависимости AlertUseCase
type AlertOption func(*AlertUseCase)

// WithPublisher publishes an AlertEvent to stream after every notification.
func WithPublisher(publisher repository.StreamRepository, stream string) AlertOption {
	return func(uc *AlertUseCase) {
		uc.publisher = publisher
		uc.stream = stream
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AlertOption {
	return func(uc *AlertUseCase) {
		uc.now = now
	}
}

// NewAlertUseCase создает новый экземпляр AlertUseCase
func NewAlertUseCase(
	catalog repository.CatalogRepository,
	aois repository.AOIRepository,
	reports repository.ReportRepository,
	activity repository.ActivityLogRepository,
	counters repository.CounterRepository,
	notifier repository.Notifier,
	defaults domain.SearchDefaults,
	logger *zap.Logger,
	opts ...AlertOption,
) *AlertUseCase {
	uc := &AlertUseCase{
		catalog:  catalog,
		aois:     aois,
		reports:  reports,
		activity: activity,
		counters: counters,
		notifier: notifier,
		stream:   domain.StreamArchiveAlerts,
		defaults: defaults,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RegisterAOI добавляет AOI в хранилище счётчиков со значением 0, если её там нет
func (uc *AlertUseCase) RegisterAOI(ctx context.Context) (*domain.AreaOfInterest, error) {
	aoi, err := uc.aois.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aoi: %w", err)
	}

	if err := uc.counters.Ensure(ctx, aoi.FileName); err != nil {
		return nil, fmt.Errorf("register aoi %q: %w", aoi.FileName, err)
	}

	return aoi, nil
}

// RunCycle выполняет один цикл. Ошибки авторизации, поиска, экспорта,
// журнала и хранилища прерывают цикл; ошибка отправки письма нет.
func (uc *AlertUseCase) RunCycle(ctx context.Context) (*domain.CycleResult, error) {
	started := uc.now().UTC()
	result := &domain.CycleResult{
		CycleID:   uuid.New(),
		Date:      started.Format(domain.DateLayout),
		Time:      started.Format(domain.TimeLayout),
		StartedAt: started,
	}
	log := uc.logger.With(zap.String("cycle_id", result.CycleID.String()))

	// 1. Авторизация
	if err := uc.catalog.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	// 2. Поиск сцен за текущие сутки
	aoi, err := uc.aois.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aoi: %w", err)
	}
	result.AOIFile = aoi.FileName
	result.AOIName = aoi.Name
	log = log.With(zap.String("aoi", aoi.Name))

	params := domain.TodaySearch(aoi.Geometry, uc.defaults, started)
	if err := validator.Validate(params); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSearch, err)
	}

	search, err := uc.catalog.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	result.SceneCount = search.Count

	// 3. Отчёт и журнал
	result.ReportPath, err = uc.reports.Export(ctx, result.Date, aoi.Name, search.Features)
	if err != nil {
		return nil, fmt.Errorf("export report: %w", err)
	}

	if err := uc.activity.Append(ctx, domain.NewLogEntry(aoi.Name, search.Count, started)); err != nil {
		return nil, fmt.Errorf("append log: %w", err)
	}

	// 4. Сравнение с сохранённым количеством
	previous, err := uc.counters.Get(ctx, aoi.FileName)
	if err != nil {
		return nil, fmt.Errorf("read previous count: %w", err)
	}

	decision := domain.Compare(previous, search.Count)
	if decision.Branch == domain.BranchReconcile {
		log.Warn("Scene count dropped, resetting stored count",
			zap.Int("previous", previous),
			zap.Int("current", search.Count))

		decision, err = uc.reconcile(ctx, aoi.FileName, search.Count)
		if err != nil {
			return nil, err
		}
	}
	result.Decision = decision

	switch decision.Branch {
	case domain.BranchNotify:
		log.Info(fmt.Sprintf("%d new archive available", decision.Delta),
			zap.Int("previous", decision.Previous),
			zap.Int("current", decision.Current))

		notified := uc.notifier.Notify(ctx, domain.Notification{
			AOIName:   aoi.Name,
			Time:      result.Time,
			NewScenes: decision.Delta,
		})
		if notified.IsFailed() {
			log.Warn("Notification failed", zap.Error(notified.Reason))
		}
		result.Notification = &notified

		uc.publish(ctx, log, result)
	default:
		log.Info("No new scenes are available at " + result.Time)
	}

	// 5. Сохраняем текущее количество
	if err := uc.counters.Set(ctx, aoi.FileName, search.Count); err != nil {
		return nil, fmt.Errorf("persist count: %w", err)
	}

	result.FinishedAt = uc.now().UTC()
	uc.mu.Lock()
	uc.last = result
	uc.mu.Unlock()

	log.Info("Alert cycle finished",
		zap.Int("scenes", result.SceneCount),
		zap.String("branch", string(decision.Branch)),
		zap.Duration("duration", result.FinishedAt.Sub(result.StartedAt)))

	return result, nil
}

// reconcile resets the stored count and compares once more. A second drop is
// treated as nothing new.
func (uc *AlertUseCase) reconcile(ctx context.Context, aoi string, current int) (domain.Decision, error) {
	if err := uc.counters.Set(ctx, aoi, 0); err != nil {
		return domain.Decision{}, fmt.Errorf("reset count: %w", err)
	}

	previous, err := uc.counters.Get(ctx, aoi)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("re-read count: %w", err)
	}

	decision := domain.Compare(previous, current)
	decision.Reconciled = true
	if decision.Branch == domain.BranchReconcile {
		decision.Branch = domain.BranchSkip
	}
	return decision, nil
}

func (uc *AlertUseCase) publish(ctx context.Context, log *zap.Logger, result *domain.CycleResult) {
	if uc.publisher == nil {
		return
	}

	event := domain.AlertEvent{
		EventID:     uuid.New(),
		CycleID:     result.CycleID,
		AOIName:     result.AOIName,
		Date:        result.Date,
		Time:        result.Time,
		NewScenes:   result.Decision.Delta,
		TotalScenes: result.SceneCount,
		ReportPath:  result.ReportPath,
		EmailSent:   result.Notified(),
	}

	if err := uc.publisher.PublishToStream(ctx, uc.stream, event); err != nil {
		log.Warn("Failed to publish alert event", zap.String("stream", uc.stream), zap.Error(err))
	}
}

// LastCycle возвращает результат последнего успешного цикла
func (uc *AlertUseCase) LastCycle() (*domain.CycleResult, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if uc.last == nil {
		return nil, apperrors.ErrNoCycleYet
	}
	cp := *uc.last
	return &cp, nil
}

// IsPrecondition reports whether err means the AOI was never registered.
func IsPrecondition(err error) bool {
	return errors.Is(err, apperrors.ErrAOINotRegistered)
}
