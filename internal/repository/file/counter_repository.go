package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/archive-alert/internal/domain/repository"
	"github.com/archive-alert/internal/pkg/errors"
	"go.uber.org/zap"
)

type counterRepository struct {
	path   string
	logger *zap.Logger
	// mu only serialises callers inside this process (e.g. the status API);
	// separate processes sharing the file are not coordinated.
	mu sync.Mutex
}

// NewCounterRepository создает хранилище счётчиков в JSON файле
func NewCounterRepository(path string, logger *zap.Logger) repository.CounterRepository {
	return &counterRepository{
		path:   path,
		logger: logger,
	}
}

func (r *counterRepository) Get(ctx context.Context, aoi string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts, err := r.load()
	if err != nil {
		return 0, err
	}

	count, ok := counts[aoi]
	if !ok {
		return 0, fmt.Errorf("get count for %q: %w", aoi, errors.ErrAOINotRegistered)
	}

	return count, nil
}

func (r *counterRepository) Set(ctx context.Context, aoi string, count int) error {
	if count < 0 {
		return fmt.Errorf("set count %d for %q: %w", count, aoi, errors.ErrNegativeCount)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	counts, err := r.load()
	if err != nil {
		return err
	}

	counts[aoi] = count
	if err := r.save(counts); err != nil {
		return err
	}

	r.logger.Debug("Scene count stored",
		zap.String("aoi", aoi),
		zap.Int("count", count))
	return nil
}

func (r *counterRepository) Ensure(ctx context.Context, aoi string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts, err := r.load()
	if err != nil {
		return err
	}

	if _, ok := counts[aoi]; ok {
		r.logger.Info("AOI already in counter file", zap.String("aoi", aoi))
		return nil
	}

	counts[aoi] = 0
	if err := r.save(counts); err != nil {
		return err
	}

	r.logger.Info("AOI added to counter file", zap.String("aoi", aoi))
	return nil
}

func (r *counterRepository) All(ctx context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// load reads the whole mapping; a missing file is an empty mapping.
func (r *counterRepository) load() (map[string]int, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return make(map[string]int), nil
	}
	if err != nil {
		r.logger.Error("Failed to read counter file", zap.String("path", r.path), zap.Error(err))
		return nil, fmt.Errorf("failed to read counter file: %w", err)
	}

	counts := make(map[string]int)
	if len(data) == 0 {
		return counts, nil
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		r.logger.Error("Failed to decode counter file", zap.String("path", r.path), zap.Error(err))
		return nil, fmt.Errorf("failed to decode counter file %s: %w", r.path, err)
	}

	return counts, nil
}

// save rewrites the whole mapping.
func (r *counterRepository) save(counts map[string]int) error {
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create counter dir: %w", err)
		}
	}

	data, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("failed to encode counters: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		r.logger.Error("Failed to write counter file", zap.String("path", r.path), zap.Error(err))
		return fmt.Errorf("failed to write counter file: %w", err)
	}

	return nil
}
