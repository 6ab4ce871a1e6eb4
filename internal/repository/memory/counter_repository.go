// Package memory holds in-process repository implementations. They keep no
// state across restarts and back tests and dry runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/archive-alert/internal/domain/repository"
	"github.com/archive-alert/internal/pkg/errors"
)

type CounterRepository struct {
	mu     sync.Mutex
	counts map[string]int
	writes int
}

var _ repository.CounterRepository = (*CounterRepository)(nil)

// NewCounterRepository returns a store seeded with initial (which may be nil).
func NewCounterRepository(initial map[string]int) *CounterRepository {
	counts := make(map[string]int, len(initial))
	for k, v := range initial {
		counts[k] = v
	}
	return &CounterRepository{counts: counts}
}

func (r *CounterRepository) Get(ctx context.Context, aoi string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count, ok := r.counts[aoi]
	if !ok {
		return 0, fmt.Errorf("get count for %q: %w", aoi, errors.ErrAOINotRegistered)
	}
	return count, nil
}

func (r *CounterRepository) Set(ctx context.Context, aoi string, count int) error {
	if count < 0 {
		return fmt.Errorf("set count %d for %q: %w", count, aoi, errors.ErrNegativeCount)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[aoi] = count
	r.writes++
	return nil
}

func (r *CounterRepository) Ensure(ctx context.Context, aoi string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.counts[aoi]; !ok {
		r.counts[aoi] = 0
	}
	return nil
}

func (r *CounterRepository) All(ctx context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out, nil
}

// Writes returns how many times Set succeeded, reconcile resets included.
func (r *CounterRepository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}
