package repository

import "context"

// CounterRepository хранит последнее известное количество сцен по каждой AOI.
// Implementations do a full read-modify-write and are not safe for
// concurrent cycles against the same store.
type CounterRepository interface {
	// Get returns the stored count, or errors.ErrAOINotRegistered when aoi is unknown
	Get(ctx context.Context, aoi string) (int, error)

	// Set stores count for aoi; negative counts are rejected with errors.ErrNegativeCount
	Set(ctx context.Context, aoi string, count int) error

	// Ensure registers aoi with a count of 0 unless it is already present
	Ensure(ctx context.Context, aoi string) error

	// All returns a snapshot of every stored count
	All(ctx context.Context) (map[string]int, error)
}
