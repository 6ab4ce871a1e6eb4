package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/archive-alert/internal/domain/repository"
	apperrors "github.com/archive-alert/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// counterRepository хранит счётчики в одном Redis hash: field = AOI, value = count
type counterRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewCounterRepository(client *redis.Client, key string, logger *zap.Logger) repository.CounterRepository {
	return &counterRepository{
		client: client,
		key:    key,
		logger: logger,
	}
}

func (r *counterRepository) Get(ctx context.Context, aoi string) (int, error) {
	val, err := r.client.HGet(ctx, r.key, aoi).Int()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("get count for %q: %w", aoi, apperrors.ErrAOINotRegistered)
	}
	if err != nil {
		r.logger.Error("Failed to get count from redis", zap.String("aoi", aoi), zap.Error(err))
		return 0, fmt.Errorf("redis hget error: %w", err)
	}

	return val, nil
}

func (r *counterRepository) Set(ctx context.Context, aoi string, count int) error {
	if count < 0 {
		return fmt.Errorf("set count %d for %q: %w", count, aoi, apperrors.ErrNegativeCount)
	}

	if err := r.client.HSet(ctx, r.key, aoi, count).Err(); err != nil {
		r.logger.Error("Failed to set count in redis", zap.String("aoi", aoi), zap.Error(err))
		return fmt.Errorf("redis hset error: %w", err)
	}

	r.logger.Debug("Scene count stored", zap.String("aoi", aoi), zap.Int("count", count))
	return nil
}

func (r *counterRepository) Ensure(ctx context.Context, aoi string) error {
	added, err := r.client.HSetNX(ctx, r.key, aoi, 0).Result()
	if err != nil {
		r.logger.Error("Failed to register AOI in redis", zap.String("aoi", aoi), zap.Error(err))
		return fmt.Errorf("redis hsetnx error: %w", err)
	}

	if added {
		r.logger.Info("AOI added to counter hash", zap.String("aoi", aoi))
	} else {
		r.logger.Info("AOI already in counter hash", zap.String("aoi", aoi))
	}
	return nil
}

func (r *counterRepository) All(ctx context.Context) (map[string]int, error) {
	raw, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall error: %w", err)
	}

	counts := make(map[string]int, len(raw))
	for aoi, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid count %q for %q: %w", v, aoi, err)
		}
		counts[aoi] = n
	}

	return counts, nil
}
