package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archive-alert/internal/domain"
	redisRepo "github.com/archive-alert/internal/repository/redis"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Test connection
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	// Clean up any existing test streams
	client.Del(ctx, "test:stream:archive:alerts")

	return client
}

// TestStreamRepository_PublishToStream tests alert event publishing
func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := redisRepo.NewStreamRepository(client, 1000, zap.NewNop())
	ctx := context.Background()

	streamName := "test:stream:archive:alerts"
	defer client.Del(ctx, streamName)

	event := &domain.AlertEvent{
		EventID:     uuid.New(),
		CycleID:     uuid.New(),
		AOIName:     "aoi_europe",
		Date:        "2024-05-17",
		Time:        "02:05:09 PM",
		NewScenes:   3,
		TotalScenes: 8,
		EmailSent:   true,
	}

	err := repo.PublishToStream(ctx, streamName, event)
	require.NoError(t, err)

	messages, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{streamName, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Messages, 1)

	dataStr, ok := messages[0].Messages[0].Values["data"].(string)
	require.True(t, ok)

	var received domain.AlertEvent
	require.NoError(t, json.Unmarshal([]byte(dataStr), &received))
	assert.Equal(t, event.EventID, received.EventID)
	assert.Equal(t, "aoi_europe", received.AOIName)
	assert.Equal(t, 3, received.NewScenes)
	assert.Equal(t, 8, received.TotalScenes)
}

func TestStreamRepository_PublishToStream_Unmarshalable(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	err := repo.PublishToStream(context.Background(), "test:stream:archive:alerts", make(chan int))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal data")
}
