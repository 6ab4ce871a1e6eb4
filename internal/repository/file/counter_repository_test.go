package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archive-alert/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCounterRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "output", "previous_scene_count.json")
	repo := NewCounterRepository(path, zap.NewNop())

	t.Run("unregistered aoi", func(t *testing.T) {
		_, err := repo.Get(ctx, "aoi_europe.geojson")
		assert.ErrorIs(t, err, errors.ErrAOINotRegistered)
	})

	t.Run("ensure registers with zero", func(t *testing.T) {
		require.NoError(t, repo.Ensure(ctx, "aoi_europe.geojson"))

		count, err := repo.Get(ctx, "aoi_europe.geojson")
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"aoi_europe.geojson":0}`, string(data))
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "aoi_europe.geojson", 8))

		count, err := repo.Get(ctx, "aoi_europe.geojson")
		require.NoError(t, err)
		assert.Equal(t, 8, count)
	})

	t.Run("ensure keeps existing value", func(t *testing.T) {
		require.NoError(t, repo.Ensure(ctx, "aoi_europe.geojson"))

		count, err := repo.Get(ctx, "aoi_europe.geojson")
		require.NoError(t, err)
		assert.Equal(t, 8, count)
	})

	t.Run("negative count rejected", func(t *testing.T) {
		err := repo.Set(ctx, "aoi_europe.geojson", -1)
		assert.ErrorIs(t, err, errors.ErrNegativeCount)

		count, err := repo.Get(ctx, "aoi_europe.geojson")
		require.NoError(t, err)
		assert.Equal(t, 8, count)
	})

	t.Run("other entries survive a write", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "aoi_africa.geojson", 2))

		all, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"aoi_europe.geojson": 8, "aoi_africa.geojson": 2}, all)
	})
}

func TestCounterRepository_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "previous_scene_count.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"aoi_europe.geojson": 12}`), 0o644))

	repo := NewCounterRepository(path, zap.NewNop())
	count, err := repo.Get(context.Background(), "aoi_europe.geojson")
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestCounterRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "previous_scene_count.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	repo := NewCounterRepository(path, zap.NewNop())
	_, err := repo.Get(context.Background(), "aoi_europe.geojson")
	assert.Error(t, err)
}
