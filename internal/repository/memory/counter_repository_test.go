package memory

import (
	"context"
	"testing"

	"github.com/archive-alert/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterRepository(t *testing.T) {
	ctx := context.Background()
	seed := map[string]int{"aoi_europe.geojson": 5}
	repo := NewCounterRepository(seed)

	seed["aoi_europe.geojson"] = 99
	count, err := repo.Get(ctx, "aoi_europe.geojson")
	require.NoError(t, err)
	assert.Equal(t, 5, count, "seed map is copied")

	_, err = repo.Get(ctx, "aoi_asia.geojson")
	assert.ErrorIs(t, err, errors.ErrAOINotRegistered)

	require.NoError(t, repo.Ensure(ctx, "aoi_asia.geojson"))
	require.NoError(t, repo.Ensure(ctx, "aoi_europe.geojson"))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"aoi_europe.geojson": 5, "aoi_asia.geojson": 0}, all)

	assert.ErrorIs(t, repo.Set(ctx, "aoi_asia.geojson", -3), errors.ErrNegativeCount)
	require.NoError(t, repo.Set(ctx, "aoi_asia.geojson", 3))
	assert.Equal(t, 1, repo.Writes())
}
