package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archive-alert/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sceneFeature(id string, poly orb.Polygon, cloud float64, withUsage bool) *geojson.Feature {
	f := geojson.NewFeature(poly)
	f.ID = id
	f.Properties["id"] = id
	f.Properties["collection"] = "phr"
	f.Properties["cloudCoverage"] = cloud
	f.Properties["acquisitionDate"] = "2024-05-17T10:21:33Z"
	if withUsage {
		f.Properties[domain.UsageTypeProperty] = []interface{}{"DATA", "ANALYTICS"}
	}
	return f
}

func TestReportRepository_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "daily_search_report")
	repo := NewReportRepository(dir, zap.NewNop())

	polyA := orb.Polygon{{{2.1, 41.3}, {2.3, 41.3}, {2.3, 41.5}, {2.1, 41.5}, {2.1, 41.3}}}
	polyB := orb.Polygon{{{10, 50}, {11, 50}, {11, 51}, {10, 50}}}

	fc := geojson.NewFeatureCollection()
	fc.Append(sceneFeature("scene-a", polyA, 4.5, true))
	fc.Append(sceneFeature("scene-b", polyB, 0, false))

	path, err := repo.Export(context.Background(), "2024-05-17", "aoi_europe", fc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-05-17_report_aoi_europe.geojson"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, loaded.Features, 2)

	for i, want := range []struct {
		id    string
		poly  orb.Polygon
		cloud float64
	}{
		{"scene-a", polyA, 4.5},
		{"scene-b", polyB, 0},
	} {
		got := loaded.Features[i]
		assert.NotContains(t, got.Properties, domain.UsageTypeProperty)
		assert.Equal(t, want.id, got.Properties["id"])
		assert.Equal(t, "phr", got.Properties["collection"])
		assert.Equal(t, want.cloud, got.Properties["cloudCoverage"])
		assert.Equal(t, "2024-05-17T10:21:33Z", got.Properties["acquisitionDate"])
		assert.Equal(t, want.poly, got.Geometry)
	}
}

func TestReportRepository_Overwrites(t *testing.T) {
	dir := t.TempDir()
	repo := NewReportRepository(dir, zap.NewNop())
	ctx := context.Background()

	first := geojson.NewFeatureCollection()
	first.Append(geojson.NewFeature(orb.Point{1, 1}))
	first.Append(geojson.NewFeature(orb.Point{2, 2}))
	_, err := repo.Export(ctx, "2024-05-17", "aoi_europe", first)
	require.NoError(t, err)

	path, err := repo.Export(ctx, "2024-05-17", "aoi_europe", geojson.NewFeatureCollection())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	loaded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Empty(t, loaded.Features)
}

func TestStripListProperties_NoField(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{0, 0})
	f.Properties = nil
	fc.Append(f)
	fc.Append(geojson.NewFeature(orb.Point{1, 1}))

	assert.NotPanics(t, func() { StripListProperties(fc) })
}
