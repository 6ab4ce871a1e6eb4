package vector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/domain/repository"
	apperrors "github.com/archive-alert/internal/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type reader struct {
	path   string
	logger *zap.Logger
}

// NewReader создает загрузчик AOI из GeoJSON файла
func NewReader(path string, logger *zap.Logger) repository.AOIRepository {
	return &reader{path: path, logger: logger}
}

// Load reads the file on every call so edits to the AOI apply on the next cycle.
func (r *reader) Load(ctx context.Context) (*domain.AreaOfInterest, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read AOI file: %w", err)
	}

	geom, err := ParseGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	aoi := domain.NewAreaOfInterest(r.path, geom)
	r.logger.Debug("AOI loaded",
		zap.String("aoi", aoi.Name),
		zap.String("geometry_type", geom.GeoJSONType()),
		zap.Any("bound", geom.Bound()))

	return aoi, nil
}

// ParseGeometry returns the first Polygon or MultiPolygon of a GeoJSON
// FeatureCollection, Feature or bare geometry.
func ParseGeometry(raw []byte) (orb.Geometry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAOI, err)
	}

	var candidates []orb.Geometry
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAOI, err)
		}
		for _, f := range fc.Features {
			candidates = append(candidates, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAOI, err)
		}
		candidates = append(candidates, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAOI, err)
		}
		candidates = append(candidates, g.Geometry())
	}

	for _, g := range candidates {
		if g == nil {
			continue
		}
		if area := areal(g); area != nil {
			return area, nil
		}
	}

	return nil, apperrors.ErrInvalidAOI
}

func areal(g orb.Geometry) orb.Geometry {
	switch v := g.(type) {
	case orb.Polygon:
		return v
	case orb.MultiPolygon:
		return v
	case orb.Collection:
		for _, child := range v {
			if area := areal(child); area != nil {
				return area
			}
		}
	}
	return nil
}
