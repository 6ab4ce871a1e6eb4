package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/domain/repository"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type reportRepository struct {
	dir    string
	logger *zap.Logger
}

// NewReportRepository пишет ежедневные отчёты поиска в dir
func NewReportRepository(dir string, logger *zap.Logger) repository.ReportRepository {
	return &reportRepository{
		dir:    dir,
		logger: logger,
	}
}

// ReportFileName returns "{date}_report_{aoiName}.geojson".
func ReportFileName(date, aoiName string) string {
	return date + "_report_" + aoiName + ".geojson"
}

func (r *reportRepository) Export(
	ctx context.Context,
	date, aoiName string,
	features *geojson.FeatureCollection,
) (string, error) {
	if features == nil {
		features = geojson.NewFeatureCollection()
	}
	StripListProperties(features)

	data, err := features.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	path := filepath.Join(r.dir, ReportFileName(date, aoiName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		r.logger.Error("Failed to write report", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	r.logger.Info("Archive report exported",
		zap.String("path", path),
		zap.Int("features", len(features.Features)))
	return path, nil
}

// StripListProperties drops the usage-type property from every feature.
// Features without it are left as they are.
func StripListProperties(fc *geojson.FeatureCollection) {
	for _, f := range fc.Features {
		if f == nil || f.Properties == nil {
			continue
		}
		delete(f.Properties, domain.UsageTypeProperty)
	}
}
