package repository

import (
	"context"

	"github.com/archive-alert/internal/domain"
	"github.com/paulmach/orb/geojson"
)

// ReportRepository writes the daily search report
type ReportRepository interface {
	// Export writes features to the report for (date, aoiName) and returns its path
	Export(ctx context.Context, date, aoiName string, features *geojson.FeatureCollection) (string, error)
}

// ActivityLogRepository appends search log lines
type ActivityLogRepository interface {
	Append(ctx context.Context, entry domain.LogEntry) error
}

// AOIRepository loads an area of interest from its vector file
type AOIRepository interface {
	Load(ctx context.Context) (*domain.AreaOfInterest, error)
}
