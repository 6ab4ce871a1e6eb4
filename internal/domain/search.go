package domain

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	// MaxSearchResults is the catalog page cap per cycle.
	MaxSearchResults = 500

	// UsageTypeProperty holds a list value and cannot be written to a GeoJSON report as-is.
	UsageTypeProperty = "up42:usageType"

	DateLayout = "2006-01-02"
	TimeLayout = "03:04:05 PM"
)

// SearchParameters - параметры поиска по каталогу, создаются заново на каждый цикл
type SearchParameters struct {
	Geometry      orb.Geometry `validate:"required"`
	Host          string       `validate:"required"`
	Collections   []string     `validate:"min=1,dive,required"`
	StartDate     string       `validate:"isodate"`
	EndDate       string       `validate:"isodate"`
	UsageType     []string
	Limit         int `validate:"gte=1,lte=500"`
	MaxCloudCover int `validate:"gte=0,lte=100"`
	SortBy        string
	Ascending     bool
}

// SearchDefaults carries the per-deployment part of SearchParameters.
type SearchDefaults struct {
	Host          string
	Collections   []string
	UsageType     []string
	Limit         int
	MaxCloudCover int
	SortBy        string
	Ascending     bool
}

// TodaySearch builds the parameters for a search covering only the calendar day of now.
func TodaySearch(geometry orb.Geometry, d SearchDefaults, now time.Time) *SearchParameters {
	day := now.UTC().Format(DateLayout)
	limit := d.Limit
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	return &SearchParameters{
		Geometry:      geometry,
		Host:          d.Host,
		Collections:   d.Collections,
		StartDate:     day,
		EndDate:       day,
		UsageType:     d.UsageType,
		Limit:         limit,
		MaxCloudCover: d.MaxCloudCover,
		SortBy:        d.SortBy,
		Ascending:     d.Ascending,
	}
}

// SearchResult - результат поиска: набор сцен и их количество
type SearchResult struct {
	Count    int
	Features *geojson.FeatureCollection
}

// NewSearchResult wraps features; Count always equals the number of features.
func NewSearchResult(fc *geojson.FeatureCollection) *SearchResult {
	if fc == nil {
		fc = geojson.NewFeatureCollection()
	}
	return &SearchResult{
		Count:    len(fc.Features),
		Features: fc,
	}
}
