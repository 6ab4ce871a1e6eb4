package domain

import (
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

// AreaOfInterest - область интереса, загруженная из векторного файла
type AreaOfInterest struct {
	// FileName is the vector file name, e.g. "aoi_europe.geojson". It keys the counter store.
	FileName string
	// Name is the file name stem, used for reports, log lines and emails.
	Name     string
	Geometry orb.Geometry
}

// NewAreaOfInterest builds an AOI from the path of its vector file.
func NewAreaOfInterest(path string, geometry orb.Geometry) *AreaOfInterest {
	fileName := filepath.Base(path)
	return &AreaOfInterest{
		FileName: fileName,
		Name:     AOIStem(fileName),
		Geometry: geometry,
	}
}

// AOIStem strips directory and extension: "aoi/aoi_europe.geojson" -> "aoi_europe".
func AOIStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
