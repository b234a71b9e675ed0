package geo

import (
	"errors"
	"math"

	"github.com/gpxtone/gpxtone/model"
)

// ErrNoElevationData means not a single point carries an elevation, so
// there is no melody signal to work with.
var ErrNoElevationData = errors.New("trail has no elevation data")

// Geometry holds the per-trail aggregates the pipeline needs: the
// elevation range for pitch normalization and the total 3D distance for
// step derivation. Computed once, read-only afterwards.
type Geometry struct {
	MinElevation        float64
	MaxElevation        float64
	ElevationRange      float64
	TotalDistanceMeters float64
}

const earthRadiusMeters = 6371000.0

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

// Distance3D returns the distance in meters between two points, including
// the vertical component when both points carry an elevation.
func Distance3D(a, b model.Point) float64 {
	flat := haversine(a.Lat, a.Lon, b.Lat, b.Lon)
	if a.Elevation == nil || b.Elevation == nil {
		return flat
	}
	dEle := *b.Elevation - *a.Elevation
	return math.Sqrt(flat*flat + dEle*dEle)
}

// Compute walks the full point sequence once, summing consecutive 3D
// distances and tracking the min/max of all defined elevations. Returns
// ErrNoElevationData when no point has an elevation.
func Compute(points []model.Point) (Geometry, error) {
	var g Geometry
	minEle := math.Inf(1)
	maxEle := math.Inf(-1)
	sawElevation := false

	for i, p := range points {
		if p.Elevation != nil {
			sawElevation = true
			minEle = math.Min(minEle, *p.Elevation)
			maxEle = math.Max(maxEle, *p.Elevation)
		}
		if i > 0 {
			g.TotalDistanceMeters += Distance3D(points[i-1], p)
		}
	}

	if !sawElevation {
		return Geometry{}, ErrNoElevationData
	}

	g.MinElevation = minEle
	g.MaxElevation = maxEle
	g.ElevationRange = maxEle - minEle
	return g, nil
}
