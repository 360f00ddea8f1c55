// Package geo holds the distance and projection primitives used by the
// milepost pipeline. Coordinates are orb.Point values, i.e. {lon, lat}.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// EarthRadiusMeters matches the spherical radius used by web map clients.
	EarthRadiusMeters = 6371000.0
	MetersPerMile     = 1609.34

	// metersPerDegree is the planar scale used for short-range projections.
	metersPerDegree = 111320.0
)

// HaversineDistance returns the great-circle distance between two points in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// DistanceMeters is HaversineDistance for orb points.
func DistanceMeters(a, b orb.Point) float64 {
	return HaversineDistance(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

// MetersToMiles converts using the statute mile the dataset consumers use.
func MetersToMiles(m float64) float64 {
	return m / MetersPerMile
}

// ValidateCoordinates reports whether lat/lon are inside WGS84 bounds.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Projection is the closest point of a segment to some target.
type Projection struct {
	Point orb.Point
	// T is the clamped position along the segment, 0 at the start and 1 at the end.
	T float64
	// Degenerate is set for zero-length segments; Point is then the start.
	Degenerate bool
}

// ProjectOntoSegment projects p onto the segment a-b in a local planar frame.
// Longitude is scaled by cos of the segment's mean latitude, so this is only
// meaningful for segments a few kilometers long.
func ProjectOntoSegment(a, b, p orb.Point) Projection {
	meanLat := (a.Lat() + b.Lat()) / 2
	latScale := metersPerDegree
	lonScale := metersPerDegree * math.Cos(meanLat*math.Pi/180)

	x1, y1 := a.Lon()*lonScale, a.Lat()*latScale
	x2, y2 := b.Lon()*lonScale, b.Lat()*latScale
	x0, y0 := p.Lon()*lonScale, p.Lat()*latScale

	dx := x2 - x1
	dy := y2 - y1

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Projection{Point: a, Degenerate: true}
	}

	t := ((x0-x1)*dx + (y0-y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	return Projection{
		Point: orb.Point{(x1 + t*dx) / lonScale, (y1 + t*dy) / latScale},
		T:     t,
	}
}

// NearlyEqual compares two points per axis within eps degrees.
func NearlyEqual(a, b orb.Point, eps float64) bool {
	return math.Abs(a.Lon()-b.Lon()) < eps && math.Abs(a.Lat()-b.Lat()) < eps
}
