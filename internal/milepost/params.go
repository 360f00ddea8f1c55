// Package milepost turns raw crossing records into rail lines and works out
// where each line passes closest to an anchor.
package milepost

import "github.com/milepost-service/internal/pkg/geo"

// Params are the pipeline tunables.
type Params struct {
	MaxNearbyPoints        int
	MaxDistanceMiles       float64
	MilepostGapThreshold   float64
	SpatialProximityMeters float64
	MaxPointsPerLine       int
	RefetchDistanceMeters  float64
	KeepUnprojectedLines   bool
}

func DefaultParams() Params {
	return Params{
		MaxNearbyPoints:        1000,
		MaxDistanceMiles:       10,
		MilepostGapThreshold:   1,
		SpatialProximityMeters: 1.4 * geo.MetersPerMile,
		MaxPointsPerLine:       2,
		RefetchDistanceMeters:  8000,
	}
}
