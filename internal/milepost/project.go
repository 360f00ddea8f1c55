package milepost

import (
	"math"

	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/pkg/geo"
	"github.com/paulmach/orb"
)

// vertexEpsilon is the tolerance, in degrees, for treating a projected
// point as one of the segment's own vertices.
const vertexEpsilon = 1e-9

// ClosestPointOnSegment finds where the segment p1-p2 passes closest to
// anchor and interpolates a milepost there, rounded to two decimals.
//
// A zero-length segment yields a copy of p1. Otherwise nil is returned when
// the closest point is one of the endpoints: the anchor's nearest approach
// is then an existing crossing, not a new point between two of them.
func ClosestPointOnSegment(p1, p2 *domain.Point, anchor orb.Point) *domain.ProjectedPoint {
	proj := geo.ProjectOntoSegment(p1.Location(), p2.Location(), anchor)
	if proj.Degenerate {
		return &domain.ProjectedPoint{
			Latitude:         p1.Latitude,
			Longitude:        p1.Longitude,
			Railroad:         p1.Railroad,
			Milepost:         p1.Milepost,
			DistanceToAnchor: p1.DistanceToAnchor,
			Source:           p1.Raw,
		}
	}

	if geo.NearlyEqual(proj.Point, p1.Location(), vertexEpsilon) ||
		geo.NearlyEqual(proj.Point, p2.Location(), vertexEpsilon) {
		return nil
	}

	return &domain.ProjectedPoint{
		Latitude:         proj.Point.Lat(),
		Longitude:        proj.Point.Lon(),
		Railroad:         p1.Railroad,
		Milepost:         round2(p1.Milepost*(1-proj.T) + p2.Milepost*proj.T),
		DistanceToAnchor: geo.DistanceMeters(anchor, proj.Point),
		Source:           p1.Raw,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
