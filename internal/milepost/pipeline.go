package milepost

import (
	"github.com/milepost-service/internal/domain"
	"github.com/paulmach/orb"
)

// BuildRailLines runs filter, grouping and splitting over a batch of records.
// Lines come out grouped by railroad in first-appearance order.
func BuildRailLines(records []domain.RawCrossingRecord, anchor orb.Point, params Params) []domain.RailLine {
	points := FilterNearby(records, anchor, params.MaxDistanceMiles, params.MaxNearbyPoints)

	lines := make([]domain.RailLine, 0)
	for _, group := range GroupByRailroad(points) {
		lines = append(lines, SplitIntoLines(group.Points, params.MilepostGapThreshold, params.SpatialProximityMeters)...)
	}
	return lines
}

// BuildSegments is BuildRailLines with the sequential segmentation, keeping
// the railroad grouping for per-railroad styling.
func BuildSegments(records []domain.RawCrossingRecord, anchor orb.Point, params Params) []RailroadSegments {
	points := FilterNearby(records, anchor, params.MaxDistanceMiles, params.MaxNearbyPoints)

	result := make([]RailroadSegments, 0)
	for _, group := range GroupByRailroad(points) {
		segments := SplitSequential(group.Points, params.MilepostGapThreshold, params.SpatialProximityMeters)
		if len(segments) == 0 {
			continue
		}
		result = append(result, RailroadSegments{Railroad: group.Railroad, Segments: segments})
	}
	return result
}

// RailroadSegments - the drawable segments of one railroad.
type RailroadSegments struct {
	Railroad string
	Segments []domain.RailLine
}
