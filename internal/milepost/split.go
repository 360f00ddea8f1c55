package milepost

import (
	"math"
	"sort"

	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/pkg/geo"
)

// SplitIntoLines chains one railroad's points into rail lines.
//
// Points are taken in descending milepost order (ties keep input order). Each
// point joins the first line, in creation order, whose tail is within
// milepostGap mileposts and spatialProximity meters of it; otherwise it
// starts a new line. This is a single greedy pass: a point is never moved
// to a better-fitting line created later.
//
// Points inside a line are in processing order, not milepost order.
func SplitIntoLines(points []*domain.Point, milepostGap, spatialProximity float64) []domain.RailLine {
	lines := make([]domain.RailLine, 0)
	if len(points) == 0 {
		return lines
	}

	ordered := make([]*domain.Point, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Milepost > ordered[j].Milepost
	})

	for _, p := range ordered {
		placed := false
		for i := range lines {
			tail := lines[i].Points[len(lines[i].Points)-1]
			if continues(tail, p, milepostGap, spatialProximity) {
				lines[i].Points = append(lines[i].Points, p)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, domain.RailLine{
				Railroad: p.Railroad,
				Points:   []*domain.Point{p},
			})
		}
	}

	return lines
}

// SplitSequential is the simpler segmentation: sort by milepost ascending and
// cut wherever neighbours break either threshold. Runs shorter than two
// points are dropped.
func SplitSequential(points []*domain.Point, milepostGap, spatialProximity float64) []domain.RailLine {
	segments := make([]domain.RailLine, 0)
	if len(points) == 0 {
		return segments
	}

	ordered := make([]*domain.Point, len(points))
	copy(ordered, points)
	SortByMilepost(ordered)

	current := []*domain.Point{ordered[0]}
	flush := func() {
		if len(current) > 1 {
			segments = append(segments, domain.RailLine{Railroad: current[0].Railroad, Points: current})
		}
	}

	for _, p := range ordered[1:] {
		if continues(current[len(current)-1], p, milepostGap, spatialProximity) {
			current = append(current, p)
			continue
		}
		flush()
		current = []*domain.Point{p}
	}
	flush()

	return segments
}

// SortByMilepost orders points ascending by milepost, stable.
func SortByMilepost(points []*domain.Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Milepost < points[j].Milepost
	})
}

func continues(tail, p *domain.Point, milepostGap, spatialProximity float64) bool {
	if math.Abs(tail.Milepost-p.Milepost) > milepostGap {
		return false
	}
	return geo.DistanceMeters(tail.Location(), p.Location()) <= spatialProximity
}
