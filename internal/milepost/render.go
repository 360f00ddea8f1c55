package milepost

import (
	"github.com/milepost-service/internal/domain"
	"github.com/paulmach/orb"
)

// RenderPlan is what one render pass draws besides the target marker.
type RenderPlan struct {
	Markers   []domain.ProjectedPoint
	Polylines []domain.RailLine
}

// PlanRender selects what to draw for the current anchor.
//
// Every line with at least two points is cut down to its maxPointsPerLine
// points nearest the anchor. A line left with exactly two points gets a
// marker at its closest point to the anchor; when there is no interior
// closest point the line is dropped for this pass unless keepUnprojected is
// set. Longer lines are drawn without a marker. Polylines are ordered by
// milepost.
//
// lines is not modified.
func PlanRender(lines []domain.RailLine, anchor orb.Point, maxPointsPerLine int, keepUnprojected bool) RenderPlan {
	plan := RenderPlan{
		Markers:   make([]domain.ProjectedPoint, 0),
		Polylines: make([]domain.RailLine, 0),
	}

	for _, line := range lines {
		if !line.Drawable() {
			continue
		}

		nearest := line.Clone()
		sortByDistance(nearest.Points)
		if maxPointsPerLine > 0 && len(nearest.Points) > maxPointsPerLine {
			nearest.Points = nearest.Points[:maxPointsPerLine]
		}

		if len(nearest.Points) == 2 {
			marker := ClosestPointOnSegment(nearest.Points[0], nearest.Points[1], anchor)
			if marker != nil {
				plan.Markers = append(plan.Markers, *marker)
			} else if !keepUnprojected {
				continue
			}
		}

		SortByMilepost(nearest.Points)
		if nearest.Drawable() {
			plan.Polylines = append(plan.Polylines, nearest)
		}
	}

	return plan
}
