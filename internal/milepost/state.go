package milepost

import (
	"time"

	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/pkg/geo"
	"github.com/paulmach/orb"
)

// NeedsRefetch decides between a full rebuild from the dataset and a
// distance-only recompute of the cached lines.
func NeedsRefetch(state domain.AnchorState, anchor orb.Point, force bool, refetchDistanceMeters float64) bool {
	switch {
	case force:
		return true
	case state.IsEmpty():
		return true
	case len(state.Lines) < 2:
		return true
	}
	return geo.DistanceMeters(anchor, state.FetchAnchor) >= refetchDistanceMeters
}

// Rebuilt returns the state after a full rebuild around anchor.
func Rebuilt(lines []domain.RailLine, anchor orb.Point, requestID uint64, at time.Time) domain.AnchorState {
	return domain.AnchorState{
		Anchor:      anchor,
		FetchAnchor: anchor,
		Fetched:     true,
		FetchedAt:   at,
		Lines:       lines,
		RequestID:   requestID,
	}
}

// Recompute returns prev with every point's distance measured from anchor.
// The lines are copied; prev keeps its own points.
func Recompute(prev domain.AnchorState, anchor orb.Point, requestID uint64) domain.AnchorState {
	lines := make([]domain.RailLine, len(prev.Lines))
	for i, line := range prev.Lines {
		cp := line.Clone()
		for _, p := range cp.Points {
			p.DistanceToAnchor = geo.DistanceMeters(anchor, p.Location())
		}
		lines[i] = cp
	}

	next := prev
	next.Anchor = anchor
	next.Lines = lines
	next.RequestID = requestID
	return next
}
