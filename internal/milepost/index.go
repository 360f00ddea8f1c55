package milepost

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/milepost-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50

	// pointTolerance gives each crossing a tiny box; rtreego rejects empty rects.
	pointTolerance = 1e-7

	// boundPadding widens the search box so the spherical radius mismatch
	// between orb and our haversine never excludes a record at the edge.
	boundPadding = 1.01
)

type indexedCrossing struct {
	rect  rtreego.Rect
	order int
}

func (c *indexedCrossing) Bounds() rtreego.Rect {
	return c.rect
}

// CrossingIndex is an R-tree over the records of one dataset snapshot.
// It is read-only after construction and safe for concurrent queries.
type CrossingIndex struct {
	tree     *rtreego.Rtree
	records  []domain.RawCrossingRecord
	unplaced []int
}

// NewCrossingIndex indexes records by their coordinates. Records whose
// coordinates cannot be read are kept aside and returned by every query, so
// FilterNearby still sees exactly the records it would without the index.
func NewCrossingIndex(records []domain.RawCrossingRecord) *CrossingIndex {
	idx := &CrossingIndex{records: records}

	objs := make([]rtreego.Spatial, 0, len(records))
	for i, r := range records {
		lat, okLat := ParseNumber(r.Lat.String())
		lon, okLon := ParseNumber(r.Long.String())
		if !okLat || !okLon {
			idx.unplaced = append(idx.unplaced, i)
			continue
		}
		objs = append(objs, &indexedCrossing{
			rect:  rtreego.Point{lon, lat}.ToRect(pointTolerance),
			order: i,
		})
	}

	idx.tree = rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, objs...)
	return idx
}

// Len returns the number of records in the snapshot.
func (i *CrossingIndex) Len() int {
	return len(i.records)
}

// Near returns the records that may lie within radiusMeters of anchor, in
// dataset order. It over-approximates; FilterNearby does the exact cut.
func (i *CrossingIndex) Near(anchor orb.Point, radiusMeters float64) []domain.RawCrossingRecord {
	bound := geo.NewBoundAroundPoint(anchor, radiusMeters*boundPadding)
	if bound.Min.Lon() > bound.Max.Lon() {
		// the box wraps the antimeridian
		return i.records
	}

	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{bound.Min.Lon(), bound.Min.Lat()},
		rtreego.Point{bound.Max.Lon(), bound.Max.Lat()},
	)
	if err != nil {
		return i.records
	}

	hits := i.tree.SearchIntersect(rect)
	order := make([]int, 0, len(hits)+len(i.unplaced))
	for _, h := range hits {
		order = append(order, h.(*indexedCrossing).order)
	}
	order = append(order, i.unplaced...)
	sort.Ints(order)

	out := make([]domain.RawCrossingRecord, len(order))
	for k, o := range order {
		out[k] = i.records[o]
	}
	return out
}
