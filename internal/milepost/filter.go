package milepost

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/pkg/geo"
	"github.com/paulmach/orb"
)

// leadingNumber matches the numeric prefix of values like "12.5" or "103.2A".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading decimal number of s. Mileposts in the
// inventory sometimes carry a suffix letter; the number before it is the
// milepost.
func ParseNumber(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// NewPoint validates a record. It fails when lat, long or railroad is empty,
// when milepost is missing or not numeric, or when the coordinates are unusable.
func NewPoint(r domain.RawCrossingRecord) (*domain.Point, bool) {
	if r.Lat == "" || r.Long == "" || r.Railroad == "" || r.Milepost == nil {
		return nil, false
	}

	lat, ok := ParseNumber(r.Lat.String())
	if !ok {
		return nil, false
	}
	lon, ok := ParseNumber(r.Long.String())
	if !ok || !geo.ValidateCoordinates(lat, lon) {
		return nil, false
	}
	mp, ok := ParseNumber(r.Milepost.String())
	if !ok {
		return nil, false
	}

	return &domain.Point{
		Latitude:  lat,
		Longitude: lon,
		Railroad:  r.Railroad,
		Milepost:  mp,
		Raw:       r,
	}, true
}

// FilterNearby keeps the valid records within maxDistanceMiles of anchor.
// If more than maxCount remain, only the maxCount nearest are returned,
// nearest first.
func FilterNearby(records []domain.RawCrossingRecord, anchor orb.Point, maxDistanceMiles float64, maxCount int) []*domain.Point {
	points := make([]*domain.Point, 0)
	for _, r := range records {
		p, ok := NewPoint(r)
		if !ok {
			continue
		}

		p.DistanceToAnchor = geo.DistanceMeters(anchor, p.Location())
		if geo.MetersToMiles(p.DistanceToAnchor) <= maxDistanceMiles {
			points = append(points, p)
		}
	}

	if maxCount < 0 {
		maxCount = 0
	}
	if len(points) > maxCount {
		sortByDistance(points)
		points = points[:maxCount]
	}

	return points
}

func sortByDistance(points []*domain.Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].DistanceToAnchor < points[j].DistanceToAnchor
	})
}
