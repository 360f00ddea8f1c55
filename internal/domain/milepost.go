package domain

import "github.com/paulmach/orb"

// UnknownRailroad groups points whose railroad field is empty.
const UnknownRailroad = "Unknown Railroad"

// Point - a validated crossing with a numeric milepost.
// Only DistanceToAnchor changes after creation.
type Point struct {
	Latitude         float64           `json:"lat"`
	Longitude        float64           `json:"lon"`
	Railroad         string            `json:"railroad"`
	Milepost         float64           `json:"milepost"`
	DistanceToAnchor float64           `json:"distance_to_anchor"` // meters
	Raw              RawCrossingRecord `json:"-"`
}

// Location returns the point as {lon, lat}.
func (p *Point) Location() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// RailLine - chain of points of one railroad inferred to lie on one track.
type RailLine struct {
	Railroad string   `json:"railroad"`
	Points   []*Point `json:"points"`
}

// Len returns the number of points on the line.
func (l RailLine) Len() int {
	return len(l.Points)
}

// Drawable reports whether the line has enough points for a polyline.
func (l RailLine) Drawable() bool {
	return len(l.Points) >= 2
}

// Clone copies the line and its points so the copy can be reordered or
// re-measured without touching the source line.
func (l RailLine) Clone() RailLine {
	points := make([]*Point, len(l.Points))
	for i, p := range l.Points {
		cp := *p
		points[i] = &cp
	}
	return RailLine{Railroad: l.Railroad, Points: points}
}

// Path returns the line's coordinates in its current order.
func (l RailLine) Path() orb.LineString {
	ls := make(orb.LineString, len(l.Points))
	for i, p := range l.Points {
		ls[i] = p.Location()
	}
	return ls
}

// ProjectedPoint - nearest approach of a rail line to the anchor. Usually
// not one of the dataset points.
type ProjectedPoint struct {
	Latitude         float64           `json:"lat"`
	Longitude        float64           `json:"lon"`
	Railroad         string            `json:"railroad"`
	Milepost         float64           `json:"milepost"`
	DistanceToAnchor float64           `json:"distance_to_anchor"`
	Source           RawCrossingRecord `json:"-"`
}
