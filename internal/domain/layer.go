package domain

import "github.com/paulmach/orb"

// MarkerKind tells the client which icon to draw.
type MarkerKind string

const (
	MarkerTarget   MarkerKind = "target"
	MarkerMilepost MarkerKind = "milepost"
)

// MarkerIcon describes a marker's icon; clients own the actual styling.
type MarkerIcon struct {
	Kind  MarkerKind `json:"kind"`
	Label string     `json:"label"`
}

// Layer is the render sink. Implementations must not retain the points slice.
type Layer interface {
	Clear()
	AddMarker(lat, lon float64, popupHTML string, icon *MarkerIcon)
	AddPolyline(points []orb.Point, color string, popupHTML string)
}
