package dto

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// Tunables - optional per-request overrides of the pipeline defaults
type Tunables struct {
	MaxNearbyPoints        *int     `json:"max_nearby_points,omitempty" validate:"omitempty,min=1,max=10000"`
	MaxDistanceMiles       *float64 `json:"max_distance_miles,omitempty" validate:"omitempty,gt=0,max=100"`
	MilepostGapThreshold   *float64 `json:"milepost_gap_threshold,omitempty" validate:"omitempty,gt=0,max=1000"`
	SpatialProximityMeters *float64 `json:"spatial_proximity_meters,omitempty" validate:"omitempty,gt=0,max=160934"`
}

// UpdateMarkersRequest - moves a session's anchor and redraws its milepost markers
type UpdateMarkersRequest struct {
	Lat   *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon   *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Force bool     `json:"force"`
	Tunables
	MaxPointsPerLine *int `json:"max_points_per_line,omitempty" validate:"omitempty,min=2,max=1000"`
}

// SegmentsRequest - stateless per-railroad segments around a point
type SegmentsRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Tunables
}

// LatLon - a coordinate in responses
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SessionResponse - the public view of a session
type SessionResponse struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Anchor      *LatLon    `json:"anchor,omitempty"`
	FetchAnchor *LatLon    `json:"fetch_anchor,omitempty"`
	FetchedAt   *time.Time `json:"fetched_at,omitempty"`
	Lines       int        `json:"lines"`
}

// LayerResult - a drawn layer and what went into it
type LayerResult struct {
	Features  *geojson.FeatureCollection
	Lines     int
	Markers   int
	Refetched bool
}
