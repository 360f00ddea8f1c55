package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// AnchorState is the outcome of the last marker update: where the anchor
// was, where the dataset was last fetched for, and the rail lines built then.
// It is a value; updates return a new one instead of mutating the old.
type AnchorState struct {
	Anchor      orb.Point
	FetchAnchor orb.Point
	Fetched     bool
	FetchedAt   time.Time
	Lines       []RailLine
	// RequestID identifies the request that produced this state. Zero for the empty state.
	RequestID uint64
}

// IsEmpty reports whether nothing has been fetched yet.
func (s AnchorState) IsEmpty() bool {
	return !s.Fetched
}
