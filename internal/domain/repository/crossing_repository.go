package repository

import (
	"context"

	"github.com/milepost-service/internal/domain"
)

// CrossingRepository provides the raw crossing inventory
type CrossingRepository interface {
	// FetchCrossings loads every crossing record of the dataset
	FetchCrossings(ctx context.Context) ([]domain.RawCrossingRecord, error)
}

// CrossingInvalidator is implemented by repositories that cache the dataset.
// A forced refresh calls it before fetching.
type CrossingInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CrossingPayloadSource returns the dataset as the raw upstream JSON, for
// layers that store it as is.
type CrossingPayloadSource interface {
	FetchPayload(ctx context.Context) ([]byte, error)
}
