package worker

import (
	"context"
)

// Worker is a long-running background job.
type Worker interface {
	// Start blocks until ctx is done or Stop is called
	Start(ctx context.Context) error

	Stop() error

	Name() string
}
