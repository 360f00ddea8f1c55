package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/domain/repository"
	"go.uber.org/zap"
)

// DatasetKey holds the raw upstream payload.
const DatasetKey = "dataset:crossings"

// CrossingRepository serves the crossing dataset from the cache and falls
// back to the upstream source on a miss. Cache failures never fail a fetch.
type CrossingRepository struct {
	source repository.CrossingPayloadSource
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func NewCrossingRepository(
	source repository.CrossingPayloadSource,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *CrossingRepository {
	return &CrossingRepository{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CrossingRepository) FetchCrossings(ctx context.Context) ([]domain.RawCrossingRecord, error) {
	cached, err := r.cache.Get(ctx, DatasetKey)
	if err != nil {
		r.logger.Warn("Dataset cache unavailable, fetching upstream", zap.Error(err))
	}

	if cached != nil {
		records, _, err := domain.DecodeCrossingRecords(cached)
		if err == nil {
			r.logger.Debug("Dataset served from cache", zap.Int("records", len(records)))
			return records, nil
		}

		r.logger.Warn("Dropping undecodable cached dataset", zap.Error(err))
		if err := r.cache.Delete(ctx, DatasetKey); err != nil {
			r.logger.Warn("Failed to drop cached dataset", zap.Error(err))
		}
	}

	records, _, err := r.fetchAndStore(ctx)
	return records, err
}

// Invalidate drops the cached payload so the next fetch goes upstream.
func (r *CrossingRepository) Invalidate(ctx context.Context) error {
	if err := r.cache.Delete(ctx, DatasetKey); err != nil {
		return fmt.Errorf("failed to invalidate dataset cache: %w", err)
	}
	return nil
}

// Warm fetches the dataset upstream and stores it, returning the record count.
func (r *CrossingRepository) Warm(ctx context.Context) (int, error) {
	records, stored, err := r.fetchAndStore(ctx)
	if err != nil {
		return 0, err
	}
	if !stored {
		return len(records), fmt.Errorf("dataset fetched but not cached")
	}
	return len(records), nil
}

func (r *CrossingRepository) fetchAndStore(ctx context.Context) ([]domain.RawCrossingRecord, bool, error) {
	payload, err := r.source.FetchPayload(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	// decode before caching so a bad payload never lands in the cache
	records, skipped, err := domain.DecodeCrossingRecords(payload)
	if err != nil {
		return nil, false, err
	}
	if skipped > 0 {
		r.logger.Debug("Skipped malformed crossing records", zap.Int("skipped", skipped))
	}

	if err := r.cache.Set(ctx, DatasetKey, payload, r.ttl); err != nil {
		r.logger.Warn("Failed to cache dataset", zap.Error(err))
		return records, false, nil
	}

	r.logger.Info("Dataset cached", zap.Int("records", len(records)), zap.Duration("ttl", r.ttl))
	return records, true, nil
}
