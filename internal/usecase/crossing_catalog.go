package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/milepost-service/internal/domain/repository"
	"github.com/milepost-service/internal/milepost"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	catalogFlightKey = "crossings"

	// forced loads never join a plain one, whose result may come from Redis
	catalogForceFlightKey = catalogFlightKey + ":force"
)

// CrossingSource hands out the current dataset index.
type CrossingSource interface {
	// Index returns an index no older than the catalog's TTL. force skips
	// every cache layer.
	Index(ctx context.Context, force bool) (*milepost.CrossingIndex, error)
}

// CatalogStats describes the loaded snapshot.
type CatalogStats struct {
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
	Loaded   bool      `json:"loaded"`
}

type catalogSnapshot struct {
	index    *milepost.CrossingIndex
	loadedAt time.Time
}

// CrossingCatalog keeps the dataset and its R-tree in memory. Concurrent
// loads share one upstream fetch.
type CrossingCatalog struct {
	repo   repository.CrossingRepository
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *catalogSnapshot
}

func NewCrossingCatalog(
	repo repository.CrossingRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *CrossingCatalog {
	return &CrossingCatalog{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (c *CrossingCatalog) Index(ctx context.Context, force bool) (*milepost.CrossingIndex, error) {
	if !force {
		if idx := c.fresh(); idx != nil {
			return idx, nil
		}
	}
	return c.load(ctx, force)
}

// Reload replaces the snapshot with a fresh load from the repository.
func (c *CrossingCatalog) Reload(ctx context.Context) error {
	_, err := c.load(ctx, false)
	return err
}

func (c *CrossingCatalog) Stats() CatalogStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return CatalogStats{}
	}
	return CatalogStats{
		Records:  c.snapshot.index.Len(),
		LoadedAt: c.snapshot.loadedAt,
		Loaded:   true,
	}
}

func (c *CrossingCatalog) fresh() *milepost.CrossingIndex {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil || c.ttl <= 0 {
		return nil
	}
	if c.now().Sub(c.snapshot.loadedAt) >= c.ttl {
		return nil
	}
	return c.snapshot.index
}

func (c *CrossingCatalog) load(ctx context.Context, invalidate bool) (*milepost.CrossingIndex, error) {
	key := catalogFlightKey
	if invalidate {
		key = catalogForceFlightKey
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		if invalidate {
			if inv, ok := c.repo.(repository.CrossingInvalidator); ok {
				if err := inv.Invalidate(ctx); err != nil {
					c.logger.Warn("Failed to invalidate dataset cache", zap.Error(err))
				}
			}
		}

		start := c.now()
		records, err := c.repo.FetchCrossings(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load crossings: %w", err)
		}

		idx := milepost.NewCrossingIndex(records)

		c.mu.Lock()
		// a forced load that finished first keeps its newer snapshot
		if c.snapshot == nil || !c.snapshot.loadedAt.After(start) {
			c.snapshot = &catalogSnapshot{index: idx, loadedAt: c.now()}
		}
		c.mu.Unlock()

		c.logger.Info("Crossing catalog loaded",
			zap.Int("records", idx.Len()),
			zap.Duration("took", c.now().Sub(start)))
		return idx, nil
	})
	if err != nil {
		c.logger.Error("Crossing catalog load failed", zap.Error(err))
		return nil, err
	}

	if shared {
		c.logger.Debug("Crossing catalog load shared")
	}
	return v.(*milepost.CrossingIndex), nil
}
