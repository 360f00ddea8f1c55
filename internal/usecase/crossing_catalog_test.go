package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/milepost-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCrossingRepository struct {
	mock.Mock
}

func (m *mockCrossingRepository) FetchCrossings(ctx context.Context) ([]domain.RawCrossingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawCrossingRecord), args.Error(1)
}

type mockCachedCrossingRepository struct {
	mockCrossingRepository
}

func (m *mockCachedCrossingRepository) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func catalogRecords() []domain.RawCrossingRecord {
	mp := domain.FlexString("1.5")
	return []domain.RawCrossingRecord{
		{Lat: "41.0", Long: "-87.0", Railroad: "BNSF", Milepost: &mp},
		{Lat: "41.1", Long: "-87.1", Railroad: "UP", Milepost: &mp},
	}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestCrossingCatalog_CachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	repo := &mockCrossingRepository{}
	repo.On("FetchCrossings", ctx).Return(catalogRecords(), nil)

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	catalog := NewCrossingCatalog(repo, 10*time.Minute, zap.NewNop())
	catalog.now = clock.Now

	first, err := catalog.Index(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len())

	clock.Advance(5 * time.Minute)
	second, err := catalog.Index(ctx, false)
	require.NoError(t, err)
	assert.Same(t, first, second)
	repo.AssertNumberOfCalls(t, "FetchCrossings", 1)

	clock.Advance(6 * time.Minute)
	third, err := catalog.Index(ctx, false)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	repo.AssertNumberOfCalls(t, "FetchCrossings", 2)

	stats := catalog.Stats()
	assert.True(t, stats.Loaded)
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, clock.Now(), stats.LoadedAt)
}

func TestCrossingCatalog_ZeroTTLAlwaysLoads(t *testing.T) {
	ctx := context.Background()
	repo := &mockCrossingRepository{}
	repo.On("FetchCrossings", ctx).Return(catalogRecords(), nil)

	catalog := NewCrossingCatalog(repo, 0, zap.NewNop())

	_, err := catalog.Index(ctx, false)
	require.NoError(t, err)
	_, err = catalog.Index(ctx, false)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "FetchCrossings", 2)
}

func TestCrossingCatalog_ForceInvalidates(t *testing.T) {
	ctx := context.Background()
	repo := &mockCachedCrossingRepository{}
	repo.On("FetchCrossings", ctx).Return(catalogRecords(), nil)
	repo.On("Invalidate", ctx).Return(errors.New("redis down"))

	catalog := NewCrossingCatalog(repo, time.Hour, zap.NewNop())

	_, err := catalog.Index(ctx, false)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Invalidate", mock.Anything)

	// invalidation errors do not block the reload
	_, err = catalog.Index(ctx, true)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "Invalidate", 1)
	repo.AssertNumberOfCalls(t, "FetchCrossings", 2)
}

func TestCrossingCatalog_LoadFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mockCrossingRepository{}
	repo.On("FetchCrossings", ctx).Return(nil, errors.New("status 500")).Once()
	repo.On("FetchCrossings", ctx).Return(catalogRecords(), nil).Once()

	catalog := NewCrossingCatalog(repo, time.Hour, zap.NewNop())

	idx, err := catalog.Index(ctx, false)
	require.Error(t, err)
	assert.Nil(t, idx)
	assert.Contains(t, err.Error(), "status 500")
	assert.False(t, catalog.Stats().Loaded)

	require.NoError(t, catalog.Reload(ctx))
	assert.Equal(t, 2, catalog.Stats().Records)
}

func TestCrossingCatalog_ConcurrentCallersShareLoad(t *testing.T) {
	ctx := context.Background()
	repo := &mockCrossingRepository{}
	repo.On("FetchCrossings", ctx).
		Run(func(mock.Arguments) { time.Sleep(20 * time.Millisecond) }).
		Return(catalogRecords(), nil)

	catalog := NewCrossingCatalog(repo, time.Hour, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx, err := catalog.Index(ctx, false)
			assert.NoError(t, err)
			assert.Equal(t, 2, idx.Len())
		}()
	}
	wg.Wait()

	repo.AssertNumberOfCalls(t, "FetchCrossings", 1)
}

func TestCrossingCatalog_ForcedLoadDoesNotJoinPlainLoad(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	repo := &mockCachedCrossingRepository{}
	repo.On("FetchCrossings", ctx).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(catalogRecords()[:1], nil).Once()
	repo.On("FetchCrossings", ctx).Return(catalogRecords(), nil).Once()
	repo.On("Invalidate", ctx).Return(nil).Once()

	catalog := NewCrossingCatalog(repo, time.Hour, zap.NewNop())

	plain := make(chan int, 1)
	go func() {
		idx, err := catalog.Index(ctx, false)
		assert.NoError(t, err)
		plain <- idx.Len()
	}()
	<-started

	idx, err := catalog.Index(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	close(release)
	assert.Equal(t, 1, <-plain)
	assert.Equal(t, 2, catalog.Stats().Records)

	repo.AssertNumberOfCalls(t, "Invalidate", 1)
	repo.AssertNumberOfCalls(t, "FetchCrossings", 2)
}
