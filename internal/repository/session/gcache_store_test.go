package session

import (
	"context"
	"testing"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/milepost-service/internal/config"
	apperrors "github.com/milepost-service/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(&config.SessionConfig{CacheSize: 10, TTL: time.Hour}, zap.NewNop())

	s, err := store.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.True(t, s.State().IsEmpty())
	assert.Equal(t, 1, store.Count())

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, store.Delete(ctx, s.ID))
	assert.Equal(t, 0, store.Count())

	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	err = store.Delete(ctx, s.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestStore_UnknownSession(t *testing.T) {
	store := NewStore(&config.SessionConfig{CacheSize: 10, TTL: time.Hour}, zap.NewNop())

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestStore_ExpirationAndTouch(t *testing.T) {
	ctx := context.Background()
	clock := gcache.NewFakeClock()
	store := newStore(&config.SessionConfig{CacheSize: 10, TTL: time.Minute}, clock, zap.NewNop())

	kept, err := store.Create(ctx)
	require.NoError(t, err)
	dropped, err := store.Create(ctx)
	require.NoError(t, err)

	clock.Advance(40 * time.Second)
	require.NoError(t, store.Touch(ctx, kept))

	clock.Advance(40 * time.Second)

	_, err = store.Get(ctx, kept.ID)
	assert.NoError(t, err)

	_, err = store.Get(ctx, dropped.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store := NewStore(&config.SessionConfig{CacheSize: 2, TTL: time.Hour}, zap.NewNop())

	first, _ := store.Create(ctx)
	second, _ := store.Create(ctx)

	// use first so second becomes the eviction candidate
	_, err := store.Get(ctx, first.ID)
	require.NoError(t, err)

	_, err = store.Create(ctx)
	require.NoError(t, err)

	_, err = store.Get(ctx, first.ID)
	assert.NoError(t, err)
	_, err = store.Get(ctx, second.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.Equal(t, 2, store.Count())
}

func TestStore_TouchDoesNotResurrectDeleted(t *testing.T) {
	ctx := context.Background()
	store := NewStore(&config.SessionConfig{CacheSize: 10, TTL: time.Hour}, zap.NewNop())

	sess, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, sess.ID))

	err = store.Touch(ctx, sess)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.Equal(t, 0, store.Count())
}
