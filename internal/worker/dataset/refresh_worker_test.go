package dataset

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/milepost-service/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRefreshWorker_RunsOnStartAndOnTicks(t *testing.T) {
	var calls atomic.Int32
	target := ReloadFunc(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	w := NewRefreshWorker(target, 10*time.Millisecond, time.Second, true, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.Succeeded, int64(3))
	assert.Zero(t, stats.Failed)
}

func TestRefreshWorker_FailuresAreCounted(t *testing.T) {
	target := ReloadFunc(func(ctx context.Context) error {
		return errors.New("dataset API error: status 500")
	})

	w := NewRefreshWorker(target, time.Hour, 0, true, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	assert.Eventually(t, func() bool { return w.Stats().Failed == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
	assert.Zero(t, w.Stats().Succeeded)
}

func TestRefreshWorker_TimeoutBoundsReload(t *testing.T) {
	var sawDeadline atomic.Bool
	target := ReloadFunc(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		return nil
	})

	w := NewRefreshWorker(target, time.Hour, time.Minute, true, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	assert.Eventually(t, func() bool { return w.Stats().Succeeded == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.True(t, sawDeadline.Load())
}

func TestWorkerManager_StartsAndStopsRefreshWorker(t *testing.T) {
	var calls atomic.Int32
	target := ReloadFunc(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	m := worker.NewWorkerManager(zap.NewNop()).WithShutdownTimeout(time.Second)
	m.Register(NewRefreshWorker(target, time.Hour, 0, true, zap.NewNop()))

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.NoError(t, m.Stop())
}
