// Package dataset keeps the crossing dataset warm in the background.
package dataset

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/milepost-service/internal/worker"
	"go.uber.org/zap"
)

const workerName = "dataset-refresh"

// Reloader refreshes one copy of the dataset.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadFunc adapts a function to Reloader.
type ReloadFunc func(ctx context.Context) error

func (f ReloadFunc) Reload(ctx context.Context) error {
	return f(ctx)
}

// Stats counts refresh outcomes since start.
type Stats struct {
	Succeeded int64
	Failed    int64
}

// RefreshWorker reloads the dataset on a fixed interval. A failed refresh is
// logged and retried on the next tick; whatever was loaded before stays in
// place.
type RefreshWorker struct {
	*worker.BaseWorker

	target     Reloader
	interval   time.Duration
	timeout    time.Duration
	runOnStart bool

	succeeded atomic.Int64
	failed    atomic.Int64
}

// NewRefreshWorker - timeout bounds one refresh; zero means no bound.
func NewRefreshWorker(
	target Reloader,
	interval time.Duration,
	timeout time.Duration,
	runOnStart bool,
	logger *zap.Logger,
) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker(workerName, logger),
		target:     target,
		interval:   interval,
		timeout:    timeout,
		runOnStart: runOnStart,
	}
}

func (w *RefreshWorker) Start(ctx context.Context) error {
	w.Logger().Info("Dataset refresh worker started",
		zap.Duration("interval", w.interval),
		zap.Bool("run_on_start", w.runOnStart))

	if w.runOnStart {
		w.refresh(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Context canceled, stopping dataset refresh worker")
			return nil
		case <-w.StopChan():
			w.Logger().Info("Stop signal received, stopping dataset refresh worker")
			return nil
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) Stats() Stats {
	return Stats{
		Succeeded: w.succeeded.Load(),
		Failed:    w.failed.Load(),
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := w.target.Reload(ctx); err != nil {
		w.failed.Add(1)
		w.Logger().Error("Dataset refresh failed", zap.Error(err))
		return
	}

	w.succeeded.Add(1)
	w.Logger().Info("Dataset refreshed", zap.Duration("took", time.Since(start)))
}
