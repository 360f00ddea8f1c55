package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/milepost-service/internal/config"
	"github.com/milepost-service/internal/infrastructure/fra"
	"github.com/milepost-service/internal/pkg/logger"
	"github.com/milepost-service/internal/repository/cache"
	"github.com/milepost-service/internal/worker"
	"github.com/milepost-service/internal/worker/dataset"
	"go.uber.org/zap"
)

// Keeps the shared Redis copy of the dataset fresh so API instances never
// wait on the upstream download.
func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Dataset Refresh Worker",
		zap.Duration("interval", cfg.Worker.RefreshInterval),
		zap.Duration("cache_ttl", cfg.Dataset.CacheTTL))

	if cfg.Dataset.CacheTTL <= cfg.Worker.RefreshInterval {
		log.Warn("Cache TTL does not outlive the refresh interval, the cached dataset will lapse between refreshes")
	}

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Dataset repository
	crossingRepo := cache.NewCrossingRepository(
		fra.NewClient(&cfg.Dataset, log),
		cache.NewCacheRepository(redisClient),
		cfg.Dataset.CacheTTL,
		log,
	)

	// 5. Worker
	refreshWorker := dataset.NewRefreshWorker(
		dataset.ReloadFunc(func(ctx context.Context) error {
			n, err := crossingRepo.Warm(ctx)
			if err != nil {
				return err
			}
			log.Debug("Dataset cache warmed", zap.Int("records", n))
			return nil
		}),
		cfg.Worker.RefreshInterval,
		cfg.Dataset.RequestTimeout,
		true,
		log,
	)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(refreshWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	stats := refreshWorker.Stats()
	log.Info("Worker shutdown complete",
		zap.Int64("refreshes", stats.Succeeded),
		zap.Int64("failures", stats.Failed))
}
