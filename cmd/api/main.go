package main

// @title Milepost Service API
// @version 1.0.0
// @description Finds the railroad milepost nearest to a map position from the FRA highway-rail crossing inventory. Sessions keep the rail lines around their anchor and return the drawn layer as GeoJSON.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/milepost-service/docs/swagger"
	"github.com/milepost-service/internal/config"
	httpDelivery "github.com/milepost-service/internal/delivery/http"
	"github.com/milepost-service/internal/delivery/http/handler"
	"github.com/milepost-service/internal/domain/repository"
	"github.com/milepost-service/internal/infrastructure/fra"
	"github.com/milepost-service/internal/milepost"
	"github.com/milepost-service/internal/pkg/logger"
	"github.com/milepost-service/internal/repository/cache"
	"github.com/milepost-service/internal/repository/session"
	"github.com/milepost-service/internal/usecase"
	"github.com/milepost-service/internal/worker"
	"github.com/milepost-service/internal/worker/dataset"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Milepost Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_url", cfg.Dataset.URL),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	// 3. Dataset source, optionally behind the shared Redis cache
	fraClient := fra.NewClient(&cfg.Dataset, log)

	var crossingRepo repository.CrossingRepository = fraClient
	var redisClient *cache.Redis
	if cfg.Redis.Enabled && cfg.Dataset.CacheTTL > 0 {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, dataset will be fetched upstream", zap.Error(err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Failed to close Redis connection", zap.Error(err))
				}
			}()
			crossingRepo = cache.NewCrossingRepository(
				fraClient,
				cache.NewCacheRepository(redisClient),
				cfg.Dataset.CacheTTL,
				log,
			)
		}
	}

	// 4. Use cases
	catalog := usecase.NewCrossingCatalog(crossingRepo, cfg.Dataset.MemoryTTL, log)
	sessionStore := session.NewStore(&cfg.Session, log)

	params := pipelineParams(cfg.Milepost)
	segmentParams := params
	segmentParams.MilepostGapThreshold = cfg.Milepost.SegmentGapThreshold

	milepostUC := usecase.NewMilepostUseCase(catalog, sessionStore, params, log)
	segmentUC := usecase.NewSegmentUseCase(catalog, segmentParams, log)

	log.Info("Use cases initialized")

	// 5. HTTP
	var redisPinger handler.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}

	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewMilepostHandler(milepostUC, log),
		handler.NewSegmentHandler(segmentUC, log),
		handler.NewHealthHandler(catalog, sessionStore, redisPinger, log),
	)

	// 6. In-process catalog refresh
	var workerManager *worker.WorkerManager
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if cfg.Worker.Enabled {
		workerManager = worker.NewWorkerManager(log)
		workerManager.Register(dataset.NewRefreshWorker(
			catalog,
			cfg.Worker.RefreshInterval,
			cfg.Dataset.RequestTimeout,
			true,
			log,
		))
		if err := workerManager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancelWorkers()
	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}

func pipelineParams(c config.MilepostConfig) milepost.Params {
	return milepost.Params{
		MaxNearbyPoints:        c.MaxNearbyPoints,
		MaxDistanceMiles:       c.MaxDistanceMiles,
		MilepostGapThreshold:   c.MilepostGapThreshold,
		SpatialProximityMeters: c.SpatialProximityMeters,
		MaxPointsPerLine:       c.MaxPointsPerLine,
		RefetchDistanceMeters:  c.RefetchDistanceMeters,
		KeepUnprojectedLines:   c.KeepUnprojectedLines,
	}
}
