package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/milepost-service/internal/config"
	"github.com/milepost-service/internal/delivery/http/handler"
	"github.com/milepost-service/internal/delivery/http/middleware"
	"github.com/milepost-service/internal/pkg/errors"
	"github.com/milepost-service/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP server on top of fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	milepostHandler *handler.MilepostHandler
	segmentHandler  *handler.SegmentHandler
	healthHandler   *handler.HealthHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	milepostHandler *handler.MilepostHandler,
	segmentHandler *handler.SegmentHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	// a cold catalog load can take as long as the dataset request
	app := fiber.New(fiber.Config{
		AppName:      "Milepost Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Dataset.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		milepostHandler: milepostHandler,
		segmentHandler:  segmentHandler,
		healthHandler:   healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	sessions := api.Group("/sessions")
	sessions.Post("/", s.milepostHandler.CreateSession)
	sessions.Get("/:id", s.milepostHandler.GetSession)
	sessions.Delete("/:id", s.milepostHandler.DeleteSession)
	sessions.Post("/:id/markers", s.milepostHandler.UpdateMarkers)

	api.Post("/railroads/segments", s.segmentHandler.GetSegments)
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			return c.Status(fe.Code).JSON(utils.ErrorResponse{
				Error: errors.New("HTTP_ERROR", fe.Message, fe.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
