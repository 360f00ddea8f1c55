package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/milepost-service/internal/domain/repository"
	"github.com/milepost-service/internal/usecase"
	"go.uber.org/zap"
)

// Pinger is any dependency with a liveness check.
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	catalog  *usecase.CrossingCatalog
	sessions repository.SessionRepository
	redis    Pinger
	logger   *zap.Logger
}

// NewHealthHandler - redis may be nil when the shared cache is disabled
func NewHealthHandler(
	catalog *usecase.CrossingCatalog,
	sessions repository.SessionRepository,
	redis Pinger,
	logger *zap.Logger,
) *HealthHandler {
	return &HealthHandler{
		catalog:  catalog,
		sessions: sessions,
		redis:    redis,
		logger:   logger,
	}
}

// Health godoc
// @Summary Service health
// @Description Reports the Redis cache, the session count and the crossing catalog.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := "healthy"
	redisStatus := "disabled"

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		redisStatus = "up"
		if err := h.redis.Health(ctx); err != nil {
			h.logger.Warn("Redis health check failed", zap.Error(err))
			redisStatus = "down"
			// the service keeps working without the shared cache
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status":   status,
		"time":     time.Now(),
		"sessions": h.sessions.Count(),
		"catalog":  h.catalog.Stats(),
		"redis":    redisStatus,
	})
}
