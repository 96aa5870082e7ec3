package handler

import (
	"context"

	"word-quiz/internal/domain"
	"word-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the database and the parse cache are reachable.
type HealthHandler struct {
	db    Pinger
	cache domain.Cache
}

// NewHealthHandler creates a HealthHandler. cache may be nil when Redis is not configured.
func NewHealthHandler(db Pinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check godoc
// @Summary Health check
// @Description Pings the database and the parse cache
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx := c.UserContext()
	status := fiber.StatusOK
	body := fiber.Map{"status": "ok", "database": "ok", "cache": "disabled"}

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Error("Database health check failed", zap.Error(err))
		status = fiber.StatusServiceUnavailable
		body["status"], body["database"] = "unavailable", "unavailable"
	}

	if h.cache != nil {
		body["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			// Cache outages degrade the status only.
			logger.Get().Warn("Cache health check failed", zap.Error(err))
			body["cache"] = "unavailable"
			if status == fiber.StatusOK {
				body["status"] = "degraded"
			}
		}
	}

	return c.Status(status).JSON(body)
}
