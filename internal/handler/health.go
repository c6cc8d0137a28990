package handler

import (
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// HealthHandler reports the liveness of the service and its backing stores.
type HealthHandler struct {
	db    *sqlx.DB
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db *sqlx.DB, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// HealthCheck handles GET /health. A degraded backing store turns the
// overall status to "degraded" but still answers 200 so load balancers
// keep the process in rotation while it can serve cached reads.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status: "ok",
		DB:     "ok",
		Cache:  "ok",
		Time:   time.Now().UTC(),
	}

	if err := h.db.PingContext(c.Context()); err != nil {
		logger.Get().Warn("Health check: database unreachable", zap.Error(err))
		resp.DB = "unreachable"
		resp.Status = "degraded"
	}
	if err := h.cache.Ping(c.Context()); err != nil {
		logger.Get().Warn("Health check: cache unreachable", zap.Error(err))
		resp.Cache = "unreachable"
		resp.Status = "degraded"
	}

	return c.JSON(resp)
}
