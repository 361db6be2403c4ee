package handlers

import (
	"context"
	"time"

	"github.com/vitokorn/buy-me-a-gift/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes registers the health check route.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth pings the database and answers 503 when it is unreachable.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, dbStatus, code := "healthy", "ok", fiber.StatusOK
	if err := database.Ping(ctx, h.db); err != nil {
		logrus.WithError(err).Warn("Health check: database unreachable")
		status, dbStatus, code = "unhealthy", "unreachable", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"time":     time.Now().Format(time.RFC3339),
		"database": dbStatus,
	})
}
