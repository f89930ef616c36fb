package handlers

import (
	"context"
	"time"

	"catalog/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	store   repositories.Store
	version string
}

func NewHealthHandler(store repositories.Store, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "catalog",
		"version": h.version,
	})
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, database, code := "healthy", "up", fiber.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("health check: database ping failed")
		status, database, code = "unhealthy", "down", fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
