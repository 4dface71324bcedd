package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"shopmetrics/internal/datasource"
)

// HealthHandler reports component status for the service and its
// collaborators.
type HealthHandler struct {
	Health *datasource.HealthTracker
}

// GetHealth serves GET /health.
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	components := fiber.Map{"server": "healthy"}
	status := http.StatusOK

	if h.Health != nil {
		if h.Health.Healthy(c.Context()) {
			components["datasource"] = "healthy"
		} else {
			components["datasource"] = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	return c.Status(status).JSON(fiber.Map{"components": components})
}
