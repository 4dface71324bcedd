package http

import (
	"github.com/gofiber/fiber/v2"
)

// MountRoutes registers the API surface on the fiber app.
func MountRoutes(app *fiber.App, handler *Handler, health *HealthHandler) {
	app.Get("/health", health.GetHealth)

	api := app.Group("/api/v1")
	api.Get("/stores/:storeID/analytics", handler.GetAnalyticsReport)
	api.Get("/stores/:storeID/realtime", handler.GetRealtimeStatus)
}
