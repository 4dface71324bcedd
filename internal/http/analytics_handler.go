// Package http exposes the analytics report and realtime snapshot over fiber.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shopmetrics/internal/analytics"
	"shopmetrics/internal/realtime"
	"shopmetrics/internal/reportcache"
	"shopmetrics/internal/stores"
)

const (
	errInvalidStoreID = "Invalid store id"
	errStoreNotFound  = "Store not found"
)

// Handler bundles the dependencies of the HTTP surface.
type Handler struct {
	DB     *gorm.DB
	Engine *analytics.Engine
	Cache  *reportcache.Cache
	Hub    *realtime.Hub
	Logger *slog.Logger
}

// GetAnalyticsReport serves GET /api/v1/stores/:storeID/analytics.
// Query params: range (7d|30d|90d|1y), category, segment, limit.
func (h *Handler) GetAnalyticsReport(c *fiber.Ctx) error {
	storeID, err := parseStoreID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": errInvalidStoreID,
			"code":  "INVALID_STORE_ID",
		})
	}

	if _, err := stores.GetStoreOrNotFound(h.DB, storeID); err != nil {
		var notFound *stores.StoreNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": errStoreNotFound,
				"code":  "STORE_NOT_FOUND",
			})
		}
		h.Logger.Error("Failed to look up store", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up store",
			"code":  "STORE_LOOKUP_ERROR",
		})
	}

	filters := analytics.Filters{
		Range:    c.Query("range"),
		Category: c.Query("category"),
		Segment:  c.Query("segment"),
		Limit:    c.QueryInt("limit"),
	}

	if report := h.Cache.Get(c.Context(), storeID, filters); report != nil {
		return c.JSON(report)
	}

	report := h.Engine.Generate(c.Context(), storeID, filters)
	h.Cache.Set(c.Context(), storeID, filters, report)

	return c.JSON(report)
}

// GetRealtimeStatus serves GET /api/v1/stores/:storeID/realtime. The first
// request for a store starts its poller; subsequent requests read the current
// snapshot.
func (h *Handler) GetRealtimeStatus(c *fiber.Ctx) error {
	storeID, err := parseStoreID(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": errInvalidStoreID,
			"code":  "INVALID_STORE_ID",
		})
	}

	poller := h.Hub.Poller(storeID)
	if poller == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Realtime polling is shut down",
			"code":  "REALTIME_STOPPED",
		})
	}

	return c.JSON(poller.Status())
}

func parseStoreID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("storeID"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid store id")
	}
	return uint(id), nil
}
