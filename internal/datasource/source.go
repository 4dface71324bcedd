// Package datasource defines the contract to the order/product collaborators
// and the adapters that fulfil it.
package datasource

import (
	"context"
	"time"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/orders"
)

// LiveSnapshot is the reduced metric set behind the realtime dashboard
// widget. It is replaced wholesale on every successful poll, never merged
// field by field.
type LiveSnapshot struct {
	ActiveUsers    int        `json:"active_users"`
	TodaysRevenue  float64    `json:"todays_revenue"`
	TodaysOrders   int        `json:"todays_orders"`
	ConversionRate float64    `json:"conversion_rate"`
	LastOrderAt    *time.Time `json:"last_order_at"`
}

// Source supplies the raw records the engine aggregates. Implementations own
// transport and serialization; the engine only sees in-memory record shapes.
type Source interface {
	// FetchOrders returns all orders for a store created at or after since,
	// with line items included.
	FetchOrders(ctx context.Context, storeID uint, since time.Time) ([]orders.Order, error)
	// FetchProducts returns the store's full catalog.
	FetchProducts(ctx context.Context, storeID uint) ([]catalog.Product, error)
	// FetchLiveSnapshot returns the cheap live-metric probe for the store.
	FetchLiveSnapshot(ctx context.Context, storeID uint) (*LiveSnapshot, error)
}
