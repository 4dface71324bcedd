package datasource

import (
	"context"
	"time"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/orders"
)

// TimeoutSource bounds every fetch with a deadline so no caller blocks
// indefinitely. A fetch that exceeds the deadline surfaces as a plain error,
// feeding the engine's degraded fallback or the poller's stale-snapshot path.
type TimeoutSource struct {
	inner   Source
	timeout time.Duration
}

// WithTimeout wraps a Source with a per-call deadline.
func WithTimeout(inner Source, timeout time.Duration) *TimeoutSource {
	return &TimeoutSource{inner: inner, timeout: timeout}
}

func (s *TimeoutSource) FetchOrders(ctx context.Context, storeID uint, since time.Time) ([]orders.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.inner.FetchOrders(ctx, storeID, since)
}

func (s *TimeoutSource) FetchProducts(ctx context.Context, storeID uint) ([]catalog.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.inner.FetchProducts(ctx, storeID)
}

func (s *TimeoutSource) FetchLiveSnapshot(ctx context.Context, storeID uint) (*LiveSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.inner.FetchLiveSnapshot(ctx, storeID)
}
