package datasource

import (
	"context"
	"sync"
	"time"
)

// HealthTracker remembers whether the data source answered its last probe and
// retests after a TTL. It is explicit state owned by one instance constructed
// per process and passed by reference, not a hidden package-level cache.
type HealthTracker struct {
	probe  func(ctx context.Context) error
	retest time.Duration

	mu        sync.Mutex
	healthy   bool
	checkedAt time.Time
}

// NewHealthTracker creates a tracker around the given probe. The probe is
// typically a cheap source call against a known store.
func NewHealthTracker(probe func(ctx context.Context) error, retest time.Duration) *HealthTracker {
	return &HealthTracker{probe: probe, retest: retest}
}

// Healthy reports the cached probe outcome, re-running the probe when the
// cached result is older than the retest interval.
func (h *HealthTracker) Healthy(ctx context.Context) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.checkedAt.IsZero() && time.Since(h.checkedAt) < h.retest {
		return h.healthy
	}

	h.healthy = h.probe(ctx) == nil
	h.checkedAt = time.Now()
	return h.healthy
}

// MarkFailure records a failed fetch observed elsewhere, so the next Healthy
// call reflects it without waiting for the TTL.
func (h *HealthTracker) MarkFailure() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.healthy = false
	h.checkedAt = time.Now()
}
