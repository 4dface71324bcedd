package realtime

import (
	"log/slog"
	"sync"
	"time"

	"shopmetrics/internal/datasource"
)

// Hub owns one poller per store with a dashboard open. Pollers are created
// lazily on first request and all torn down together on shutdown.
type Hub struct {
	source   datasource.Source
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pollers map[uint]*Poller
	closed  bool
}

// NewHub creates an empty hub.
func NewHub(source datasource.Source, interval time.Duration, logger *slog.Logger) *Hub {
	return &Hub{
		source:   source,
		interval: interval,
		logger:   logger,
		pollers:  make(map[uint]*Poller),
	}
}

// Poller returns the store's poller, starting one if needed. Returns nil
// after the hub has been stopped.
func (h *Hub) Poller(storeID uint) *Poller {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	p, ok := h.pollers[storeID]
	if !ok {
		p = NewPoller(h.source, storeID, h.interval, h.logger)
		p.Start()
		h.pollers[storeID] = p
	}
	return p
}

// Stop tears down every poller. The hub accepts no new stores afterwards.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, p := range h.pollers {
		p.Stop()
	}
}
