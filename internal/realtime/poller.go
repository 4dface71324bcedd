// Package realtime polls the reduced live-metric snapshot behind the
// dashboard's realtime widget.
package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shopmetrics/internal/datasource"
)

// Status is the poller's view of the snapshot plus its connectivity.
type Status struct {
	Snapshot    *datasource.LiveSnapshot `json:"snapshot"`
	Connected   bool                     `json:"connected"`
	LastSuccess time.Time                `json:"last_success"`
}

// Poller repeatedly fetches a store's live snapshot on a fixed interval.
// It has two states, polling and stopped. A successful fetch replaces the
// snapshot wholesale and marks the source connected; a failed fetch marks it
// disconnected but keeps the last good snapshot so the widget can render
// stale-but-present data. After Stop no state mutates: a fetch started before
// teardown that resolves afterwards is detected and discarded.
type Poller struct {
	source   datasource.Source
	storeID  uint
	interval time.Duration
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.RWMutex
	running     bool
	stopped     bool
	snapshot    *datasource.LiveSnapshot
	connected   bool
	lastSuccess time.Time
}

// NewPoller creates a poller for one store.
func NewPoller(source datasource.Source, storeID uint, interval time.Duration, logger *slog.Logger) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		source:   source,
		storeID:  storeID,
		interval: interval,
		logger:   logger.With(slog.String("component", "realtime_poller"), slog.Uint64("store_id", uint64(storeID))),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins polling: an immediate fetch, then one per interval until Stop.
// Calling Start on a running or stopped poller is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running || p.stopped {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.logger.Info("Starting realtime poller", slog.Duration("interval", p.interval))

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.poll()

		for {
			select {
			case <-ticker.C:
				p.poll()
			case <-p.ctx.Done():
				p.logger.Info("Realtime poller stopped")
				return
			}
		}
	}()
}

// Stop halts polling. The last snapshot remains readable.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.running = false
	p.stopped = true
	p.mu.Unlock()
	p.cancel()
}

// Running reports whether the poller is in the polling state.
func (p *Poller) Running() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Status returns the current snapshot and connectivity.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Status{
		Snapshot:    p.snapshot,
		Connected:   p.connected,
		LastSuccess: p.lastSuccess,
	}
}

func (p *Poller) poll() {
	snapshot, err := p.source.FetchLiveSnapshot(p.ctx, p.storeID)

	p.mu.Lock()
	defer p.mu.Unlock()

	// The fetch may have been in flight when Stop was called; its result
	// must not mutate stopped state.
	if p.stopped {
		return
	}

	if err != nil {
		p.connected = false
		p.logger.Warn("Live snapshot fetch failed, keeping stale snapshot", slog.Any("error", err))
		return
	}

	p.snapshot = snapshot
	p.connected = true
	p.lastSuccess = time.Now()
}
