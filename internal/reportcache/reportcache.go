// Package reportcache memoizes live analytics reports in Redis.
//
// Caching is a performance optimization, never a correctness requirement: the
// engine recomputes from scratch whenever the cache misses or is disabled,
// and only live (non-degraded) reports are stored so a cached report is
// always byte-for-byte what the engine produced for those filters.
package reportcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"shopmetrics/internal/analytics"
)

// Cache stores serialized reports keyed by store and filters with a TTL.
// A nil *Cache is valid and disables memoization.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to Redis and returns a report cache. Addr empty returns nil
// (caching disabled) without error.
func New(addr string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "report_cache")),
	}, nil
}

func key(storeID uint, filters analytics.Filters) string {
	return fmt.Sprintf("report:%d:%s:%s:%s:%d", storeID, filters.Range, filters.Category, filters.Segment, filters.Limit)
}

// Get returns the cached report for the store and filters, or nil on miss.
// Cache errors degrade to a miss.
func (c *Cache) Get(ctx context.Context, storeID uint, filters analytics.Filters) *analytics.Report {
	if c == nil {
		return nil
	}

	payload, err := c.client.Get(ctx, key(storeID, filters)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Report cache read failed", slog.Any("error", err))
		}
		return nil
	}

	var report analytics.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		c.logger.Warn("Discarding unparsable cached report", slog.Any("error", err))
		return nil
	}
	return &report
}

// Set stores a report. Degraded reports are never cached: filler must not
// outlive the outage that produced it.
func (c *Cache) Set(ctx context.Context, storeID uint, filters analytics.Filters, report *analytics.Report) {
	if c == nil || report == nil || report.Degraded {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("Report serialization failed", slog.Any("error", err))
		return
	}

	if err := c.client.Set(ctx, key(storeID, filters), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Report cache write failed", slog.Any("error", err))
	}
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
