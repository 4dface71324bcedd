// Package analytics turns raw order and product records into the
// multi-dimensional performance report behind the merchant dashboard.
//
// The package is organized into focused modules:
//   - engine.go: orchestration, windows the order set and fans out sub-computations
//   - revenue.go: revenue totals, growth, order funnel, trend buckets
//   - products.go: top-N product ranking and category rollups
//   - customers.go: customer segmentation and the pluggable intelligence strategy
//   - financial.go: ratio-based profit/loss model and inventory health
//   - fallback.go: degraded synthetic reports for data-source outages
//   - report.go: the report contract
package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/datasource"
	"shopmetrics/internal/orders"
	"shopmetrics/internal/pkg/async"
	"shopmetrics/internal/timeframe"
)

// Engine computes analytics reports. It holds no per-store state: every
// Generate call builds private accumulators and returns a fresh report, so
// concurrent calls never interact.
type Engine struct {
	source      datasource.Source
	customers   CustomerIntelligence
	assumptions Assumptions
	clock       timeframe.Clock
	logger      *slog.Logger
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithCustomerIntelligence substitutes the customer data strategy.
func WithCustomerIntelligence(ci CustomerIntelligence) EngineOption {
	return func(e *Engine) { e.customers = ci }
}

// WithClock substitutes the clock, fixing "now" for tests.
func WithClock(clock timeframe.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine creates an analytics engine over the given source.
func NewEngine(source datasource.Source, assumptions Assumptions, logger *slog.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		source:      source,
		customers:   NoopCustomerIntelligence{},
		assumptions: assumptions,
		clock:       timeframe.SystemClock{},
		logger:      logger.With(slog.String("component", "analytics_engine")),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate computes the report for one store under the given filters. It
// never fails: when the data source is unavailable it returns a synthetic
// report with Degraded set instead of propagating the error.
func (e *Engine) Generate(ctx context.Context, storeID uint, filters Filters) *Report {
	window := timeframe.Resolve(filters.Range, e.clock)

	orderSet, products, err := e.fetch(ctx, storeID, window)
	if err != nil {
		e.logger.Error("Data source unavailable, serving degraded report",
			slog.Uint64("store_id", uint64(storeID)),
			slog.Any("error", err))
		return FallbackReport(storeID, window, e.assumptions)
	}

	return e.Compute(ctx, storeID, window, filters, orderSet, products)
}

// Compute derives the report from already-fetched records. It is a pure
// function of its inputs plus the engine's assumptions: identical inputs
// yield identical reports.
func (e *Engine) Compute(ctx context.Context, storeID uint, window timeframe.Window, filters Filters, orderSet []orders.Order, products []catalog.Product) *Report {
	current, previous := partition(orderSet, window)

	scopedProducts := FilterByCategory(products, filters.Category)
	limit := filters.Limit
	if limit <= 0 {
		limit = e.assumptions.TopLimit
	}

	customerIDs := DistinctCustomerIDs(current)

	// Fan out the independent sub-computations the way the dashboard fans
	// out its metric queries.
	results := async.Run(ctx, []async.Task{
		{
			Name: "revenue",
			Execute: func() (interface{}, error) {
				return AggregateRevenue(current, previous), nil
			},
		},
		{
			Name: "orders",
			Execute: func() (interface{}, error) {
				return AggregateOrders(current), nil
			},
		},
		{
			Name: "products",
			Execute: func() (interface{}, error) {
				return RankProducts(current, scopedProducts, e.assumptions.CostRatio, limit), nil
			},
		},
		{
			Name: "customers",
			Execute: func() (interface{}, error) {
				breakdown, err := e.customers.Breakdown(ctx, storeID, customerIDs)
				if err != nil {
					e.logger.Warn("Customer intelligence unavailable, reporting zeros",
						slog.Any("error", err))
					breakdown = CustomerBreakdown{Segments: []CustomerSegment{}}
				}
				return breakdown, nil
			},
		},
		{
			Name: "inventory",
			Execute: func() (interface{}, error) {
				return DeriveInventory(scopedProducts, e.assumptions), nil
			},
		},
	})

	revenue, _ := results["revenue"].Data.(RevenueReport)
	orderReport, _ := results["orders"].Data.(OrdersReport)
	productReport, _ := results["products"].Data.(ProductsReport)
	breakdown, _ := results["customers"].Data.(CustomerBreakdown)
	inventory, _ := results["inventory"].Data.(InventoryReport)

	return &Report{
		StoreID:     storeID,
		Window:      window.Token,
		GeneratedAt: window.Now,
		Degraded:    false,
		Revenue:     revenue,
		Orders:      orderReport,
		Products:    productReport,
		Customers:   SegmentCustomers(customerIDs, revenue.Total, breakdown),
		Traffic:     DeriveTraffic(breakdown),
		Financial:   DeriveFinancials(revenue.Total, e.assumptions),
		Inventory:   inventory,
	}
}

// fetch pulls both collections concurrently; one failing fetch fails the
// whole live path so the fallback takes over.
func (e *Engine) fetch(ctx context.Context, storeID uint, window timeframe.Window) ([]orders.Order, []catalog.Product, error) {
	results := async.Run(ctx, []async.Task{
		{
			Name: "orders",
			Execute: func() (interface{}, error) {
				return e.source.FetchOrders(ctx, storeID, window.CompareCutoff)
			},
		},
		{
			Name: "products",
			Execute: func() (interface{}, error) {
				return e.source.FetchProducts(ctx, storeID)
			},
		},
	})

	for _, name := range []string{"orders", "products"} {
		result, ok := results[name]
		if !ok {
			return nil, nil, fmt.Errorf("fetch %s did not complete before cancellation", name)
		}
		if result.Err != nil {
			return nil, nil, result.Err
		}
	}

	orderSet, _ := results["orders"].Data.([]orders.Order)
	products, _ := results["products"].Data.([]catalog.Product)
	return orderSet, products, nil
}

// partition splits orders into the current and comparison windows; orders
// outside both are dropped from windowed metrics.
func partition(orderSet []orders.Order, window timeframe.Window) (current, previous []orders.Order) {
	for _, o := range orderSet {
		switch {
		case window.InCurrent(o.CreatedAt):
			current = append(current, o)
		case window.InComparison(o.CreatedAt):
			previous = append(previous, o)
		}
	}
	return current, previous
}
