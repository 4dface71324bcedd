package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/internal/analytics"
	"shopmetrics/internal/catalog"
	"shopmetrics/internal/datasource"
	"shopmetrics/internal/orders"
	"shopmetrics/internal/testsupport"
	"shopmetrics/internal/timeframe"
)

// fakeSource serves fixed in-memory collections, or fails when broken.
type fakeSource struct {
	orders   []orders.Order
	products []catalog.Product
	broken   bool
}

func (f *fakeSource) FetchOrders(_ context.Context, _ uint, since time.Time) ([]orders.Order, error) {
	if f.broken {
		return nil, errors.New("data source unreachable")
	}
	var result []orders.Order
	for _, o := range f.orders {
		if !o.CreatedAt.Before(since) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeSource) FetchProducts(_ context.Context, _ uint) ([]catalog.Product, error) {
	if f.broken {
		return nil, errors.New("data source unreachable")
	}
	return f.products, nil
}

func (f *fakeSource) FetchLiveSnapshot(_ context.Context, _ uint) (*datasource.LiveSnapshot, error) {
	if f.broken {
		return nil, errors.New("data source unreachable")
	}
	return &datasource.LiveSnapshot{}, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestEngine(source datasource.Source, now time.Time) *analytics.Engine {
	return analytics.NewEngine(
		source,
		analytics.DefaultAssumptions(),
		testsupport.GetLogger(),
		analytics.WithClock(fixedClock{now: now}),
	)
}

func TestEngineGeneratesConsistentReport(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	products := []catalog.Product{
		product("p1", "Shirt", "Apparel", 25, 12),
		product("p2", "Lamp", "Home", 60, 0),
		product("p3", "Rug", "Home", 90, 4),
	}

	source := &fakeSource{
		products: products,
		orders: []orders.Order{
			// current window
			{ID: "o1", CustomerID: strPtr("c1"), Status: orders.StatusDelivered, Total: 100,
				CreatedAt: now.AddDate(0, 0, -2),
				Items:     []orders.LineItem{{ProductID: "p1", UnitPrice: 25, Quantity: 4}}},
			{ID: "o2", CustomerID: strPtr("c2"), Status: orders.StatusShipped, Total: 180,
				CreatedAt: now.AddDate(0, 0, -5),
				Items:     []orders.LineItem{{ProductID: "p3", UnitPrice: 90, Quantity: 2}}},
			{ID: "o3", CustomerID: nil, Status: orders.StatusPending, Total: 20,
				CreatedAt: now.AddDate(0, 0, -10)},
			// comparison window
			{ID: "o4", CustomerID: strPtr("c1"), Status: orders.StatusDelivered, Total: 200,
				CreatedAt: now.AddDate(0, 0, -45)},
			// outside both windows: ignored entirely
			{ID: "o5", CustomerID: strPtr("c9"), Status: orders.StatusDelivered, Total: 9999,
				CreatedAt: now.AddDate(0, 0, -120)},
		},
	}

	engine := newTestEngine(source, now)
	report := engine.Generate(context.Background(), 1, analytics.Filters{Range: "30d"})

	require.NotNil(t, report)
	assert.False(t, report.Degraded)
	assert.Equal(t, uint(1), report.StoreID)
	assert.Equal(t, timeframe.WindowLast30Days, report.Window)

	// Revenue from the 3 current-window orders, growth against the 200 baseline
	assert.Equal(t, 300.0, report.Revenue.Total)
	assert.Equal(t, 200.0, report.Revenue.Previous)
	assert.Equal(t, 50.0, report.Revenue.Growth)
	assert.Equal(t, 100.0, report.Revenue.AvgOrderValue)

	// Bucket revenue equals window revenue
	var bucketSum float64
	for _, p := range report.Revenue.Daily {
		bucketSum += p.Revenue
	}
	assert.Equal(t, report.Revenue.Total, bucketSum)

	assert.Equal(t, 3, report.Orders.Total)

	// Products: p3 sold 2 at 90 (revenue 180), p1 sold 4 at 25 (revenue 100)
	require.Len(t, report.Products.TopSelling, 2)
	assert.Equal(t, "p1", report.Products.TopSelling[0].ProductID)
	assert.Equal(t, "p3", report.Products.TopSelling[1].ProductID)

	// Customers: guest order counts toward revenue but not the distinct count
	assert.Equal(t, 2, report.Customers.Total)
	assert.Equal(t, 150.0, report.Customers.AvgLifetimeValue)

	// Financial model runs over the window gross
	assert.Equal(t, 300.0, report.Financial.GrossRevenue)
	assert.InDelta(t, 90.0, report.Financial.Profit, 1e-9)
	assert.InDelta(t, 30.0, report.Financial.ProfitMargin, 1e-9)

	// Inventory over the whole catalog
	assert.Equal(t, 1, report.Inventory.OutOfStock)
	assert.Equal(t, 1, report.Inventory.LowStock)
}

func TestEngineIsIdempotent(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	source := &fakeSource{
		products: []catalog.Product{product("p1", "Shirt", "Apparel", 25, 12)},
		orders: []orders.Order{
			{ID: "o1", CustomerID: strPtr("c1"), Status: orders.StatusDelivered, Total: 50,
				CreatedAt: now.AddDate(0, 0, -1),
				Items:     []orders.LineItem{{ProductID: "p1", UnitPrice: 25, Quantity: 2}}},
		},
	}
	engine := newTestEngine(source, now)

	first := engine.Generate(context.Background(), 1, analytics.Filters{Range: "7d"})
	second := engine.Generate(context.Background(), 1, analytics.Filters{Range: "7d"})

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

func TestEngineEmptyStore(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(&fakeSource{}, now)

	report := engine.Generate(context.Background(), 1, analytics.Filters{Range: "30d"})

	require.NotNil(t, report)
	assert.False(t, report.Degraded)
	assert.Equal(t, 0.0, report.Revenue.Total)
	assert.Equal(t, 0.0, report.Revenue.AvgOrderValue)
	assert.Equal(t, 0.0, report.Revenue.Growth)
	assert.Equal(t, 0.0, report.Financial.ProfitMargin)
	assert.Equal(t, 0, report.Customers.Total)
	assert.Equal(t, 0.0, report.Customers.AvgLifetimeValue)
	assert.Empty(t, report.Products.TopSelling)
}

func TestEngineFallsBackWhenSourceFails(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(&fakeSource{broken: true}, now)

	report := engine.Generate(context.Background(), 7, analytics.Filters{Range: "30d"})

	// No error escapes; the report is schema-complete and flagged
	require.NotNil(t, report)
	assert.True(t, report.Degraded)
	assert.Equal(t, uint(7), report.StoreID)
	assert.NotEmpty(t, report.Revenue.Daily)
	assert.NotEmpty(t, report.Orders.ByStatus)
	assert.NotEmpty(t, report.Products.TopSelling)
	assert.Greater(t, report.Revenue.Total, 0.0)
	assert.Equal(t, report.Revenue.Total, report.Financial.GrossRevenue)

	// Same store and window always yields the same filler
	again := engine.Generate(context.Background(), 7, analytics.Filters{Range: "30d"})
	firstJSON, _ := json.Marshal(report)
	againJSON, _ := json.Marshal(again)
	assert.Equal(t, firstJSON, againJSON)
}

func TestEngineCategoryFilterScopesProducts(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	source := &fakeSource{
		products: []catalog.Product{
			product("p1", "Shirt", "Apparel", 25, 12),
			product("p2", "Lamp", "Home", 60, 3),
		},
		orders: []orders.Order{
			{ID: "o1", Status: orders.StatusDelivered, Total: 110, CreatedAt: now.AddDate(0, 0, -1),
				Items: []orders.LineItem{
					{ProductID: "p1", UnitPrice: 25, Quantity: 2},
					{ProductID: "p2", UnitPrice: 60, Quantity: 1},
				}},
		},
	}
	engine := newTestEngine(source, now)

	report := engine.Generate(context.Background(), 1, analytics.Filters{Range: "30d", Category: "Home"})

	require.Len(t, report.Products.TopSelling, 1)
	assert.Equal(t, "p2", report.Products.TopSelling[0].ProductID)
	require.Len(t, report.Products.Categories, 1)
	assert.Equal(t, "Home", report.Products.Categories[0].Category)

	// Inventory follows the category scope; low stock lamp only
	assert.Equal(t, 1, report.Inventory.LowStock)
	assert.Equal(t, 0, report.Inventory.OutOfStock)
}
