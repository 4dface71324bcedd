package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/internal/analytics"
	"shopmetrics/internal/catalog"
	"shopmetrics/internal/orders"
)

func product(id, name, category string, price float64, stock int) catalog.Product {
	return catalog.Product{ID: id, Name: name, Category: category, Price: price, Stock: stock, Visible: true}
}

func orderWithItems(createdAt time.Time, items ...orders.LineItem) orders.Order {
	o := orders.Order{ID: "o-" + createdAt.Format("150405.000000"), Status: orders.StatusDelivered, CreatedAt: createdAt}
	for _, item := range items {
		o.Total += item.UnitPrice * float64(item.Quantity)
	}
	o.Items = items
	return o
}

func TestRankProductsBySold(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	products := []catalog.Product{
		product("a", "Product A", "Apparel", 10, 5),
		product("b", "Product B", "Apparel", 5, 5),
	}

	// A: 5 units at 10 (revenue 50); B: 10 units at 5 (revenue 50)
	current := []orders.Order{
		orderWithItems(now,
			orders.LineItem{ProductID: "a", UnitPrice: 10, Quantity: 5},
			orders.LineItem{ProductID: "b", UnitPrice: 5, Quantity: 10},
		),
	}

	report := analytics.RankProducts(current, products, 0.7, 10)

	require.Len(t, report.TopSelling, 2)
	assert.Equal(t, "b", report.TopSelling[0].ProductID)
	assert.Equal(t, 10, report.TopSelling[0].Sold)
	assert.Equal(t, "a", report.TopSelling[1].ProductID)
	assert.Equal(t, 5, report.TopSelling[1].Sold)
}

func TestRankProductsTieBreaks(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	products := []catalog.Product{
		product("a", "Product A", "Apparel", 10, 5),
		product("b", "Product B", "Apparel", 20, 5),
		product("c", "Product C", "Apparel", 10, 5),
	}

	// All sold 4 units; b has higher revenue; a and c tie fully except id
	current := []orders.Order{
		orderWithItems(now,
			orders.LineItem{ProductID: "a", UnitPrice: 10, Quantity: 4},
			orders.LineItem{ProductID: "b", UnitPrice: 20, Quantity: 4},
			orders.LineItem{ProductID: "c", UnitPrice: 10, Quantity: 4},
		),
	}

	report := analytics.RankProducts(current, products, 0.7, 10)

	require.Len(t, report.TopSelling, 3)
	assert.Equal(t, "b", report.TopSelling[0].ProductID) // revenue tie-break
	assert.Equal(t, "a", report.TopSelling[1].ProductID) // id tie-break
	assert.Equal(t, "c", report.TopSelling[2].ProductID)
}

func TestRankProductsProfitEstimate(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	products := []catalog.Product{product("a", "Product A", "Apparel", 100, 5)}
	current := []orders.Order{
		orderWithItems(now, orders.LineItem{ProductID: "a", UnitPrice: 100, Quantity: 2}),
	}

	report := analytics.RankProducts(current, products, 0.7, 10)

	require.Len(t, report.TopSelling, 1)
	assert.Equal(t, 200.0, report.TopSelling[0].Revenue)
	// 30% assumed margin on 200 revenue
	assert.InDelta(t, 60.0, report.TopSelling[0].Profit, 1e-9)
}

func TestRankProductsSkipsDeletedProducts(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	products := []catalog.Product{product("a", "Product A", "Apparel", 10, 5)}

	current := []orders.Order{
		orderWithItems(now,
			orders.LineItem{ProductID: "a", UnitPrice: 10, Quantity: 1},
			orders.LineItem{ProductID: "deleted", UnitPrice: 99, Quantity: 3},
		),
	}

	report := analytics.RankProducts(current, products, 0.7, 10)

	// The unresolved line item is skipped, not fatal
	require.Len(t, report.TopSelling, 1)
	assert.Equal(t, "a", report.TopSelling[0].ProductID)
}

func TestRankProductsTruncatesToLimit(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	var products []catalog.Product
	var items []orders.LineItem
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		products = append(products, product(id, "Product "+id, "Apparel", 10, 5))
		items = append(items, orders.LineItem{ProductID: id, UnitPrice: 10, Quantity: 1})
	}
	current := []orders.Order{orderWithItems(now, items...)}

	report := analytics.RankProducts(current, products, 0.7, 3)

	assert.Len(t, report.TopSelling, 3)
}

func TestCategoryRollupIncludesUnsoldCategories(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	products := []catalog.Product{
		product("a", "Shirt", "Apparel", 10, 5),
		product("b", "Lamp", "Home", 30, 5),
		product("c", "Rug", "Home", 50, 5),
	}

	current := []orders.Order{
		orderWithItems(now, orders.LineItem{ProductID: "a", UnitPrice: 10, Quantity: 2}),
	}

	report := analytics.RankProducts(current, products, 0.7, 10)

	require.Len(t, report.Categories, 2)

	byName := make(map[string]analytics.CategorySales)
	var revenueSum float64
	for _, c := range report.Categories {
		byName[c.Category] = c
		revenueSum += c.Revenue
	}

	assert.Equal(t, 1, byName["Apparel"].Products)
	assert.Equal(t, 20.0, byName["Apparel"].Revenue)

	// Home has catalog products but no window sales: present with revenue 0
	assert.Equal(t, 2, byName["Home"].Products)
	assert.Equal(t, 0.0, byName["Home"].Revenue)

	// Category revenue sums to matched line-item revenue
	assert.Equal(t, 20.0, revenueSum)
}

func TestFilterByCategory(t *testing.T) {
	products := []catalog.Product{
		product("a", "Shirt", "Apparel", 10, 5),
		product("b", "Lamp", "Home", 30, 5),
	}

	assert.Len(t, analytics.FilterByCategory(products, ""), 2)

	filtered := analytics.FilterByCategory(products, "Home")
	require.Len(t, filtered, 1)
	assert.Equal(t, "b", filtered[0].ID)

	assert.Empty(t, analytics.FilterByCategory(products, "Beauty"))
}
