package analytics

import (
	"sort"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/orders"
)

// RankProducts accumulates per-product sales across the current-window line
// items and returns the top-N by units sold plus per-category rollups.
//
// Line items referencing a product missing from the catalog (deleted since the
// sale) are skipped rather than failing the computation. Profit is estimated
// via costRatio: profit = (unitPrice - unitPrice*costRatio) * quantity.
//
// Ranking order is units sold descending, revenue descending, then product id
// ascending, so equal inputs always produce an identical list.
func RankProducts(current []orders.Order, products []catalog.Product, costRatio float64, limit int) ProductsReport {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	type accumulator struct {
		product catalog.Product
		sold    int
		revenue float64
		profit  float64
	}

	acc := make(map[string]*accumulator)
	categorySold := make(map[string]int)
	categoryRevenue := make(map[string]float64)

	for _, o := range current {
		for _, item := range o.Items {
			product, ok := byID[item.ProductID]
			if !ok {
				// Referential gap: product deleted after the sale.
				continue
			}

			a, ok := acc[item.ProductID]
			if !ok {
				a = &accumulator{product: product}
				acc[item.ProductID] = a
			}

			lineRevenue := item.UnitPrice * float64(item.Quantity)
			a.sold += item.Quantity
			a.revenue += lineRevenue
			a.profit += (item.UnitPrice - item.UnitPrice*costRatio) * float64(item.Quantity)

			categorySold[product.Category] += item.Quantity
			categoryRevenue[product.Category] += lineRevenue
		}
	}

	ranked := make([]*accumulator, 0, len(acc))
	for _, a := range acc {
		ranked = append(ranked, a)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].sold != ranked[j].sold {
			return ranked[i].sold > ranked[j].sold
		}
		if ranked[i].revenue != ranked[j].revenue {
			return ranked[i].revenue > ranked[j].revenue
		}
		return ranked[i].product.ID < ranked[j].product.ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	topSelling := make([]ProductPerformance, 0, len(ranked))
	for _, a := range ranked {
		topSelling = append(topSelling, ProductPerformance{
			ProductID: a.product.ID,
			Name:      a.product.Name,
			Sold:      a.sold,
			Revenue:   a.revenue,
			Profit:    a.profit,
		})
	}

	// Category counts cover the whole catalog, not just sold products, so
	// categories with no sales in the window still appear with revenue 0.
	categoryProducts := make(map[string]int)
	for _, p := range products {
		categoryProducts[p.Category]++
	}

	names := make([]string, 0, len(categoryProducts))
	for name := range categoryProducts {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]CategorySales, 0, len(names))
	for _, name := range names {
		categories = append(categories, CategorySales{
			Category: name,
			Products: categoryProducts[name],
			Sold:     categorySold[name],
			Revenue:  categoryRevenue[name],
		})
	}

	return ProductsReport{
		TopSelling: topSelling,
		Categories: categories,
	}
}

// FilterByCategory narrows a catalog to one category. An empty category
// returns the catalog unchanged.
func FilterByCategory(products []catalog.Product, category string) []catalog.Product {
	if category == "" {
		return products
	}
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
