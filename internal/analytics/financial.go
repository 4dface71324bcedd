package analytics

import (
	"shopmetrics/internal/catalog"
	"shopmetrics/internal/config"
)

// Assumptions are the named ratios behind the financial model. They are
// modeled estimates, not ledger facts: a deployment integrating real cost or
// tax data overrides each ratio independently through configuration instead
// of editing the derivation.
type Assumptions struct {
	// CostRatio is the assumed cost share of gross revenue (0.7 means a 30%
	// margin). Also used for per-product profit estimates.
	CostRatio float64
	// NetRevenueRatio models payment-processing fees (0.95 keeps 95% of gross).
	NetRevenueRatio float64
	// TaxRatio is applied to estimated profit.
	TaxRatio float64
	// RefundRatio is the assumed refunded share of gross revenue.
	RefundRatio float64

	// LowStockThreshold marks products with 0 < stock < threshold as low
	// stock. Stock exactly at the threshold is not low.
	LowStockThreshold int

	// TopLimit caps the top-selling product list.
	TopLimit int
}

// DefaultAssumptions returns the documented default ratios.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		CostRatio:         0.70,
		NetRevenueRatio:   0.95,
		TaxRatio:          0.20,
		RefundRatio:       0.02,
		LowStockThreshold: 10,
		TopLimit:          10,
	}
}

// AssumptionsFromConfig builds Assumptions from the application config.
func AssumptionsFromConfig(cfg *config.Config) Assumptions {
	return Assumptions{
		CostRatio:         cfg.AssumedCostRatio,
		NetRevenueRatio:   cfg.NetRevenueRatio,
		TaxRatio:          cfg.TaxRatio,
		RefundRatio:       cfg.RefundRatio,
		LowStockThreshold: cfg.LowStockThreshold,
		TopLimit:          cfg.TopProductsLimit,
	}
}

// DeriveFinancials computes the simplified profit/loss breakdown as a pure
// function of gross revenue. Margin is 0 when gross is 0.
func DeriveFinancials(gross float64, a Assumptions) FinancialReport {
	costs := gross * a.CostRatio
	profit := gross - costs

	margin := 0.0
	if gross > 0 {
		margin = profit / gross * 100
	}

	return FinancialReport{
		GrossRevenue:     gross,
		NetRevenue:       gross * a.NetRevenueRatio,
		Costs:            costs,
		Profit:           profit,
		ProfitMargin:     margin,
		EstimatedTax:     profit * a.TaxRatio,
		EstimatedRefunds: gross * a.RefundRatio,
	}
}

// DeriveInventory computes stock health over the catalog. Fast/slow mover
// classification needs sales-velocity history no collaborator supplies yet,
// so those lists stay empty.
func DeriveInventory(products []catalog.Product, a Assumptions) InventoryReport {
	report := InventoryReport{
		FastMoving: []string{},
		SlowMoving: []string{},
	}

	for _, p := range products {
		report.TotalValue += p.Price * float64(p.Stock)
		switch {
		case p.Stock == 0:
			report.OutOfStock++
		case p.Stock < a.LowStockThreshold:
			report.LowStock++
		}
	}

	return report
}
