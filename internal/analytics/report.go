package analytics

import (
	"time"

	"shopmetrics/internal/timeframe"
)

// Filters selects the slice of data a report covers. It is a value object:
// two equal Filters always describe the same report for the same inputs.
type Filters struct {
	Range    string `json:"range"`
	Category string `json:"category,omitempty"`
	Segment  string `json:"segment,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Report is the engine's sole output: a composite, read-only snapshot for one
// store and one window. A new filter selection always produces a brand-new
// report; callers must not mutate it.
//
// Degraded marks a synthetic fallback report produced when the data source was
// unavailable, so dashboards can visually distinguish filler from real data.
type Report struct {
	StoreID     uint                  `json:"store_id"`
	Window      timeframe.WindowToken `json:"window"`
	GeneratedAt time.Time             `json:"generated_at"`
	Degraded    bool                  `json:"degraded"`

	Revenue   RevenueReport   `json:"revenue"`
	Orders    OrdersReport    `json:"orders"`
	Products  ProductsReport  `json:"products"`
	Customers CustomersReport `json:"customers"`
	Traffic   TrafficReport   `json:"traffic"`
	Financial FinancialReport `json:"financial"`
	Inventory InventoryReport `json:"inventory"`
}

// TrendPoint is a single day or month bucket of the revenue trend. Buckets
// are sparse: a period with no orders is omitted rather than zero-filled.
type TrendPoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RevenueReport holds windowed revenue metrics.
type RevenueReport struct {
	Total         float64      `json:"total"`
	Previous      float64      `json:"previous"`
	Growth        float64      `json:"growth"`
	AvgOrderValue float64      `json:"avg_order_value"`
	Daily         []TrendPoint `json:"daily"`
	Monthly       []TrendPoint `json:"monthly"`
}

// StatusCount is the order funnel tally for one recognized status.
type StatusCount struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// OrdersReport holds the order funnel for the current window.
type OrdersReport struct {
	Total    int           `json:"total"`
	ByStatus []StatusCount `json:"by_status"`
}

// ProductPerformance is one ranked entry of the top-selling list.
type ProductPerformance struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Sold      int     `json:"sold"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
}

// CategorySales rolls up one catalog category. Products counts the whole
// catalog; Revenue covers only line items matched in the current window, so a
// category with products but no sales appears with revenue 0.
type CategorySales struct {
	Category string  `json:"category"`
	Products int     `json:"products"`
	Sold     int     `json:"sold"`
	Revenue  float64 `json:"revenue"`
}

// ProductsReport holds product ranking and category rollups.
type ProductsReport struct {
	TopSelling []ProductPerformance `json:"top_selling"`
	Categories []CategorySales      `json:"categories"`
}

// CustomerSegment is a named customer tier with its member count.
type CustomerSegment struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CustomersReport holds customer value metrics. New, Returning and Segments
// come from the pluggable CustomerIntelligence strategy and are zero/empty
// when no richer customer store is wired in.
type CustomersReport struct {
	Total            int               `json:"total"`
	New              int               `json:"new"`
	Returning        int               `json:"returning"`
	AvgLifetimeValue float64           `json:"avg_lifetime_value"`
	Segments         []CustomerSegment `json:"segments"`
}

// TrafficReport holds visit metrics sourced from the customer intelligence
// strategy; zeros when no traffic source is wired in.
type TrafficReport struct {
	Visits         int64   `json:"visits"`
	Conversions    int64   `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
}

// FinancialReport is a simplified profit/loss breakdown derived from gross
// revenue under the configured ratio assumptions. Every field is a modeled
// estimate, not a ledger fact.
type FinancialReport struct {
	GrossRevenue     float64 `json:"gross_revenue"`
	NetRevenue       float64 `json:"net_revenue"`
	Costs            float64 `json:"costs"`
	Profit           float64 `json:"profit"`
	ProfitMargin     float64 `json:"profit_margin"`
	EstimatedTax     float64 `json:"estimated_tax"`
	EstimatedRefunds float64 `json:"estimated_refunds"`
}

// InventoryReport holds stock health metrics. FastMoving and SlowMoving need
// sales-velocity history not modeled here and stay empty rather than guessed.
type InventoryReport struct {
	TotalValue float64  `json:"total_value"`
	OutOfStock int      `json:"out_of_stock"`
	LowStock   int      `json:"low_stock"`
	FastMoving []string `json:"fast_moving"`
	SlowMoving []string `json:"slow_moving"`
}
