package analytics

import (
	"fmt"
	"math/rand/v2"

	"shopmetrics/internal/orders"
	"shopmetrics/internal/timeframe"
)

// FallbackReport builds a schema-complete synthetic report for when the data
// source is unavailable, so the dashboard always has something renderable.
// The report is marked Degraded so the UI can distinguish filler from real
// data; silent substitution is deliberately not an option.
//
// Values are seeded from the store id: a degraded dashboard stays stable
// across quick refreshes instead of flickering new random numbers.
func FallbackReport(storeID uint, window timeframe.Window, a Assumptions) *Report {
	rng := rand.New(rand.NewPCG(uint64(storeID), uint64(window.Token.Days())))

	days := window.Days()
	if days > timeframe.MaxDailyBuckets {
		days = timeframe.MaxDailyBuckets
	}

	daily := make([]TrendPoint, 0, days)
	var total float64
	var orderCount int
	for i := days - 1; i >= 0; i-- {
		day := window.Now.AddDate(0, 0, -i)
		dayOrders := 2 + rng.IntN(8)
		dayRevenue := float64(dayOrders) * (40 + rng.Float64()*60)
		daily = append(daily, TrendPoint{
			Label:   timeframe.DayKey(day),
			Revenue: dayRevenue,
			Orders:  dayOrders,
		})
		total += dayRevenue
		orderCount += dayOrders
	}

	months := window.Days()/30 + 1
	if months > timeframe.MaxMonthlyBuckets {
		months = timeframe.MaxMonthlyBuckets
	}
	monthly := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := window.Now.AddDate(0, -i, 0)
		monthOrders := 30 + rng.IntN(60)
		monthly = append(monthly, TrendPoint{
			Label:   timeframe.MonthLabel(timeframe.MonthKey(month)),
			Revenue: float64(monthOrders) * (40 + rng.Float64()*60),
			Orders:  monthOrders,
		})
	}

	avgOrderValue := 0.0
	if orderCount > 0 {
		avgOrderValue = total / float64(orderCount)
	}

	byStatus := make([]StatusCount, 0, len(orders.KnownStatuses))
	remaining := orderCount
	for _, status := range orders.KnownStatuses {
		count := remaining / 3
		if status == orders.StatusCancelled {
			count = remaining
		}
		byStatus = append(byStatus, StatusCount{
			Status:  status,
			Count:   count,
			Revenue: float64(count) * avgOrderValue,
		})
		remaining -= count
	}

	topSelling := make([]ProductPerformance, 0, 5)
	for i := 0; i < 5; i++ {
		sold := 40 - i*6 + rng.IntN(4)
		price := 15 + rng.Float64()*80
		revenue := float64(sold) * price
		topSelling = append(topSelling, ProductPerformance{
			ProductID: fmt.Sprintf("placeholder-%d", i+1),
			Name:      fmt.Sprintf("Product %d", i+1),
			Sold:      sold,
			Revenue:   revenue,
			Profit:    revenue * (1 - a.CostRatio),
		})
	}

	customerCount := 10 + rng.IntN(40)
	avgLifetimeValue := 0.0
	if customerCount > 0 {
		avgLifetimeValue = total / float64(customerCount)
	}

	return &Report{
		StoreID:     storeID,
		Window:      window.Token,
		GeneratedAt: window.Now,
		Degraded:    true,
		Revenue: RevenueReport{
			Total:         total,
			Previous:      0,
			Growth:        0,
			AvgOrderValue: avgOrderValue,
			Daily:         daily,
			Monthly:       monthly,
		},
		Orders: OrdersReport{
			Total:    orderCount,
			ByStatus: byStatus,
		},
		Products: ProductsReport{
			TopSelling: topSelling,
			Categories: []CategorySales{},
		},
		Customers: CustomersReport{
			Total:            customerCount,
			AvgLifetimeValue: avgLifetimeValue,
			Segments:         []CustomerSegment{},
		},
		Traffic:   TrafficReport{},
		Financial: DeriveFinancials(total, a),
		Inventory: InventoryReport{
			FastMoving: []string{},
			SlowMoving: []string{},
		},
	}
}
