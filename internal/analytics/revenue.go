package analytics

import (
	"sort"
	"time"

	"shopmetrics/internal/orders"
	"shopmetrics/internal/timeframe"
)

// AggregateRevenue computes windowed revenue metrics from the already
// partitioned order sets. Growth is 0 whenever the comparison window has no
// revenue, regardless of current revenue: a missing baseline is reported as
// flat, never as Inf or NaN.
func AggregateRevenue(current, previous []orders.Order) RevenueReport {
	var total, previousTotal float64
	for _, o := range current {
		total += o.Total
	}
	for _, o := range previous {
		previousTotal += o.Total
	}

	avgOrderValue := 0.0
	if len(current) > 0 {
		avgOrderValue = total / float64(len(current))
	}

	growth := 0.0
	if previousTotal > 0 {
		growth = (total - previousTotal) / previousTotal * 100
	}

	return RevenueReport{
		Total:         total,
		Previous:      previousTotal,
		Growth:        growth,
		AvgOrderValue: avgOrderValue,
		Daily:         bucketize(current, timeframe.DayKey, timeframe.MaxDailyBuckets, false),
		Monthly:       bucketize(current, timeframe.MonthKey, timeframe.MaxMonthlyBuckets, true),
	}
}

// AggregateOrders tallies the current-window orders per recognized status.
// Orders with unrecognized statuses are excluded from the tallies but remain
// part of the revenue totals computed elsewhere.
func AggregateOrders(current []orders.Order) OrdersReport {
	counts := make(map[string]int, len(orders.KnownStatuses))
	revenue := make(map[string]float64, len(orders.KnownStatuses))
	for _, o := range current {
		if !orders.IsKnownStatus(o.Status) {
			continue
		}
		counts[o.Status]++
		revenue[o.Status] += o.Total
	}

	byStatus := make([]StatusCount, 0, len(orders.KnownStatuses))
	for _, status := range orders.KnownStatuses {
		byStatus = append(byStatus, StatusCount{
			Status:  status,
			Count:   counts[status],
			Revenue: revenue[status],
		})
	}

	return OrdersReport{
		Total:    len(current),
		ByStatus: byStatus,
	}
}

// bucketize groups orders into sparse calendar buckets, keeping only the most
// recent maxBuckets. Keys sort chronologically ("2006-01-02" / "2006-01"), so
// a plain string sort orders the trend.
func bucketize(current []orders.Order, key func(t time.Time) string, maxBuckets int, monthLabels bool) []TrendPoint {
	type bucket struct {
		revenue float64
		count   int
	}

	grouped := make(map[string]*bucket)
	for _, o := range current {
		k := key(o.CreatedAt)
		b, ok := grouped[k]
		if !ok {
			b = &bucket{}
			grouped[k] = b
		}
		b.revenue += o.Total
		b.count++
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) > maxBuckets {
		keys = keys[len(keys)-maxBuckets:]
	}

	points := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		label := k
		if monthLabels {
			label = timeframe.MonthLabel(k)
		}
		points = append(points, TrendPoint{
			Label:   label,
			Revenue: grouped[k].revenue,
			Orders:  grouped[k].count,
		})
	}
	return points
}
