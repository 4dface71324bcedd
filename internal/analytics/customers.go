package analytics

import (
	"context"
	"sort"

	"shopmetrics/internal/orders"
)

// CustomerBreakdown is the richer customer data a CustomerIntelligence
// strategy can supply: first-seen classification, value tiers and traffic.
type CustomerBreakdown struct {
	New         int
	Returning   int
	Segments    []CustomerSegment
	Visits      int64
	Conversions int64
}

// CustomerIntelligence supplies customer lifetime data the order records alone
// cannot provide. Implementations backed by a real customer store can be
// swapped in without touching the rest of the engine; the default reports
// zeros and empty segments rather than fabricating plausible-looking numbers.
type CustomerIntelligence interface {
	Breakdown(ctx context.Context, storeID uint, customerIDs []string) (CustomerBreakdown, error)
}

// NoopCustomerIntelligence is the default strategy used when no customer
// store is wired in.
type NoopCustomerIntelligence struct{}

// Breakdown returns an all-zero breakdown.
func (NoopCustomerIntelligence) Breakdown(_ context.Context, _ uint, _ []string) (CustomerBreakdown, error) {
	return CustomerBreakdown{Segments: []CustomerSegment{}}, nil
}

// DistinctCustomerIDs returns the sorted distinct non-nil customer ids among
// the given orders. Orders without a customer id are excluded from the
// distinct count but still contribute to revenue elsewhere.
func DistinctCustomerIDs(current []orders.Order) []string {
	seen := make(map[string]struct{})
	for _, o := range current {
		if o.CustomerID == nil || *o.CustomerID == "" {
			continue
		}
		seen[*o.CustomerID] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SegmentCustomers computes the customers sub-report from the current-window
// orders and the strategy-provided breakdown.
func SegmentCustomers(customerIDs []string, windowRevenue float64, breakdown CustomerBreakdown) CustomersReport {
	total := len(customerIDs)

	avgLifetimeValue := 0.0
	if total > 0 {
		avgLifetimeValue = windowRevenue / float64(total)
	}

	segments := breakdown.Segments
	if segments == nil {
		segments = []CustomerSegment{}
	}

	return CustomersReport{
		Total:            total,
		New:              breakdown.New,
		Returning:        breakdown.Returning,
		AvgLifetimeValue: avgLifetimeValue,
		Segments:         segments,
	}
}

// DeriveTraffic computes the traffic sub-report from the strategy-provided
// breakdown. Zero visits yields a zero conversion rate, never a division by
// zero.
func DeriveTraffic(breakdown CustomerBreakdown) TrafficReport {
	rate := 0.0
	if breakdown.Visits > 0 {
		rate = float64(breakdown.Conversions) / float64(breakdown.Visits) * 100
	}
	return TrafficReport{
		Visits:         breakdown.Visits,
		Conversions:    breakdown.Conversions,
		ConversionRate: rate,
	}
}
