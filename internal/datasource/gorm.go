package datasource

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/orders"
)

// GormSource reads orders and products straight from the shared database.
type GormSource struct {
	db *gorm.DB
}

// NewGormSource creates a Source backed by the given gorm connection.
func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

// FetchOrders implements Source.
func (s *GormSource) FetchOrders(ctx context.Context, storeID uint, since time.Time) ([]orders.Order, error) {
	return orders.GetOrdersSince(ctx, s.db, storeID, since)
}

// FetchProducts implements Source.
func (s *GormSource) FetchProducts(ctx context.Context, storeID uint) ([]catalog.Product, error) {
	return catalog.GetProducts(ctx, s.db, storeID)
}

// FetchLiveSnapshot implements Source. The snapshot reflects orders placed
// since midnight UTC; active users stands in for the distinct customers seen
// today until a presence collaborator exists.
func (s *GormSource) FetchLiveSnapshot(ctx context.Context, storeID uint) (*LiveSnapshot, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	todays, err := orders.GetOrdersSince(ctx, s.db, storeID, midnight)
	if err != nil {
		return nil, err
	}

	snapshot := &LiveSnapshot{TodaysOrders: len(todays)}

	customers := make(map[string]struct{})
	for _, o := range todays {
		snapshot.TodaysRevenue += o.Total
		if o.CustomerID != nil && *o.CustomerID != "" {
			customers[*o.CustomerID] = struct{}{}
		}
	}
	snapshot.ActiveUsers = len(customers)

	if snapshot.ActiveUsers > 0 {
		snapshot.ConversionRate = float64(snapshot.TodaysOrders) / float64(snapshot.ActiveUsers) * 100
	}

	lastOrder, err := orders.GetLastOrderTime(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}
	snapshot.LastOrderAt = lastOrder

	return snapshot, nil
}
