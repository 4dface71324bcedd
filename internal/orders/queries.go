package orders

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GetOrdersSince retrieves all orders for a store created at or after the
// given instant, newest first, with line items preloaded. The caller picks an
// instant covering both the current and the comparison window so a single
// query feeds all windowed metrics.
func GetOrdersSince(ctx context.Context, db *gorm.DB, storeID uint, since time.Time) ([]Order, error) {
	var result []Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ?", storeID).
		Where("created_at >= ?", since.UTC()).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching orders for store %d: %w", storeID, err)
	}
	return result, nil
}

// CountOrdersSince returns the number of orders for a store created at or
// after the given instant.
func CountOrdersSince(ctx context.Context, db *gorm.DB, storeID uint, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&Order{}).
		Where("store_id = ?", storeID).
		Where("created_at >= ?", since.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("error counting orders for store %d: %w", storeID, err)
	}
	return count, nil
}

// GetLastOrderTime returns the creation time of the most recent order for a
// store, or nil when the store has no orders.
func GetLastOrderTime(ctx context.Context, db *gorm.DB, storeID uint) (*time.Time, error) {
	var order Order
	err := db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching last order for store %d: %w", storeID, err)
	}
	t := order.CreatedAt
	return &t, nil
}
