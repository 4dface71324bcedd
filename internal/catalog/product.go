// Package catalog defines the read-only product records owned by the catalog
// collaborator.
package catalog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog row for a store.
type Product struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	StoreID   uint      `gorm:"index;not null" json:"store_id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `gorm:"index" json:"category"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	Visible   bool      `gorm:"not null;default:true" json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}

// GetProducts retrieves the full catalog for a store.
func GetProducts(ctx context.Context, db *gorm.DB, storeID uint) ([]Product, error) {
	var result []Product
	err := db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching products for store %d: %w", storeID, err)
	}
	return result, nil
}
