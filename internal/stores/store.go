package stores

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StoreNotFoundError represents an error when a store is not found
type StoreNotFoundError struct {
	StoreID uint
}

func (e *StoreNotFoundError) Error() string {
	return fmt.Sprintf("store not found: %d", e.StoreID)
}

// NewStoreNotFoundError creates a new StoreNotFoundError
func NewStoreNotFoundError(storeID uint) *StoreNotFoundError {
	return &StoreNotFoundError{StoreID: storeID}
}

// Store represents a merchant storefront whose orders and products feed the
// analytics engine. Store records are owned by the storefront collaborator;
// this service only reads them.
type Store struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Currency  string    `gorm:"size:3;default:'USD'" json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// GetStoreOrNotFound retrieves a store by id, returning StoreNotFoundError
// when it does not exist.
func GetStoreOrNotFound(db *gorm.DB, storeID uint) (*Store, error) {
	var store Store
	if err := db.First(&store, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewStoreNotFoundError(storeID)
		}
		return nil, fmt.Errorf("unexpected error querying store: %w", err)
	}
	return &store, nil
}
