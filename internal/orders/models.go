// Package orders defines the read-only order records the analytics engine
// consumes. Orders are created and mutated entirely by the external
// order-management collaborator; nothing here writes them outside of seeding
// and tests.
package orders

import "time"

// Recognized order statuses. Unknown values are tolerated by the aggregation
// layer: they are excluded from per-status tallies but still count toward
// revenue totals.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// KnownStatuses lists the statuses tracked in the order funnel, in display order.
var KnownStatuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// IsKnownStatus reports whether s is one of the recognized order statuses.
func IsKnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a single placed order with its line items.
type Order struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	StoreID    uint       `gorm:"index:idx_order_store_created;not null" json:"store_id"`
	CustomerID *string    `gorm:"index" json:"customer_id"`
	Status     string     `gorm:"index;not null;default:'pending'" json:"status"`
	Total      float64    `gorm:"not null;default:0" json:"total"`
	CreatedAt  time.Time  `gorm:"index:idx_order_store_created;not null" json:"created_at"`
	Items      []LineItem `gorm:"foreignKey:OrderID" json:"items"`
}

// LineItem is a product position within an order. UnitPrice is a point-in-time
// snapshot taken at sale time and must not be re-derived from the current
// catalog price.
type LineItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   string  `gorm:"index;size:36;not null" json:"order_id"`
	ProductID string  `gorm:"index;size:36;not null" json:"product_id"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
}
