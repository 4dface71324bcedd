// Package seeder fills a development database with demo storefront data.
package seeder

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/orders"
	"shopmetrics/internal/stores"
)

var categories = []string{"Apparel", "Electronics", "Home", "Beauty", "Sports"}

var statuses = []string{
	orders.StatusPending,
	orders.StatusProcessing,
	orders.StatusShipped,
	orders.StatusDelivered,
	orders.StatusDelivered, // delivered weighted higher
	orders.StatusDelivered,
	orders.StatusCancelled,
}

// Seeder handles the demo data seeding process.
type Seeder struct {
	DB           *gorm.DB
	Logger       *slog.Logger
	ProductCount int
	OrderCount   int
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, logger *slog.Logger, productCount, orderCount int) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		DB:           db,
		Logger:       logger,
		ProductCount: productCount,
		OrderCount:   orderCount,
	}
}

// Run creates a demo store and spreads orders over the trailing 60 days so
// both the 30d window and its comparison window have data.
func (s *Seeder) Run() error {
	start := time.Now()
	s.Logger.Info("Seeding demo store...",
		slog.Int("products", s.ProductCount),
		slog.Int("orders", s.OrderCount))

	store := stores.Store{Name: "Demo Store", Currency: "USD"}
	if err := s.DB.Create(&store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	products, err := s.seedProducts(store.ID)
	if err != nil {
		return err
	}
	if err := s.seedOrders(store.ID, products); err != nil {
		return err
	}

	s.Logger.Info("Seeding completed",
		slog.Uint64("store_id", uint64(store.ID)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Seeder) seedProducts(storeID uint) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0, s.ProductCount)
	for i := 0; i < s.ProductCount; i++ {
		stock := rand.IntN(50)
		if rand.IntN(10) == 0 {
			stock = 0
		}
		products = append(products, catalog.Product{
			ID:       uuid.NewString(),
			StoreID:  storeID,
			Name:     fmt.Sprintf("Demo Product %03d", i+1),
			Category: categories[rand.IntN(len(categories))],
			Price:    5 + rand.Float64()*195,
			Stock:    stock,
			Visible:  true,
		})
	}
	if err := s.DB.Create(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to create products: %w", err)
	}
	return products, nil
}

func (s *Seeder) seedOrders(storeID uint, products []catalog.Product) error {
	now := time.Now().UTC()
	customerPool := make([]string, 25)
	for i := range customerPool {
		customerPool[i] = uuid.NewString()
	}

	for i := 0; i < s.OrderCount; i++ {
		createdAt := now.Add(-time.Duration(rand.IntN(60*24)) * time.Hour)

		order := orders.Order{
			ID:        uuid.NewString(),
			StoreID:   storeID,
			Status:    statuses[rand.IntN(len(statuses))],
			CreatedAt: createdAt,
		}
		if rand.IntN(5) > 0 {
			customer := customerPool[rand.IntN(len(customerPool))]
			order.CustomerID = &customer
		}

		itemCount := 1 + rand.IntN(4)
		for j := 0; j < itemCount; j++ {
			product := products[rand.IntN(len(products))]
			quantity := 1 + rand.IntN(3)
			order.Items = append(order.Items, orders.LineItem{
				ProductID: product.ID,
				UnitPrice: product.Price,
				Quantity:  quantity,
			})
			order.Total += product.Price * float64(quantity)
		}

		if err := s.DB.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
	}
	return nil
}
