// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/orders"
	"shopmetrics/internal/stores"
)

// testDBCache caches test databases by test name to allow multiple calls
// within the same test to share the same database
var testDBCache = make(map[string]*gorm.DB)
var testDBCacheMu sync.Mutex

// allModels returns all domain models for migration
func allModels() []any {
	return []any{
		&stores.Store{},
		&orders.Order{},
		&orders.LineItem{},
		&catalog.Product{},
	}
}

// SetupTestDB creates a test database with all domain models migrated.
// Uses a named in-memory database with cache=shared so multiple connections
// within a test see the same data.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testName := t.Name()

	// Use the root test name for caching so subtests share the database
	rootName := testName
	if idx := strings.Index(testName, "/"); idx > 0 {
		rootName = testName[:idx]
	}

	testDBCacheMu.Lock()
	if db, exists := testDBCache[rootName]; exists {
		testDBCacheMu.Unlock()
		return db
	}
	testDBCacheMu.Unlock()

	sanitizedName := strings.ReplaceAll(rootName, "/", "_")
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	if err := db.AutoMigrate(allModels()...); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	testDBCacheMu.Lock()
	testDBCache[rootName] = db
	testDBCacheMu.Unlock()

	t.Cleanup(func() {
		testDBCacheMu.Lock()
		delete(testDBCache, rootName)
		testDBCacheMu.Unlock()
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// GetLogger returns a quiet logger for tests.
func GetLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// CreateTestStore creates a store row and returns it.
func CreateTestStore(t *testing.T, db *gorm.DB, name string) *stores.Store {
	t.Helper()
	store := &stores.Store{Name: name, Currency: "USD"}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("testsupport: failed to create store: %v", err)
	}
	return store
}

// CreateProduct creates a catalog row with a generated id and returns it.
func CreateProduct(t *testing.T, db *gorm.DB, storeID uint, name, category string, price float64, stock int) *catalog.Product {
	t.Helper()
	product := &catalog.Product{
		ID:       uuid.NewString(),
		StoreID:  storeID,
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
		Visible:  true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("testsupport: failed to create product: %v", err)
	}
	return product
}

// CreateOrder creates an order with the given line items and returns it.
// Total is derived from the items unless items is empty, in which case the
// explicit total is used.
func CreateOrder(t *testing.T, db *gorm.DB, storeID uint, status string, total float64, customerID *string, createdAt time.Time, items ...orders.LineItem) *orders.Order {
	t.Helper()

	order := &orders.Order{
		ID:         uuid.NewString(),
		StoreID:    storeID,
		CustomerID: customerID,
		Status:     status,
		Total:      total,
		CreatedAt:  createdAt,
		Items:      items,
	}
	if len(items) > 0 {
		order.Total = 0
		for _, item := range items {
			order.Total += item.UnitPrice * float64(item.Quantity)
		}
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("testsupport: failed to create order: %v", err)
	}
	return order
}

// StrPtr returns a pointer to s, for nullable customer ids.
func StrPtr(s string) *string {
	return &s
}
