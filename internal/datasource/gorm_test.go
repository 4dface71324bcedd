package datasource_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/internal/catalog"
	"shopmetrics/internal/datasource"
	"shopmetrics/internal/orders"
	"shopmetrics/internal/testsupport"
)

func TestGormSourceFetchOrders(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	store := testsupport.CreateTestStore(t, db, "Fetch Orders Shop")
	source := datasource.NewGormSource(db)

	now := time.Now().UTC()
	product := testsupport.CreateProduct(t, db, store.ID, "Mug", "Kitchen", 12, 40)

	recent := testsupport.CreateOrder(t, db, store.ID, orders.StatusDelivered, 0,
		testsupport.StrPtr("cust-1"), now.AddDate(0, 0, -3),
		orders.LineItem{ProductID: product.ID, UnitPrice: 12, Quantity: 2})
	testsupport.CreateOrder(t, db, store.ID, orders.StatusDelivered, 75,
		nil, now.AddDate(0, 0, -90))

	fetched, err := source.FetchOrders(context.Background(), store.ID, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, recent.ID, fetched[0].ID)
	require.Len(t, fetched[0].Items, 1)
	assert.Equal(t, product.ID, fetched[0].Items[0].ProductID)
}

func TestGormSourceFetchProducts(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	store := testsupport.CreateTestStore(t, db, "Fetch Products Shop")
	other := testsupport.CreateTestStore(t, db, "Other Shop")
	source := datasource.NewGormSource(db)

	testsupport.CreateProduct(t, db, store.ID, "Mug", "Kitchen", 12, 40)
	testsupport.CreateProduct(t, db, store.ID, "Plate", "Kitchen", 8, 0)
	testsupport.CreateProduct(t, db, other.ID, "Chair", "Furniture", 120, 3)

	products, err := source.FetchProducts(context.Background(), store.ID)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, store.ID, p.StoreID)
	}
}

func TestGormSourceFetchLiveSnapshot(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	store := testsupport.CreateTestStore(t, db, "Snapshot Shop")
	source := datasource.NewGormSource(db)

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Two orders today, one of them a guest checkout, one from yesterday.
	latest := testsupport.CreateOrder(t, db, store.ID, orders.StatusProcessing, 40,
		testsupport.StrPtr("cust-1"), midnight.Add(2*time.Hour))
	testsupport.CreateOrder(t, db, store.ID, orders.StatusPending, 25,
		nil, midnight.Add(time.Hour))
	testsupport.CreateOrder(t, db, store.ID, orders.StatusDelivered, 999,
		testsupport.StrPtr("cust-2"), midnight.Add(-12*time.Hour))

	snapshot, err := source.FetchLiveSnapshot(context.Background(), store.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.TodaysOrders)
	assert.Equal(t, 65.0, snapshot.TodaysRevenue)
	assert.Equal(t, 1, snapshot.ActiveUsers)
	require.NotNil(t, snapshot.LastOrderAt)
	assert.WithinDuration(t, latest.CreatedAt, *snapshot.LastOrderAt, time.Second)
}

func TestGormSourceFetchLiveSnapshotEmptyStore(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	store := testsupport.CreateTestStore(t, db, "Quiet Shop")
	source := datasource.NewGormSource(db)

	snapshot, err := source.FetchLiveSnapshot(context.Background(), store.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.TodaysOrders)
	assert.Equal(t, 0.0, snapshot.TodaysRevenue)
	assert.Equal(t, 0.0, snapshot.ConversionRate)
	assert.Nil(t, snapshot.LastOrderAt)
}

// blockingSource hangs every fetch until the context expires.
type blockingSource struct{}

func (blockingSource) FetchOrders(ctx context.Context, _ uint, _ time.Time) ([]orders.Order, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingSource) FetchProducts(ctx context.Context, _ uint) ([]catalog.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingSource) FetchLiveSnapshot(ctx context.Context, _ uint) (*datasource.LiveSnapshot, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestTimeoutSourceCancelsSlowFetch(t *testing.T) {
	slow := &blockingSource{}
	source := datasource.WithTimeout(slow, 10*time.Millisecond)

	_, err := source.FetchProducts(context.Background(), 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
