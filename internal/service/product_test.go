package service

import (
	"context"
	"testing"
	"time"

	"github.com/Skotchmaster/customer_orders/internal/cache"
	"github.com/Skotchmaster/customer_orders/internal/models"
	"github.com/Skotchmaster/customer_orders/internal/repo"
	"github.com/Skotchmaster/customer_orders/internal/transport"
	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(t *testing.T) (*ProductService, *gorm.DB, *badger.DB, *fakePublisher) {
	t.Helper()

	db := newTestDB(t)

	cacheDB, err := cache.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cacheDB.Close() })

	pub := &fakePublisher{}
	svc := &ProductService{
		Repo:     &repo.ProductRepo{DB: db},
		Cache:    cache.New(cacheDB, time.Minute, testLogger()),
		Notifier: pub,
		Log:      testLogger(),
	}
	return svc, db, cacheDB, pub
}

func TestGetProductsReadsThroughAndPrimesCache(t *testing.T) {
	svc, db, _, _ := newProductService(t)
	ctx := context.Background()

	seedProduct(t, db, "111", "keyboard", 49.90, 10)
	seedProduct(t, db, "222", "mouse", 19.90, 5)

	products, err := svc.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	cached, ok := svc.Cache.GetList()
	require.True(t, ok)
	require.Len(t, cached, 2)

	// A write that bypasses the service is invisible until the snapshot is
	// replaced: the listing is served from the cache.
	seedProduct(t, db, "333", "monitor", 199.00, 2)
	products, err = svc.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
}

func TestCreateProductRefreshesCache(t *testing.T) {
	svc, _, _, pub := newProductService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Barcode:     "111",
		Description: "keyboard",
		Price:       49.90,
		Quantity:    10,
	})
	require.NoError(t, err)
	require.NotZero(t, product.ID)

	cached, ok := svc.Cache.GetList()
	require.True(t, ok)
	require.Len(t, cached, 1)
	require.Equal(t, "keyboard", cached[0].Description)

	messages := pub.sent()
	require.Len(t, messages, 1)
	require.Contains(t, messages[0], "[ADD] Product added")
}

func TestUpdateProductRefreshesCache(t *testing.T) {
	svc, db, _, pub := newProductService(t)
	ctx := context.Background()

	product := seedProduct(t, db, "111", "keyboard", 49.90, 10)

	newPrice := 59.90
	updated, err := svc.UpdateProduct(ctx, product.ID, transport.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 59.90, updated.Price)

	cached, ok := svc.Cache.GetList()
	require.True(t, ok)
	require.Len(t, cached, 1)
	require.Equal(t, 59.90, cached[0].Price)

	require.Contains(t, pub.sent()[0], "[UPDATE] Product updated")
}

func TestDeleteProductRefreshesCache(t *testing.T) {
	svc, db, _, pub := newProductService(t)
	ctx := context.Background()

	product := seedProduct(t, db, "111", "keyboard", 49.90, 10)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	cached, ok := svc.Cache.GetList()
	require.True(t, ok)
	require.Empty(t, cached)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	require.Zero(t, count)

	require.Contains(t, pub.sent()[0], "[DELETE] Product deleted")

	err := svc.DeleteProduct(ctx, product.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{Description: "free", Price: 0, Quantity: 1})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{Description: "negative", Price: 1, Quantity: -1})
	require.ErrorIs(t, err, ErrValidation)
}

// A cache outage degrades listing reads to store-only; mutations still
// commit.
func TestCacheOutageDegradesToStore(t *testing.T) {
	svc, db, cacheDB, _ := newProductService(t)
	ctx := context.Background()

	seedProduct(t, db, "111", "keyboard", 49.90, 10)
	require.NoError(t, cacheDB.Close())

	products, err := svc.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	created, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Barcode:     "222",
		Description: "mouse",
		Price:       19.90,
		Quantity:    5,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}
