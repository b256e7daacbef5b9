package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Skotchmaster/customer_orders/internal/models"
	"github.com/Skotchmaster/customer_orders/internal/repo"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePublisher struct {
	mu       sync.Mutex
	fail     bool
	messages []string
}

func (f *fakePublisher) Publish(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakePublisher) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.RequestLog{},
	))
	return db
}

func newOrderService(t *testing.T) (*OrderService, *gorm.DB, *fakePublisher) {
	t.Helper()

	db := newTestDB(t)
	pub := &fakePublisher{}
	svc := &OrderService{
		Orders:   &repo.OrderRepo{DB: db},
		Products: &repo.ProductRepo{DB: db},
		Notifier: pub,
		Log:      testLogger(),
	}
	return svc, db, pub
}

func seedProduct(t *testing.T, db *gorm.DB, barcode, description string, price float64, quantity int) models.Product {
	t.Helper()

	product := models.Product{
		Barcode:     barcode,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedOrder(t *testing.T, db *gorm.DB, customerID uint, address string, items ...models.OrderItem) models.Order {
	t.Helper()

	order := models.Order{
		CustomerID: customerID,
		Address:    address,
		Items:      items,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}
