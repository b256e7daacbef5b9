// Package cache keeps a read-through snapshot of the product catalog in a
// local Badger store. The whole listing lives under one key and is replaced
// wholesale after every catalog mutation, so a hit is never partially stale.
package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Skotchmaster/customer_orders/internal/models"
	"github.com/dgraph-io/badger/v4"
)

const productListKey = "product_list"

const DefaultTTL = 30 * time.Minute

type ProductCache struct {
	db  *badger.DB
	ttl time.Duration
	log *slog.Logger
}

func Open(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).WithLogger(nil))
}

// OpenInMemory is used by tests.
func OpenInMemory() (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func New(db *badger.DB, ttl time.Duration, log *slog.Logger) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{db: db, ttl: ttl, log: log}
}

// GetList returns the cached catalog snapshot; the second result is false on
// a miss. A cache failure is logged and reported as a miss, so callers fall
// back to the store.
func (c *ProductCache) GetList() ([]models.Product, bool) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(productListKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		c.log.Error("product cache read failed", "error", err)
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.log.Error("product cache payload is corrupt", "error", err)
		return nil, false
	}
	return products, true
}

// PutList replaces the cached snapshot. Failures are logged and swallowed: a
// cache outage must never fail the mutation it follows.
func (c *ProductCache) PutList(products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		c.log.Error("product cache marshal failed", "error", err)
		return
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(productListKey), data).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		c.log.Error("product cache write failed", "error", err)
		return
	}
	c.log.Info("product list cached", "count", len(products))
}
