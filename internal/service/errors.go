package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

// ValidationError reports every invalid product id in a rejected order batch.
type ValidationError struct {
	InvalidProductIDs []uint
}

func (e *ValidationError) Error() string {
	ids := make([]string, len(e.InvalidProductIDs))
	for i, id := range e.InvalidProductIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("the following product IDs are invalid: %s", strings.Join(ids, ", "))
}

// InsufficientStockError carries the quantity still available in the catalog.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
