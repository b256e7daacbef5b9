package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Skotchmaster/customer_orders/internal/models"
	"github.com/Skotchmaster/customer_orders/internal/repo"
	"github.com/Skotchmaster/customer_orders/internal/transport"
	"gorm.io/gorm"
)

// Publisher is the change-notification channel. Publishing is best-effort:
// the orchestrator logs a failure and keeps the committed mutation.
type Publisher interface {
	Publish(ctx context.Context, message string) error
}

// OrderService coordinates order mutations against the order and catalog
// stores. Every operation is a single sequential pipeline: validate, commit,
// then fire the notification.
type OrderService struct {
	Orders   *repo.OrderRepo
	Products *repo.ProductRepo
	Notifier Publisher
	Log      *slog.Logger
}

func (s *OrderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	return s.Orders.GetOrders(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Orders.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	return order, err
}

// CreateOrders persists the whole batch or nothing. Every referenced product
// id must exist in the catalog; the returned ValidationError names all
// offenders across the entire batch.
func (s *OrderService) CreateOrders(ctx context.Context, reqs []transport.CreateOrderRequest) ([]models.Order, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one order is required", ErrValidation)
	}

	seen := make(map[uint]bool)
	var ids []uint
	for _, req := range reqs {
		for _, item := range req.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	existing, err := s.Products.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}

	var invalid []uint
	for _, id := range ids {
		if !found[id] {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		sort.Slice(invalid, func(i, j int) bool { return invalid[i] < invalid[j] })
		return nil, &ValidationError{InvalidProductIDs: invalid}
	}

	orders := make([]*models.Order, len(reqs))
	for i, req := range reqs {
		order := &models.Order{
			CustomerID: req.CustomerID,
			Address:    req.Address,
		}
		for _, item := range req.Items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		orders[i] = order
	}

	if err := s.Orders.CreateOrders(ctx, orders); err != nil {
		return nil, err
	}

	created := make([]models.Order, len(orders))
	for i, order := range orders {
		created[i] = *order
		s.notify(ctx, fmt.Sprintf("Order added: CustomerId: %d, OrderId: %d", order.CustomerID, order.ID))
	}
	return created, nil
}

// AddProductToOrder appends a new line item. A product already present in the
// order is a conflict; the order keeps exactly one line per product.
func (s *OrderService) AddProductToOrder(ctx context.Context, orderID, productID uint, quantity int) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		if item.ProductID == productID {
			return fmt.Errorf("%w: product %d is already in order %d", ErrConflict, productID, orderID)
		}
	}

	item := &models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Orders.AddItem(ctx, item); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("Product added to order: OrderId: %d, ProductId: %d", orderID, productID))
	return nil
}

func (s *OrderService) RemoveProductFromOrder(ctx context.Context, orderID, productID uint) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	item := findItem(order, productID)
	if item == nil {
		return fmt.Errorf("%w: product %d in order %d", ErrNotFound, productID, orderID)
	}
	if err := s.Orders.DeleteItem(ctx, item); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("Product removed from order: OrderId: %d, ProductId: %d", orderID, productID))
	return nil
}

// UpdateProductQuantityInOrder sets a line item's quantity after checking it
// against current catalog stock. The check reads live quantity and does not
// decrement or reserve it, so concurrent updates may jointly oversell.
func (s *OrderService) UpdateProductQuantityInOrder(ctx context.Context, orderID, productID uint, quantity int) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	item := findItem(order, productID)
	if item == nil {
		return fmt.Errorf("%w: product %d in order %d", ErrNotFound, productID, orderID)
	}

	product, err := s.Products.GetProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err != nil {
		return err
	}

	if quantity > product.Quantity {
		return &InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: product.Quantity,
		}
	}

	item.Quantity = quantity
	if err := s.Orders.SaveItem(ctx, item); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("Order item quantity updated: OrderId: %d, ProductId: %d, Quantity: %d",
		orderID, productID, quantity))
	return nil
}

func (s *OrderService) UpdateOrderAddress(ctx context.Context, orderID uint, address string) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	order.Address = address
	if err := s.Orders.SaveOrder(ctx, order); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("Order updated: OrderId: %d, CustomerId: %d", order.ID, order.CustomerID))
	return nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID uint) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.Orders.DeleteOrder(ctx, order); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("Order deleted: OrderId: %d, CustomerId: %d", order.ID, order.CustomerID))
	return nil
}

func (s *OrderService) notify(ctx context.Context, message string) {
	if err := s.Notifier.Publish(ctx, message); err != nil {
		s.Log.Error("notification dropped", "message", message, "error", err)
	}
}

func findItem(order *models.Order, productID uint) *models.OrderItem {
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			return &order.Items[i]
		}
	}
	return nil
}
