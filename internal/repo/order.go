package repo

import (
	"context"

	"github.com/Skotchmaster/customer_orders/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo struct {
	DB *gorm.DB
}

func (r *OrderRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).
		Preload("Items.Product").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items.Product").
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrders persists the whole batch in one transaction. If any insert
// fails, nothing is committed.
func (r *OrderRepo) CreateOrders(ctx context.Context, orders []*models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			if err := tx.Create(order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OrderRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Omit("Items").Save(order).Error
}

func (r *OrderRepo) AddItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *OrderRepo) SaveItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Omit("Product").Save(item).Error
}

func (r *OrderRepo) DeleteItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Delete(&models.OrderItem{}, item.ID).Error
}

// DeleteOrder hard-deletes the order together with its line items.
func (r *OrderRepo) DeleteOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Select(clause.Associations).Delete(order).Error
}
