package repo

import (
	"context"

	"github.com/Skotchmaster/customer_orders/internal/models"
	"gorm.io/gorm"
)

type CustomerRepo struct {
	DB *gorm.DB
}

func (r *CustomerRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	customer := models.Customer{}
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepo) GetCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// GetByUsername ignores soft-deleted customers.
func (r *CustomerRepo) GetByUsername(ctx context.Context, username string) (*models.Customer, error) {
	customer := models.Customer{}
	if err := r.DB.WithContext(ctx).
		Where("username = ? AND is_deleted = ?", username, false).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer := models.Customer{}
	if err := r.DB.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepo) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	return r.DB.WithContext(ctx).Omit("Orders").Save(customer).Error
}
