package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Skotchmaster/customer_orders/internal/models"
	"github.com/Skotchmaster/customer_orders/internal/repo"
	"github.com/Skotchmaster/customer_orders/internal/transport"
	"gorm.io/gorm"
)

// CustomerService manages customer data. Customers are soft-deleted: the row
// stays behind its flag and existing orders keep referencing it.
type CustomerService struct {
	Repo     *repo.CustomerRepo
	Notifier Publisher
	Log      *slog.Logger
}

func (s *CustomerService) GetCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.Repo.GetCustomers(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.Repo.GetCustomer(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: customer %d", ErrNotFound, id)
	}
	return customer, err
}

func (s *CustomerService) GetByUsername(ctx context.Context, username string) (*models.Customer, error) {
	customer, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: customer %q", ErrNotFound, username)
	}
	return customer, err
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: customer %q", ErrNotFound, email)
	}
	return customer, err
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint, req transport.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Address = req.Address

	if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}

	s.notify(ctx, fmt.Sprintf("[UPDATE] Customer updated: %s (ID: %d, Email: %s)",
		customer.Name, customer.ID, customer.Email))
	return customer, nil
}

// DeleteCustomer marks the customer as deleted. Deleting twice is a no-op.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	if customer.IsDeleted {
		s.Log.Info("customer already marked as deleted", "customer_id", id)
		return nil
	}

	customer.IsDeleted = true
	if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("[DELETE] Customer marked as deleted: %s (ID: %d)",
		customer.Username, customer.ID))
	return nil
}

func (s *CustomerService) notify(ctx context.Context, message string) {
	if err := s.Notifier.Publish(ctx, message); err != nil {
		s.Log.Error("notification dropped", "message", message, "error", err)
	}
}
