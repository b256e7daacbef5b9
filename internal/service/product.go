package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Skotchmaster/customer_orders/internal/cache"
	"github.com/Skotchmaster/customer_orders/internal/models"
	"github.com/Skotchmaster/customer_orders/internal/repo"
	"github.com/Skotchmaster/customer_orders/internal/service/search"
	"github.com/Skotchmaster/customer_orders/internal/transport"
	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"
)

// ProductService manages the catalog. Mutations commit to the store first;
// the cache refresh, search indexing and notification that follow are
// best-effort and never undo the commit.
type ProductService struct {
	Repo     *repo.ProductRepo
	Cache    *cache.ProductCache
	Notifier Publisher
	ES       *elasticsearch.Client // nil disables search indexing
	ESIndex  string
	Log      *slog.Logger
}

// GetProducts serves the listing from the cache and falls back to the store
// on a miss, re-priming the cache with what it read.
func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.Cache.GetList(); ok {
		return products, nil
	}

	products, err := s.Repo.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.PutList(products)
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return product, err
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}

	product := &models.Product{
		Barcode:     req.Barcode,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.refreshCatalog(ctx)
	s.index(ctx, product)
	s.notify(ctx, fmt.Sprintf("[ADD] Product added: %s (ID: %d, Price: %.2f)",
		product.Description, product.ID, product.Price))
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
		}
		product.Quantity = *req.Quantity
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.refreshCatalog(ctx)
	s.index(ctx, product)
	s.notify(ctx, fmt.Sprintf("[UPDATE] Product updated: %s (ID: %d, Price: %.2f)",
		product.Description, product.ID, product.Price))
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	s.refreshCatalog(ctx)
	s.deleteIndex(ctx, id)
	s.notify(ctx, fmt.Sprintf("[DELETE] Product deleted: %s (ID: %d)", product.Description, product.ID))
	return nil
}

// refreshCatalog re-reads the full catalog and replaces the cached snapshot,
// so a single-row mutation never leaves stale neighbours behind.
func (s *ProductService) refreshCatalog(ctx context.Context) {
	products, err := s.Repo.GetProducts(ctx)
	if err != nil {
		s.Log.Error("catalog cache refresh failed", "error", err)
		return
	}
	s.Cache.PutList(products)
}

func (s *ProductService) index(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, s.ESIndex, product); err != nil {
		s.Log.Error("product index update failed", "product_id", product.ID, "error", err)
	}
}

func (s *ProductService) deleteIndex(ctx context.Context, id uint) {
	if s.ES == nil {
		return
	}
	if err := search.DeleteProduct(ctx, s.ES, s.ESIndex, id); err != nil {
		s.Log.Error("product index delete failed", "product_id", id, "error", err)
	}
}

func (s *ProductService) notify(ctx context.Context, message string) {
	if err := s.Notifier.Publish(ctx, message); err != nil {
		s.Log.Error("notification dropped", "message", message, "error", err)
	}
}
