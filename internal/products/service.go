package products

import (
	"context"
	"errors"
)

// Repository abstracts product persistence.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) (Product, error)
	SetQuantity(ctx context.Context, id int64, quantity int) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles product business logic.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all products.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// Get fetches one product.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, errors.New("products: invalid product ID")
	}
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, product)
}

// Update validates and replaces an existing product.
func (s *Service) Update(ctx context.Context, id int64, product Product) (Product, error) {
	if id <= 0 {
		return Product{}, errors.New("products: invalid product ID")
	}
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	return s.repo.Update(ctx, id, product)
}

// SetQuantity replaces the on-hand quantity directly.
func (s *Service) SetQuantity(ctx context.Context, id int64, quantity int) (Product, error) {
	if id <= 0 {
		return Product{}, errors.New("products: invalid product ID")
	}
	if quantity < 0 {
		return Product{}, ErrNegativeQuantity
	}
	return s.repo.SetQuantity(ctx, id, quantity)
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("products: invalid product ID")
	}
	return s.repo.Delete(ctx, id)
}
