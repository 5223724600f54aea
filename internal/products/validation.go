package products

import (
	"errors"
	"strings"
)

// ErrNegativePrice indicates a product price below zero.
var ErrNegativePrice = errors.New("products: price must be >= 0")

// ErrNegativeQuantity indicates a product quantity below zero.
var ErrNegativeQuantity = errors.New("products: quantity must be >= 0")

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Code) == "" {
		return errors.New("products: code is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("products: name is required")
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
