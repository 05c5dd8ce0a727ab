package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
	"github.com/umituz/turkticaret-case-sub003/internal/metrics"
	"github.com/umituz/turkticaret-case-sub003/internal/repository"
)

type cartService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(repos *repository.Repositories, logger *zap.Logger) *cartService {
	return &cartService{
		repos:  repos,
		logger: logger,
	}
}

// AddToCart merges a quantity delta into the cart line for the product,
// creating or resurrecting the line as needed. The merge is one atomic
// storage operation; concurrent adds for the same product all land.
func (s *cartService) AddToCart(ctx context.Context, cartID uuid.UUID, req AddCartItemRequest) error {
	if req.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", req.Quantity)
	}

	if err := s.repos.CartItem.AddOrMerge(ctx, cartID, req.ProductID, req.Quantity, req.UnitPrice); err != nil {
		return err
	}

	metrics.CartMergesTotal.Inc()
	return nil
}

// SetQuantity overwrites the quantity on an active cart line
func (s *cartService) SetQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	return s.repos.CartItem.SetQuantity(ctx, cartID, productID, quantity)
}

// RemoveItem soft-deletes one cart line
func (s *cartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return s.repos.CartItem.Remove(ctx, cartID, productID)
}

// ClearCart soft-deletes all active lines in the cart
func (s *cartService) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return s.repos.CartItem.ClearCart(ctx, cartID)
}

// GetCart returns the active lines of a cart with the running total in
// minor currency units.
func (s *cartService) GetCart(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItem, int64, error) {
	items, err := s.repos.CartItem.ListByCart(ctx, cartID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}

	return items, total, nil
}
