package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
)

// OrderService manages the order lifecycle and its audit ledger
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	Transition(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus, actorID *uuid.UUID, note string) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	GetHistory(ctx context.Context, orderID uuid.UUID, ascending bool) ([]*domain.OrderStatusHistory, error)
}

// CartService manages cart line items
type CartService interface {
	AddToCart(ctx context.Context, cartID uuid.UUID, req AddCartItemRequest) error
	SetQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error
	GetCart(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItem, int64, error)
}
