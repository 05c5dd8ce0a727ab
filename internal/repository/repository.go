package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
)

// StatusTransition describes one status change to apply atomically:
// the conditional status update, optional timestamp stamping, and the
// history entry are committed together or not at all.
type StatusTransition struct {
	OrderID        uuid.UUID
	From           domain.OrderStatus
	To             domain.OrderStatus
	ChangedBy      *uuid.UUID
	Note           string
	StampShipped   bool
	StampDelivered bool
}

// OrderRepository is the persistence boundary for orders and their
// status history ledger.
type OrderRepository interface {
	// Create inserts the order and seeds the first history entry
	// (old status nil, new status PENDING) in one transaction.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// ApplyTransition performs the conditional status update
	// (WHERE status = From) and appends the matching history entry in
	// one transaction. Returns *errors.ErrConcurrentTransition when the
	// update matches zero rows because the order moved underneath us.
	ApplyTransition(ctx context.Context, t StatusTransition) error
	ListHistory(ctx context.Context, orderID uuid.UUID, ascending bool) ([]*domain.OrderStatusHistory, error)
}

// CartItemRepository is the persistence boundary for cart line items.
type CartItemRepository interface {
	// AddOrMerge inserts a new line or adds quantityDelta to the
	// existing line for (cartID, productID) as a single atomic
	// statement, reactivating a removed line. The arithmetic runs in
	// the database; callers never read-then-write.
	AddOrMerge(ctx context.Context, cartID, productID uuid.UUID, quantityDelta int, unitPrice int64) error
	SetQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, cartID, productID uuid.UUID) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error
	ListByCart(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItem, error)
}

// Repositories bundles all repositories for injection
type Repositories struct {
	Order    OrderRepository
	CartItem CartItemRepository
}
