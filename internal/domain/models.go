package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a customer order
type Order struct {
	ID              uuid.UUID
	OrderNumber     string // derived display value, never used for lookups
	Status          OrderStatus
	TotalAmount     int64 // minor currency units
	ShippingAddress string
	Notes           string
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderStatusHistory is one immutable entry in an order's audit ledger.
// OldStatus is nil for the creation event; ChangedBy is nil when the
// change was system-initiated.
type OrderStatusHistory struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	OldStatus *OrderStatus
	NewStatus OrderStatus
	ChangedBy *uuid.UUID
	Note      string
	CreatedAt time.Time
}

// CartItem represents one line item in a shopping cart. At most one
// non-removed row exists per (CartID, ProductID); removal sets IsRemoved
// instead of deleting the row so a later re-add resurrects the same line.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice int64 // minor currency units, captured at add time
	IsRemoved bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
