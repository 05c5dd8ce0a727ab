package service

import "github.com/google/uuid"

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	TotalAmount     int64  `json:"total_amount" binding:"required,min=0"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	Notes           string `json:"notes"`
}

// TransitionRequest represents a status change payload. ActorID is the
// acting user, passed explicitly by the caller; nil means the change is
// system-initiated.
type TransitionRequest struct {
	Status  string     `json:"status" binding:"required"`
	ActorID *uuid.UUID `json:"actor_id,omitempty"`
	Note    string     `json:"note"`
}

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitPrice int64     `json:"unit_price" binding:"required,min=0"`
}

// SetCartItemQuantityRequest represents the quantity overwrite payload
type SetCartItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
