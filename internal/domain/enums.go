package domain

import "fmt"

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
		OrderStatusRefunded:
		return true
	default:
		return false
	}
}

// ParseOrderStatus converts a raw string into an OrderStatus. Raw status
// values coming from HTTP payloads must pass through here before they
// reach the transition policy.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// TransitionPolicy decides which status transitions are legal.
// AllowRefunds controls whether DELIVERED and CANCELLED orders may move to
// REFUNDED; deployments without a refund flow keep both as terminal states.
type TransitionPolicy struct {
	AllowRefunds bool
}

// CanTransition reports whether current -> target is a legal transition.
// Self-transitions and moves out of a terminal state are never legal.
func (p TransitionPolicy) CanTransition(current, target OrderStatus) bool {
	switch current {
	case OrderStatusPending:
		return target == OrderStatusConfirmed ||
			target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusProcessing ||
			target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped ||
			target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return p.AllowRefunds && target == OrderStatusRefunded
	case OrderStatusRefunded:
		return false // terminal
	default:
		return false
	}
}

// IsTerminal reports whether no transition can ever leave the given status
// under this policy.
func (p TransitionPolicy) IsTerminal(s OrderStatus) bool {
	if s == OrderStatusRefunded {
		return true
	}
	if s == OrderStatusDelivered || s == OrderStatusCancelled {
		return !p.AllowRefunds
	}
	return false
}
