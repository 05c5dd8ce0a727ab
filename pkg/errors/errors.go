package errors

import (
	"fmt"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
)

// ErrNotFound indicates a referenced resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ErrInvalidStateTransition indicates a status change not permitted from
// the order's current state. Client-caused, never retryable.
type ErrInvalidStateTransition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrConcurrentTransition indicates the conditional status update matched
// zero rows because another transition committed first. The caller may
// re-fetch the order and decide whether the change still applies; the
// service never retries on its own.
type ErrConcurrentTransition struct {
	OrderID  string
	Expected domain.OrderStatus
}

func (e *ErrConcurrentTransition) Error() string {
	return fmt.Sprintf("order %s is no longer %s, a concurrent transition won", e.OrderID, e.Expected)
}

// ErrUnauthorized indicates a failed authentication
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}
