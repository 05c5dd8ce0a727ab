package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
	"github.com/umituz/turkticaret-case-sub003/internal/metrics"
	"github.com/umituz/turkticaret-case-sub003/internal/notify"
	"github.com/umituz/turkticaret-case-sub003/internal/repository"
	"github.com/umituz/turkticaret-case-sub003/pkg/errors"
)

type orderService struct {
	repos    *repository.Repositories
	policy   domain.TransitionPolicy
	notifier *notify.Notifier
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, policy domain.TransitionPolicy, notifier *notify.Notifier, logger *zap.Logger) *orderService {
	return &orderService{
		repos:    repos,
		policy:   policy,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateOrder creates a new PENDING order and seeds its status history
func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	order := &domain.Order{
		ID:              uuid.New(),
		Status:          domain.OrderStatusPending,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}
	order.OrderNumber = newOrderNumber(order.ID)

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
	)

	return order, nil
}

// Transition moves an order to the target status, appending one history
// entry. The policy is checked against the status read here; if another
// transition commits in between, the conditional write fails with
// ErrConcurrentTransition and nothing is mutated.
func (s *orderService) Transition(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus, actorID *uuid.UUID, note string) (*domain.Order, error) {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanTransition(order.Status, target) {
		metrics.OrderTransitionsRejectedTotal.Inc()
		return nil, &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   target,
		}
	}

	if note == "" {
		note = fmt.Sprintf("Status changed from %s to %s", order.Status, target)
	}

	t := repository.StatusTransition{
		OrderID:        orderID,
		From:           order.Status,
		To:             target,
		ChangedBy:      actorID,
		Note:           note,
		StampShipped:   target == domain.OrderStatusShipped,
		StampDelivered: target == domain.OrderStatusDelivered,
	}

	if err := s.repos.Order.ApplyTransition(ctx, t); err != nil {
		if _, ok := err.(*errors.ErrConcurrentTransition); ok {
			metrics.OrderTransitionConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(order.Status), string(target)).Inc()

	old := order.Status
	s.notifier.StatusChanged(notify.StatusChangedEvent{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		OldStatus:   &old,
		NewStatus:   target,
		OccurredAt:  time.Now(),
	})

	updated, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("from", string(old)),
		zap.String("to", string(target)),
	)

	return updated, nil
}

// GetOrder returns one order by id
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.repos.Order.GetByID(ctx, orderID)
}

// GetHistory returns the order's status ledger. Ascending order
// reconstructs the lifecycle; descending is for display.
func (s *orderService) GetHistory(ctx context.Context, orderID uuid.UUID, ascending bool) ([]*domain.OrderStatusHistory, error) {
	if _, err := s.repos.Order.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repos.Order.ListHistory(ctx, orderID, ascending)
}

// newOrderNumber derives the human-readable display number. It is never
// used for lookups.
func newOrderNumber(id uuid.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
