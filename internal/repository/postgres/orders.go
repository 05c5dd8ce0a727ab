package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
	"github.com/umituz/turkticaret-case-sub003/internal/repository"
	"github.com/umituz/turkticaret-case-sub003/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const insertHistoryQuery = `
	INSERT INTO order_status_history (id, order_id, old_status, new_status, changed_by, note, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = order.CreatedAt
	order.Status = domain.OrderStatusPending

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, order_number, status, total_amount, shipping_address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.Status,
		order.TotalAmount,
		order.ShippingAddress,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	// Seed the ledger: old status NULL marks the creation event, nil
	// actor marks it system-initiated. An order without this first
	// entry must never be observable.
	_, err = tx.ExecContext(ctx, insertHistoryQuery,
		uuid.New(),
		order.ID,
		nil,
		order.Status,
		nil,
		"Order created",
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to seed order history", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, order_number, status, total_amount, shipping_address, notes,
		       shipped_at, delivered_at, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	var shippedAt, deliveredAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.Status,
		&order.TotalAmount,
		&order.ShippingAddress,
		&order.Notes,
		&shippedAt,
		&deliveredAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}

	if shippedAt.Valid {
		order.ShippedAt = &shippedAt.Time
	}
	if deliveredAt.Valid {
		order.DeliveredAt = &deliveredAt.Time
	}

	return &order, nil
}

func (r *orderRepository) ApplyTransition(ctx context.Context, t repository.StatusTransition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	// Conditional write: the status is only moved if it still equals the
	// value the caller validated against. Timestamps stamp once and are
	// never overwritten.
	query := `
		UPDATE orders
		SET status = $3,
		    shipped_at = CASE WHEN $4 THEN COALESCE(shipped_at, NOW()) ELSE shipped_at END,
		    delivered_at = CASE WHEN $5 THEN COALESCE(delivered_at, NOW()) ELSE delivered_at END,
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	result, err := tx.ExecContext(ctx, query,
		t.OrderID,
		t.From,
		t.To,
		t.StampShipped,
		t.StampDelivered,
	)
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Zero rows means either the order vanished or a concurrent
		// transition moved it first; distinguish the two for the caller.
		var exists bool
		err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, t.OrderID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return &errors.ErrNotFound{Resource: "order", ID: t.OrderID.String()}
		}
		return &errors.ErrConcurrentTransition{OrderID: t.OrderID.String(), Expected: t.From}
	}

	old := t.From
	_, err = tx.ExecContext(ctx, insertHistoryQuery,
		uuid.New(),
		t.OrderID,
		&old,
		t.To,
		t.ChangedBy,
		t.Note,
		time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to append order history", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (r *orderRepository) ListHistory(ctx context.Context, orderID uuid.UUID, ascending bool) ([]*domain.OrderStatusHistory, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := `
		SELECT id, order_id, old_status, new_status, changed_by, note, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at ` + direction

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to query order history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.OrderStatusHistory, 0)
	for rows.Next() {
		var entry domain.OrderStatusHistory
		var oldStatus sql.NullString
		var changedBy uuid.NullUUID

		err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&oldStatus,
			&entry.NewStatus,
			&changedBy,
			&entry.Note,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if oldStatus.Valid {
			s := domain.OrderStatus(oldStatus.String)
			entry.OldStatus = &s
		}
		if changedBy.Valid {
			entry.ChangedBy = &changedBy.UUID
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
