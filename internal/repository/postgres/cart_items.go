package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
	"github.com/umituz/turkticaret-case-sub003/pkg/errors"
)

type cartItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartItemRepository creates a new cart item repository
func NewCartItemRepository(db *sql.DB, logger *zap.Logger) *cartItemRepository {
	return &cartItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cartItemRepository) AddOrMerge(ctx context.Context, cartID, productID uuid.UUID, quantityDelta int, unitPrice int64) error {
	// One statement does the whole merge: insert a fresh line, or let the
	// database add the delta to whatever quantity is committed at that
	// moment and reactivate a removed line. Two callers racing on the
	// same (cart_id, product_id) both land their deltas; there is no
	// read-then-write window to lose one in. Rows for other keys are
	// untouched and unblocked.
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, is_removed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT cart_items_cart_product_key
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              is_removed = FALSE,
		              updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), cartID, productID, quantityDelta, unitPrice)
	if err != nil {
		r.logger.Error("Failed to add or merge cart item",
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return err
	}

	return nil
}

func (r *cartItemRepository) SetQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE cart_id = $1 AND product_id = $2 AND NOT is_removed
	`

	result, err := r.db.ExecContext(ctx, query, cartID, productID, quantity)
	if err != nil {
		r.logger.Error("Failed to set cart item quantity", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "cart item", ID: productID.String()}
	}

	return nil
}

func (r *cartItemRepository) Remove(ctx context.Context, cartID, productID uuid.UUID) error {
	// Soft delete: the row keeps its identity so a later add merges
	// back into the same line.
	query := `
		UPDATE cart_items
		SET is_removed = TRUE, updated_at = NOW()
		WHERE cart_id = $1 AND product_id = $2 AND NOT is_removed
	`

	result, err := r.db.ExecContext(ctx, query, cartID, productID)
	if err != nil {
		r.logger.Error("Failed to remove cart item", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "cart item", ID: productID.String()}
	}

	return nil
}

func (r *cartItemRepository) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	query := `
		UPDATE cart_items
		SET is_removed = TRUE, updated_at = NOW()
		WHERE cart_id = $1 AND NOT is_removed
	`

	_, err := r.db.ExecContext(ctx, query, cartID)
	if err != nil {
		r.logger.Error("Failed to clear cart", zap.Error(err))
		return err
	}

	return nil
}

func (r *cartItemRepository) ListByCart(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, is_removed, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND NOT is_removed
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		r.logger.Error("Failed to list cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.IsRemoved,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
