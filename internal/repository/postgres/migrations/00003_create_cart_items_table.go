package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpCartItemsTable, DownCartItemsTable)
}

func UpCartItemsTable(ctx context.Context, tx *sql.Tx) error {
	// The unique constraint on (cart_id, product_id) backs the
	// ON CONFLICT upsert in the cart item repository.
	_, err := tx.ExecContext(ctx, `CREATE TABLE cart_items
(
    id UUID PRIMARY KEY,
    cart_id UUID NOT NULL,
    product_id UUID NOT NULL,
    quantity INT NOT NULL CHECK (quantity > 0),
    unit_price BIGINT NOT NULL,
    is_removed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT cart_items_cart_product_key UNIQUE (cart_id, product_id)
);

CREATE INDEX idx_cart_items_cart_id ON cart_items (cart_id) WHERE NOT is_removed;`)
	return err
}

func DownCartItemsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE cart_items;")
	return err
}
