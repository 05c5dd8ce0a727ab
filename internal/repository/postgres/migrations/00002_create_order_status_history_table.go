package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpOrderStatusHistoryTable, DownOrderStatusHistoryTable)
}

func UpOrderStatusHistoryTable(ctx context.Context, tx *sql.Tx) error {
	// Append-only ledger: no updated_at, no soft delete, no UPDATE path.
	_, err := tx.ExecContext(ctx, `CREATE TABLE order_status_history
(
    id UUID PRIMARY KEY,
    order_id UUID NOT NULL REFERENCES orders (id),
    old_status VARCHAR(32),
    new_status VARCHAR(32) NOT NULL,
    changed_by UUID,
    note TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX idx_order_status_history_order_id ON order_status_history (order_id, created_at);`)
	return err
}

func DownOrderStatusHistoryTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE order_status_history;")
	return err
}
