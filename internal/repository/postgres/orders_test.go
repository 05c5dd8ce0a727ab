package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
	"github.com/umituz/turkticaret-case-sub003/internal/repository"
	"github.com/umituz/turkticaret-case-sub003/pkg/errors"
)

func TestOrderRepository_Create_SeedsHistoryInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db, zap.NewNop())

	order := &domain.Order{
		OrderNumber:     "ORD-20240101-ABCDEF12",
		TotalAmount:     5000,
		ShippingAddress: "1 Main St",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(sqlmock.AnyArg(), order.OrderNumber, "PENDING", int64(5000), "1 Main St", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_status_history`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "PENDING", nil, "Order created", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_RollsBackOnHistoryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_status_history`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err = repo.Create(context.Background(), &domain.Order{OrderNumber: "ORD-X"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ApplyTransition_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db, zap.NewNop())

	orderID := uuid.New()
	actorID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE orders`).
		WithArgs(orderID, "PROCESSING", "SHIPPED", true, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_status_history`).
		WithArgs(sqlmock.AnyArg(), orderID, "PROCESSING", "SHIPPED", actorID, "shipped via carrier", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.ApplyTransition(context.Background(), repository.StatusTransition{
		OrderID:      orderID,
		From:         domain.OrderStatusProcessing,
		To:           domain.OrderStatusShipped,
		ChangedBy:    &actorID,
		Note:         "shipped via carrier",
		StampShipped: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ApplyTransition_ConflictOnZeroRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db, zap.NewNop())

	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE orders`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err = repo.ApplyTransition(context.Background(), repository.StatusTransition{
		OrderID: orderID,
		From:    domain.OrderStatusPending,
		To:      domain.OrderStatusConfirmed,
	})

	var conflict *errors.ErrConcurrentTransition
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.OrderStatusPending, conflict.Expected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ApplyTransition_NotFoundOnZeroRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db, zap.NewNop())

	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE orders`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err = repo.ApplyTransition(context.Background(), repository.StatusTransition{
		OrderID: orderID,
		From:    domain.OrderStatusPending,
		To:      domain.OrderStatusConfirmed,
	})

	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT (.+) FROM orders`).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByID(context.Background(), uuid.New())
	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestOrderRepository_ListHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db, zap.NewNop())

	orderID := uuid.New()
	actorID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "order_id", "old_status", "new_status", "changed_by", "note", "created_at"}).
		AddRow(uuid.New().String(), orderID.String(), nil, "PENDING", nil, "Order created", now.Add(-time.Minute)).
		AddRow(uuid.New().String(), orderID.String(), "PENDING", "CONFIRMED", actorID.String(), "", now)

	mock.ExpectQuery(`ORDER BY created_at ASC`).
		WithArgs(orderID).
		WillReturnRows(rows)

	entries, err := repo.ListHistory(context.Background(), orderID, true)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Nil(t, entries[0].OldStatus)
	assert.Equal(t, domain.OrderStatusPending, entries[0].NewStatus)
	assert.Nil(t, entries[0].ChangedBy)

	require.NotNil(t, entries[1].OldStatus)
	assert.Equal(t, domain.OrderStatusPending, *entries[1].OldStatus)
	assert.Equal(t, domain.OrderStatusConfirmed, entries[1].NewStatus)
	require.NotNil(t, entries[1].ChangedBy)
	assert.Equal(t, actorID, *entries[1].ChangedBy)
}
