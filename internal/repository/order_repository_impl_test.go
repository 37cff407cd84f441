package repository

import (
	"testing"

	"dawaksahl-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_LockedReadOnlyLocksTheOrderRow(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 .*FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, err := NewOrderRepository().FindByID(locked(db), id)
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateIfStatusGuardsOnStoredStatus(t *testing.T) {
	db, mock := newMockDB(t)
	order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusCancelled}
	mock.ExpectExec(`UPDATE "orders" SET .+ WHERE status = \$\d+ AND .*"id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := NewOrderRepository().UpdateIfStatus(db, order, entity.OrderStatusPending)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
