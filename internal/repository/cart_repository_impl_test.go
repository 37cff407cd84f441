package repository

import (
	"testing"
	"time"

	"dawaksahl-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_AddQuantityMergesLine(t *testing.T) {
	db, mock := newMockDB(t)
	stored := uuid.New()
	mock.ExpectQuery(`INSERT INTO "cart_items" .+ ON CONFLICT \("user_id","inventory_id"\) DO UPDATE SET "quantity"=cart_items.quantity \+ EXCLUDED.quantity.* RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "created_at"}).AddRow(stored, 5, time.Now()))

	line := &entity.CartItem{UserID: uuid.New(), InventoryID: uuid.New(), Quantity: 2}
	require.NoError(t, NewCartRepository().AddQuantity(db, line))

	assert.Equal(t, stored, line.ID)
	assert.Equal(t, 5, line.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM "cart_items" WHERE id = \$1 AND user_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := NewCartRepository().Delete(db, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
