package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPharmacyRepository_LockedRead(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "pharmacies" WHERE user_id = \$1 .*FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	pharmacy, err := NewPharmacyRepository().FindByUserID(locked(db), id)
	require.NoError(t, err)
	assert.Nil(t, pharmacy)
	assert.NoError(t, mock.ExpectationsWereMet())
}
