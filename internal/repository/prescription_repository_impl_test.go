package repository

import (
	"testing"

	"dawaksahl-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrescriptionRepository_UpdateIfStatus(t *testing.T) {
	db, mock := newMockDB(t)
	pharmacyID := uuid.New()
	prescription := &entity.Prescription{ID: uuid.New(), Status: entity.PrescriptionStatusVerified, PharmacyID: &pharmacyID}
	mock.ExpectExec(`UPDATE "prescriptions" SET .+ WHERE status = \$\d+ AND .*"id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := NewPrescriptionRepository().UpdateIfStatus(db, prescription, entity.PrescriptionStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
