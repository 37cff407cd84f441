package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActor_Unauthenticated(t *testing.T) {
	_, _, err := actor(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestParseDate(t *testing.T) {
	got, err := parseDate(" 2026-03-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDate("01/03/2026")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestIsDuplicateKeyError(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.True(t, isDuplicateKeyError(err, "email"))
	assert.True(t, isDuplicateKeyError(fmtWrap(err), "EMAIL"))
	assert.False(t, isDuplicateKeyError(err, "license"))
	assert.False(t, isDuplicateKeyError(&pgconn.PgError{Code: "23503", ConstraintName: "users_email_key"}, "email"))
	assert.False(t, isDuplicateKeyError(errors.New("boom"), "email"))
}

func TestIsForeignKeyError(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "medications_category_id_fkey"}
	assert.True(t, isForeignKeyError(err, "category_id"))
	assert.False(t, isForeignKeyError(err, "pharmacy_id"))
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("insert failed"), err)
}

func TestCreateNumbered_RetriesOnCollision(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT numbered")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("ROLLBACK TO SAVEPOINT numbered")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT numbered")).WillReturnResult(sqlmock.NewResult(0, 0))

	var numbers []string
	err := createNumbered(db, "ORD", "orders_order_number_key", func(number string) error {
		numbers = append(numbers, number)
		if len(numbers) == 1 {
			return &pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, numbers, 2)
	for _, n := range numbers {
		assert.Regexp(t, `^ORD`, n)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNumbered_GivesUp(t *testing.T) {
	db, mock := newMockDB(t)
	for i := 0; i < numberAttempts; i++ {
		mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT numbered")).WillReturnResult(sqlmock.NewResult(0, 0))
		if i < numberAttempts-1 {
			mock.ExpectExec(regexp.QuoteMeta("ROLLBACK TO SAVEPOINT numbered")).WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	calls := 0
	err := createNumbered(db, "RX", "prescriptions_prescription_number_key", func(string) error {
		calls++
		return &pgconn.PgError{Code: "23505", ConstraintName: "prescriptions_prescription_number_key"}
	})

	assert.Error(t, err)
	assert.Equal(t, numberAttempts, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNumbered_OtherErrorsStop(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT numbered")).WillReturnResult(sqlmock.NewResult(0, 0))

	boom := errors.New("boom")
	err := createNumbered(db, "ORD", "orders_order_number_key", func(string) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
