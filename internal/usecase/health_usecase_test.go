package usecase

import (
	"errors"
	"testing"

	"dawaksahl-api/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthFixture(t *testing.T) (HealthUsecase, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db := openGorm(t, sqlDB)
	mr, client := newTestRedis(t)
	u := NewHealthUsecase(db, client, newTestLogger(), config.AppConfig{Name: "DawakSahl API", Version: "1.0.0"})
	return u, mock, mr.Close
}

func TestHealth_Healthy(t *testing.T) {
	u, mock, _ := newHealthFixture(t)
	mock.ExpectPing()

	resp := u.Check(t.Context())
	assert.Equal(t, HealthStatusHealthy, resp.Status)
	assert.Equal(t, "DawakSahl API", resp.App)
	assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, resp.Checks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth_RedisDownDegrades(t *testing.T) {
	u, mock, stopRedis := newHealthFixture(t)
	mock.ExpectPing()
	stopRedis()

	resp := u.Check(t.Context())
	assert.Equal(t, HealthStatusDegraded, resp.Status)
	assert.Equal(t, "unavailable", resp.Checks["redis"])
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestHealth_DatabaseDownIsUnhealthy(t *testing.T) {
	u, mock, stopRedis := newHealthFixture(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	stopRedis()

	resp := u.Check(t.Context())
	assert.Equal(t, HealthStatusUnhealthy, resp.Status)
	assert.Equal(t, "unavailable", resp.Checks["database"])
}
