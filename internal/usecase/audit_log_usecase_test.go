package usecase

import (
	"context"
	"testing"
	"time"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuditLogRepo struct {
	entries []entity.AuditLog
	counts  map[string]int64
	filter  entity.AuditLogFilter
}

func (f *fakeAuditLogRepo) Create(*gorm.DB, *entity.AuditLog) error { return nil }

func (f *fakeAuditLogRepo) List(_ *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	f.filter = filter
	return f.entries, int64(len(f.entries)), nil
}

func (f *fakeAuditLogRepo) FindByID(_ *gorm.DB, id int64) (*entity.AuditLog, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return &f.entries[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAuditLogRepo) CountByAction(_ *gorm.DB, filter entity.AuditLogFilter) (map[string]int64, error) {
	f.filter = filter
	return f.counts, nil
}

func newAuditLogUsecase(t *testing.T, repo *fakeAuditLogRepo) AuditLogUsecase {
	db, _ := newMockDB(t)
	return NewAuditLogUsecase(db, newTestLogger(), repo)
}

func TestAuditLogList_BuildsFilter(t *testing.T) {
	repo := &fakeAuditLogRepo{}
	uc := newAuditLogUsecase(t, repo)
	actor := uuid.New()

	_, _, err := uc.List(context.Background(), dto.AuditLogQuery{
		Action: "order.",
		UserID: &actor,
		Entity: "order",
		From:   "2026-03-01",
		To:     "2026-03-31",
	}, entity.Page{Offset: 20, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, "order.", repo.filter.Action)
	assert.Equal(t, &actor, repo.filter.UserID)
	assert.Equal(t, "order", repo.filter.Entity)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *repo.filter.From)
	// the last day is included
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *repo.filter.To)
	assert.Equal(t, entity.Page{Offset: 20, Limit: 20}, repo.filter.Page)
}

func TestAuditLogList_InvalidDates(t *testing.T) {
	uc := newAuditLogUsecase(t, &fakeAuditLogRepo{})

	_, _, err := uc.List(context.Background(), dto.AuditLogQuery{From: "01/03/2026"}, entity.Page{})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, _, err = uc.List(context.Background(), dto.AuditLogQuery{From: "2026-04-02", To: "2026-04-01"}, entity.Page{})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Summary(context.Background(), dto.AuditLogQuery{To: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestAuditLogGet_LiftsMetadata(t *testing.T) {
	actor := uuid.New()
	repo := &fakeAuditLogRepo{entries: []entity.AuditLog{{
		ID:     7,
		UserID: &actor,
		Action: entity.AuditActionPharmacyVerify,
		Metadata: entity.JSON{
			"entity":    "pharmacy",
			"entity_id": "ph-1",
			"old_value": "pending",
			"new_value": "approved",
		},
		User: &entity.User{ID: actor, FirstName: "Sara", LastName: "Admin", RoleID: entity.RoleIDAdmin},
	}}}
	uc := newAuditLogUsecase(t, repo)

	res, err := uc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "pharmacy", res.Entity)
	assert.Equal(t, "ph-1", res.EntityID)
	assert.Equal(t, "pending", res.OldValue)
	assert.Equal(t, "approved", res.NewValue)
	require.NotNil(t, res.Actor)
	assert.Equal(t, entity.RoleAdmin, res.Actor.Role)

	_, err = uc.Get(context.Background(), 8)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}

func TestAuditLogSummary_Totals(t *testing.T) {
	repo := &fakeAuditLogRepo{counts: map[string]int64{
		entity.AuditActionUserLogin:   12,
		entity.AuditActionOrderStatus: 5,
	}}
	uc := newAuditLogUsecase(t, repo)

	summary, err := uc.Summary(context.Background(), dto.AuditLogQuery{Entity: "order"})
	require.NoError(t, err)
	assert.Equal(t, int64(17), summary.Total)
	assert.Equal(t, int64(5), summary.ByAction[entity.AuditActionOrderStatus])
	assert.Equal(t, entity.Page{}, repo.filter.Page)
}
