package usecase

import (
	"testing"
	"time"

	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationRepo struct {
	repository.NotificationRepository
	owned      map[uuid.UUID]*entity.Notification
	purgedNow  time.Time
	readBefore time.Time
}

func (f *fakeNotificationRepo) FindByID(_ *gorm.DB, userID, id uuid.UUID) (*entity.Notification, error) {
	n, ok := f.owned[id]
	if !ok || n.UserID != userID {
		return nil, nil
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkRead(_ *gorm.DB, userID, id uuid.UUID, at time.Time) (int64, error) {
	n, ok := f.owned[id]
	if !ok || n.UserID != userID || n.IsRead {
		return 0, nil
	}
	n.IsRead, n.ReadAt = true, &at
	return 1, nil
}

func (f *fakeNotificationRepo) Delete(_ *gorm.DB, userID, id uuid.UUID) (int64, error) {
	n, ok := f.owned[id]
	if !ok || n.UserID != userID {
		return 0, nil
	}
	delete(f.owned, id)
	return 1, nil
}

func (f *fakeNotificationRepo) Purge(_ *gorm.DB, now, readBefore time.Time) (int64, error) {
	f.purgedNow, f.readBefore = now, readBefore
	return 4, nil
}

func newNotificationFixture(t *testing.T) (*notificationUsecase, *fakeNotificationRepo) {
	db, _ := newMockDB(t)
	repo := &fakeNotificationRepo{owned: map[uuid.UUID]*entity.Notification{}}
	return &notificationUsecase{db: db, log: newTestLogger(), notificationRepo: repo}, repo
}

func TestNotificationMarkRead(t *testing.T) {
	u, repo := newNotificationFixture(t)
	owner := uuid.New()
	n := &entity.Notification{ID: uuid.New(), UserID: owner}
	repo.owned[n.ID] = n
	ctx := asUser(owner, entity.RoleIDPatient)

	require.NoError(t, u.MarkRead(ctx, n.ID))
	firstRead := *n.ReadAt

	require.NoError(t, u.MarkRead(ctx, n.ID), "marking twice is not an error")
	assert.Equal(t, firstRead, *n.ReadAt)

	err := u.MarkRead(asUser(uuid.New(), entity.RoleIDPatient), n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationDelete_OtherUser(t *testing.T) {
	u, repo := newNotificationFixture(t)
	n := &entity.Notification{ID: uuid.New(), UserID: uuid.New()}
	repo.owned[n.ID] = n

	err := u.Delete(asUser(uuid.New(), entity.RoleIDPatient), n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.Contains(t, repo.owned, n.ID)
}

func TestNotificationPurge_KeepsNinetyDaysOfRead(t *testing.T) {
	u, repo := newNotificationFixture(t)

	removed, err := u.Purge(asUser(uuid.New(), entity.RoleIDAdmin))
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	assert.WithinDuration(t, repo.purgedNow.Add(-90*24*time.Hour), repo.readBefore, time.Second)
}

func TestNotificationList_RequiresUser(t *testing.T) {
	u, _ := newNotificationFixture(t)

	_, _, err := u.List(t.Context(), false, "", entity.Page{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
