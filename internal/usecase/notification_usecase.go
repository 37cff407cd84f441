package usecase

import (
	"context"
	"errors"
	"time"

	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// readRetention is how long read notifications are kept
const readRetention = 90 * 24 * time.Hour

type NotificationUsecase interface {
	List(ctx context.Context, unreadOnly bool, notificationType entity.NotificationType, page entity.Page) ([]dto.NotificationResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ClearAll(ctx context.Context) (int64, error)
	UnreadCount(ctx context.Context) (int64, error)
	Purge(ctx context.Context) (int64, error)
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) List(ctx context.Context, unreadOnly bool, notificationType entity.NotificationType, page entity.Page) ([]dto.NotificationResponse, int64, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	notifications, total, err := u.notificationRepo.FindAll(u.db.WithContext(ctx), entity.NotificationFilter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Type:       notificationType,
		Page:       page,
	}, time.Now())
	if err != nil {
		u.log.Warnf("Failed to list notifications: %+v", err)
		return nil, 0, err
	}
	return converter.NotificationsToResponses(notifications, i18n.FromContext(ctx)), total, nil
}

func (u *notificationUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.NotificationResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	notification, err := u.notificationRepo.FindByID(u.db.WithContext(ctx), userID, id)
	if err != nil {
		u.log.Warnf("Failed to find notification: %+v", err)
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return converter.NotificationToResponse(notification, i18n.FromContext(ctx)), nil
}

// MarkRead is idempotent; an already read notification keeps its original read time
func (u *notificationUsecase) MarkRead(ctx context.Context, id uuid.UUID) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	db := u.db.WithContext(ctx)
	updated, err := u.notificationRepo.MarkRead(db, userID, id, time.Now())
	if err != nil {
		u.log.Warnf("Failed to mark notification read: %+v", err)
		return err
	}
	if updated > 0 {
		return nil
	}

	existing, err := u.notificationRepo.FindByID(db, userID, id)
	if err != nil {
		u.log.Warnf("Failed to find notification: %+v", err)
		return err
	}
	if existing == nil {
		return ErrNotificationNotFound
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context) (int64, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return 0, err
	}

	updated, err := u.notificationRepo.MarkAllRead(u.db.WithContext(ctx), userID, time.Now())
	if err != nil {
		u.log.Warnf("Failed to mark all notifications read: %+v", err)
		return 0, err
	}
	return updated, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	deleted, err := u.notificationRepo.Delete(u.db.WithContext(ctx), userID, id)
	if err != nil {
		u.log.Warnf("Failed to delete notification: %+v", err)
		return err
	}
	if deleted == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (u *notificationUsecase) ClearAll(ctx context.Context) (int64, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return 0, err
	}

	deleted, err := u.notificationRepo.DeleteAll(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to clear notifications: %+v", err)
		return 0, err
	}
	return deleted, nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context) (int64, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return 0, err
	}

	total, err := u.notificationRepo.CountUnread(u.db.WithContext(ctx), userID, time.Now())
	if err != nil {
		u.log.Warnf("Failed to count unread notifications: %+v", err)
		return 0, err
	}
	return total, nil
}

// Purge runs from the scheduler
func (u *notificationUsecase) Purge(ctx context.Context) (int64, error) {
	now := time.Now()
	removed, err := u.notificationRepo.Purge(u.db.WithContext(ctx), now, now.Add(-readRetention))
	if err != nil {
		u.log.Warnf("Failed to purge notifications: %+v", err)
		return 0, err
	}
	if removed > 0 {
		u.log.Infof("Purged %d notifications", removed)
	}
	return removed, nil
}
