package repository

import (
	"errors"
	"time"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByID(db *gorm.DB, userID, id uuid.UUID) (*entity.Notification, error) {
	var notification entity.Notification
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindAll(db *gorm.DB, filter entity.NotificationFilter, now time.Time) ([]entity.Notification, int64, error) {
	query := db.Model(&entity.Notification{}).
		Where("user_id = ?", filter.UserID).
		Where("expires_at IS NULL OR expires_at > ?", now)

	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if filter.Type != "" {
		query = query.Where("notification_type = ?", filter.Type)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var notifications []entity.Notification
	err = query.Order("created_at DESC").Scopes(paginate(filter.Page)).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(db *gorm.DB, userID, id uuid.UUID, at time.Time) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllRead(db *gorm.DB, userID uuid.UUID, at time.Time) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) Delete(db *gorm.DB, userID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) DeleteAll(db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(db *gorm.DB, userID uuid.UUID, now time.Time) (int64, error) {
	var total int64
	err := db.Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Count(&total).Error
	return total, err
}

func (r *notificationRepository) Purge(db *gorm.DB, now, readBefore time.Time) (int64, error) {
	result := db.
		Where("(expires_at IS NOT NULL AND expires_at <= ?) OR (is_read = ? AND created_at < ?)", now, true, readBefore).
		Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}
