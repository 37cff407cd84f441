package repository

import (
	"time"

	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByID(db *gorm.DB, userID, id uuid.UUID) (*entity.Notification, error)
	FindAll(db *gorm.DB, filter entity.NotificationFilter, now time.Time) ([]entity.Notification, int64, error)
	MarkRead(db *gorm.DB, userID, id uuid.UUID, at time.Time) (int64, error)
	MarkAllRead(db *gorm.DB, userID uuid.UUID, at time.Time) (int64, error)
	Delete(db *gorm.DB, userID, id uuid.UUID) (int64, error)
	DeleteAll(db *gorm.DB, userID uuid.UUID) (int64, error)
	CountUnread(db *gorm.DB, userID uuid.UUID, now time.Time) (int64, error)
	// Purge removes expired notifications and read ones older than readBefore
	Purge(db *gorm.DB, now, readBefore time.Time) (int64, error)
}
