package repository

import (
	"time"

	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboxRepository interface {
	Create(db *gorm.DB, event *entity.OutboxEvent) error
	FindPending(db *gorm.DB, limit, maxRetries int) ([]entity.OutboxEvent, error)
	MarkProcessed(db *gorm.DB, id uuid.UUID, at time.Time) error
	MarkFailed(db *gorm.DB, id uuid.UUID, message string) error
	PurgeProcessed(db *gorm.DB, before time.Time) (int64, error)
}
