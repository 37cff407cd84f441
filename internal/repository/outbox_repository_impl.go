package repository

import (
	"time"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type outboxRepository struct{}

func NewOutboxRepository() domainRepo.OutboxRepository {
	return &outboxRepository{}
}

func (r *outboxRepository) Create(db *gorm.DB, event *entity.OutboxEvent) error {
	return db.Create(event).Error
}

func (r *outboxRepository) FindPending(db *gorm.DB, limit, maxRetries int) ([]entity.OutboxEvent, error) {
	var events []entity.OutboxEvent
	err := db.Where("processed_at IS NULL AND retry_count < ?", maxRetries).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepository) MarkProcessed(db *gorm.DB, id uuid.UUID, at time.Time) error {
	return db.Model(&entity.OutboxEvent{}).Where("id = ?", id).Update("processed_at", at).Error
}

func (r *outboxRepository) MarkFailed(db *gorm.DB, id uuid.UUID, message string) error {
	return db.Model(&entity.OutboxEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"retry_count":   gorm.Expr("retry_count + ?", 1),
		"error_message": message,
	}).Error
}

func (r *outboxRepository) PurgeProcessed(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Where("processed_at IS NOT NULL AND processed_at < ?", before).Delete(&entity.OutboxEvent{})
	return result.RowsAffected, result.Error
}
