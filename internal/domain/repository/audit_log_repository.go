package repository

import (
	"dawaksahl-api/internal/domain/entity"

	"gorm.io/gorm"
)

// AuditLogRepository is append-only; entries are never updated or deleted
type AuditLogRepository interface {
	Create(db *gorm.DB, entry *entity.AuditLog) error
	List(db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, int64, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
	CountByAction(db *gorm.DB, filter entity.AuditLogFilter) (map[string]int64, error)
}
