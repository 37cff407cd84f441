package repository

import (
	"errors"
	"strings"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, entry *entity.AuditLog) error {
	return db.Omit("User").Create(entry).Error
}

func (r *auditLogRepository) filtered(db *gorm.DB, filter entity.AuditLogFilter) *gorm.DB {
	query := db.Model(&entity.AuditLog{})
	switch {
	case strings.HasSuffix(filter.Action, "."):
		query = query.Where("action LIKE ?", startsWith(filter.Action))
	case filter.Action != "":
		query = query.Where("action = ?", filter.Action)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Entity != "" {
		query = query.Where("metadata->>'entity' = ?", filter.Entity)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	return query
}

func (r *auditLogRepository) List(db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	query := r.filtered(db, filter)

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var entries []entity.AuditLog
	err = query.Preload("User").Order("id DESC").Scopes(paginate(filter.Page)).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var entry entity.AuditLog
	err := db.Preload("User").Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

type actionCount struct {
	Action string
	Total  int64
}

// CountByAction ignores the page of the filter
func (r *auditLogRepository) CountByAction(db *gorm.DB, filter entity.AuditLogFilter) (map[string]int64, error) {
	var rows []actionCount
	err := r.filtered(db, filter).
		Select("action, COUNT(*) AS total").
		Group("action").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Action] = row.Total
	}
	return counts, nil
}
