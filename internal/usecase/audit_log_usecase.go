package usecase

import (
	"context"
	"errors"

	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
	ErrInvalidDateRange = errors.New("from date is after to date")
)

type AuditLogUsecase interface {
	List(ctx context.Context, query dto.AuditLogQuery, page entity.Page) ([]dto.AuditLogResponse, int64, error)
	Get(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
	// Summary counts entries per action over the same filters as List
	Summary(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogSummaryResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func auditFilter(query dto.AuditLogQuery, page entity.Page) (entity.AuditLogFilter, error) {
	from, err := parseDate(query.From)
	if err != nil {
		return entity.AuditLogFilter{}, err
	}
	to, err := parseDate(query.To)
	if err != nil {
		return entity.AuditLogFilter{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return entity.AuditLogFilter{}, ErrInvalidDateRange
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	return entity.AuditLogFilter{
		Action: query.Action,
		UserID: query.UserID,
		Entity: query.Entity,
		From:   from,
		To:     to,
		Page:   page,
	}, nil
}

func (u *auditLogUsecase) List(ctx context.Context, query dto.AuditLogQuery, page entity.Page) ([]dto.AuditLogResponse, int64, error) {
	filter, err := auditFilter(query, page)
	if err != nil {
		return nil, 0, err
	}

	entries, total, err := u.auditLogRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, 0, err
	}

	return converter.AuditLogsToResponses(entries), total, nil
}

func (u *auditLogUsecase) Get(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	entry, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if entry == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(entry), nil
}

func (u *auditLogUsecase) Summary(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogSummaryResponse, error) {
	filter, err := auditFilter(query, entity.Page{})
	if err != nil {
		return nil, err
	}

	counts, err := u.auditLogRepo.CountByAction(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to count audit logs: %+v", err)
		return nil, err
	}

	summary := &dto.AuditLogSummaryResponse{ByAction: counts}
	for _, n := range counts {
		summary.Total += n
	}
	return summary, nil
}
