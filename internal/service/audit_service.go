package service

import (
	"context"

	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditEntry describes one audited change. Values are stored as given inside the metadata.
type AuditEntry struct {
	ActorID    *uuid.UUID
	Action     string
	EntityName string
	EntityID   string
	OldValue   interface{}
	NewValue   interface{}
}

type AuditService interface {
	Log(ctx context.Context, tx *gorm.DB, entry AuditEntry) error
	LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// Log writes the entry on tx so it commits or rolls back with the audited change
func (s *auditService) Log(ctx context.Context, tx *gorm.DB, entry AuditEntry) error {
	auditLog := &entity.AuditLog{
		UserID: entry.ActorID,
		Action: entry.Action,
		Metadata: entity.JSON{
			"entity":    entry.EntityName,
			"entity_id": entry.EntityID,
			"old_value": entry.OldValue,
			"new_value": entry.NewValue,
		},
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", entry.Action, err)
		return err
	}

	return nil
}

func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.Log(ctx, tx, AuditEntry{ActorID: userID, Action: action, EntityName: entityName, EntityID: entityID, NewValue: newValue})
}

func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.Log(ctx, tx, AuditEntry{ActorID: userID, Action: action, EntityName: entityName, EntityID: entityID, OldValue: oldValue, NewValue: newValue})
}

func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.Log(ctx, tx, AuditEntry{ActorID: userID, Action: action, EntityName: entityName, EntityID: entityID, OldValue: oldValue})
}
