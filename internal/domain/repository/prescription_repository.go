package repository

import (
	"time"

	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindAll(db *gorm.DB, filter entity.PrescriptionFilter) ([]entity.Prescription, int64, error)
	Update(db *gorm.DB, prescription *entity.Prescription) error
	UpdateIfStatus(db *gorm.DB, prescription *entity.Prescription, expected entity.PrescriptionStatus) (int64, error)
	// ExpireDue moves pending and verified prescriptions past their expiry date to expired
	ExpireDue(db *gorm.DB, now time.Time) (int64, error)
}
