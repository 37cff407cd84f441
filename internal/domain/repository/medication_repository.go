package repository

import (
	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(db *gorm.DB, category *entity.MedicationCategory) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicationCategory, error)
	FindActive(db *gorm.DB) ([]entity.MedicationCategory, error)
	Update(db *gorm.DB, category *entity.MedicationCategory) error
}

type MedicationRepository interface {
	Create(db *gorm.DB, medication *entity.Medication) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medication, error)
	FindAll(db *gorm.DB, filter entity.MedicationFilter) ([]entity.Medication, int64, error)
	Update(db *gorm.DB, medication *entity.Medication) error
}
