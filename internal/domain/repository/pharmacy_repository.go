package repository

import (
	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PharmacyRepository interface {
	Create(db *gorm.DB, pharmacy *entity.Pharmacy) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Pharmacy, error)
	FindVerifiedByID(db *gorm.DB, id uuid.UUID) (*entity.Pharmacy, error)
	FindAll(db *gorm.DB, filter entity.PharmacyFilter) ([]entity.Pharmacy, int64, error)
	Update(db *gorm.DB, pharmacy *entity.Pharmacy) error
	UpdateRating(db *gorm.DB, id uuid.UUID, rating float64, total int64) error
	IncrementOrders(db *gorm.DB, id uuid.UUID) error
}
