package repository

import (
	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Review, error)
	FindAll(db *gorm.DB, filter entity.ReviewFilter) ([]entity.Review, int64, error)
	Update(db *gorm.DB, review *entity.Review) error
	Delete(db *gorm.DB, id uuid.UUID) error
	ExistsForTarget(db *gorm.DB, userID uuid.UUID, pharmacyID, medicationID *uuid.UUID) (bool, error)
	Stats(db *gorm.DB, pharmacyID, medicationID *uuid.UUID) (*entity.RatingStats, error)
	AddHelpfulVote(db *gorm.DB, vote *entity.ReviewHelpfulVote) error
}
