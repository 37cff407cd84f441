package repository

import (
	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(db *gorm.DB, favorite *entity.Favorite) error
	FindAll(db *gorm.DB, filter entity.FavoriteFilter) ([]entity.Favorite, int64, error)
	FindByTarget(db *gorm.DB, userID uuid.UUID, target entity.FavoriteTarget) (*entity.Favorite, error)
	Delete(db *gorm.DB, userID, id uuid.UUID) (int64, error)
	// DeleteAll clears the user's favorites, or only those of itemType when it is set
	DeleteAll(db *gorm.DB, userID uuid.UUID, itemType entity.FavoriteType) (int64, error)
	CountByType(db *gorm.DB, userID uuid.UUID) (map[entity.FavoriteType]int64, error)
}

type CartRepository interface {
	FindByUser(db *gorm.DB, userID uuid.UUID) ([]entity.CartItem, error)
	FindOwned(db *gorm.DB, userID, id uuid.UUID) (*entity.CartItem, error)
	// AddQuantity inserts the line or adds to the existing one for the same inventory item.
	// item.ID and item.Quantity hold the stored line afterwards.
	AddQuantity(db *gorm.DB, item *entity.CartItem) error
	Update(db *gorm.DB, item *entity.CartItem) error
	Delete(db *gorm.DB, userID, id uuid.UUID) (int64, error)
	Clear(db *gorm.DB, userID uuid.UUID) (int64, error)
}
