package repository

import (
	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindWithProfile(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdateFields(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
}

type UserAddressRepository interface {
	Create(db *gorm.DB, address *entity.UserAddress) error
	FindByID(db *gorm.DB, userID, id uuid.UUID) (*entity.UserAddress, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.UserAddress, error)
	CountByUserID(db *gorm.DB, userID uuid.UUID) (int64, error)
	Update(db *gorm.DB, address *entity.UserAddress) error
	Delete(db *gorm.DB, userID, id uuid.UUID) (int64, error)
	ClearDefault(db *gorm.DB, userID uuid.UUID, exceptID uuid.UUID) error
	PromoteDefault(db *gorm.DB, userID uuid.UUID) error
}
