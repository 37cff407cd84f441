package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userAddressRepository struct{}

func NewUserAddressRepository() domainRepo.UserAddressRepository {
	return &userAddressRepository{}
}

func (r *userAddressRepository) Create(db *gorm.DB, address *entity.UserAddress) error {
	return db.Create(address).Error
}

func (r *userAddressRepository) FindByID(db *gorm.DB, userID, id uuid.UUID) (*entity.UserAddress, error) {
	var address entity.UserAddress
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (r *userAddressRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.UserAddress, error) {
	var addresses []entity.UserAddress
	err := db.Where("user_id = ?", userID).Order("is_default DESC, created_at ASC").Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *userAddressRepository) CountByUserID(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.UserAddress{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

func (r *userAddressRepository) Update(db *gorm.DB, address *entity.UserAddress) error {
	return db.Save(address).Error
}

func (r *userAddressRepository) Delete(db *gorm.DB, userID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.UserAddress{})
	return result.RowsAffected, result.Error
}

func (r *userAddressRepository) ClearDefault(db *gorm.DB, userID uuid.UUID, exceptID uuid.UUID) error {
	return db.Model(&entity.UserAddress{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, exceptID, true).
		Update("is_default", false).Error
}

// PromoteDefault marks the oldest remaining address as default when none is
func (r *userAddressRepository) PromoteDefault(db *gorm.DB, userID uuid.UUID) error {
	var hasDefault int64
	if err := db.Model(&entity.UserAddress{}).Where("user_id = ? AND is_default = ?", userID, true).Count(&hasDefault).Error; err != nil {
		return err
	}
	if hasDefault > 0 {
		return nil
	}

	var oldest entity.UserAddress
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Limit(1).Find(&oldest).Error
	if err != nil || oldest.ID == uuid.Nil {
		return err
	}
	return db.Model(&entity.UserAddress{}).Where("id = ?", oldest.ID).Update("is_default", true).Error
}
