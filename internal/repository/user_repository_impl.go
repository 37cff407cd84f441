package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Omit("Role", "PatientProfile", "Pharmacy", "DoctorProfile").Create(user).Error
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindWithProfile loads the user together with the profile matching its role
func (r *userRepository) FindWithProfile(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	user, err := r.FindByID(db.Preload("Role"), id)
	if err != nil || user == nil {
		return user, err
	}

	switch user.RoleID {
	case entity.RoleIDPatient:
		var profile entity.PatientProfile
		if err := db.Where("user_id = ?", id).Limit(1).Find(&profile).Error; err != nil {
			return nil, err
		}
		if profile.UserID != uuid.Nil {
			user.PatientProfile = &profile
		}
	case entity.RoleIDPharmacy:
		var pharmacy entity.Pharmacy
		if err := db.Where("user_id = ?", id).Limit(1).Find(&pharmacy).Error; err != nil {
			return nil, err
		}
		if pharmacy.UserID != uuid.Nil {
			user.Pharmacy = &pharmacy
		}
	case entity.RoleIDDoctor:
		var profile entity.DoctorProfile
		if err := db.Where("user_id = ?", id).Limit(1).Find(&profile).Error; err != nil {
			return nil, err
		}
		if profile.UserID != uuid.Nil {
			user.DoctorProfile = &profile
		}
	}
	return user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Omit("Role", "PatientProfile", "Pharmacy", "DoctorProfile").Save(user).Error
}

func (r *userRepository) UpdateFields(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error
}
