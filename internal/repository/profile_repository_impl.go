package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	return db.Create(profile).Error
}

func (r *patientProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Save inserts or updates the profile keyed by user id
func (r *patientProfileRepository) Save(db *gorm.DB, profile *entity.PatientProfile) error {
	return db.Save(profile).Error
}

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User").Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", doctorID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindVerified returns verified doctors whose user account is active.
// Supports optional filters: name or clinic, and specialty.
func (r *doctorProfileRepository) FindVerified(db *gorm.DB, filter entity.DoctorFilter) ([]entity.DoctorProfile, int64, error) {
	query := db.Model(&entity.DoctorProfile{}).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("doctor_profiles.is_verified = ? AND users.is_active = ?", true, true)

	if filter.Query != "" {
		q := contains(filter.Query)
		query = query.Where(
			"users.first_name ILIKE ? OR users.last_name ILIKE ? OR doctor_profiles.clinic_name ILIKE ? OR doctor_profiles.clinic_name_ar ILIKE ?",
			q, q, q, q,
		)
	}
	if filter.Specialty != "" {
		s := contains(filter.Specialty)
		query = query.Where("doctor_profiles.specialty ILIKE ? OR doctor_profiles.specialty_ar ILIKE ?", s, s)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var profiles []entity.DoctorProfile
	err = query.Preload("User").
		Order("doctor_profiles.years_experience DESC").
		Scopes(paginate(filter.Page)).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User").Save(profile).Error
}
