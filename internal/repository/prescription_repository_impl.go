package repository

import (
	"errors"
	"time"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

// Create inserts the prescription together with its items
func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Patient", "Doctor", "Pharmacy").Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Preload("Items.Medication").Preload("Patient").Preload("Doctor").Preload("Pharmacy").
		Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

// FindAll lists what the user may see: patients their own, doctors those they issued,
// pharmacies those assigned to them plus unassigned pending ones, admins everything
func (r *prescriptionRepository) FindAll(db *gorm.DB, filter entity.PrescriptionFilter) ([]entity.Prescription, int64, error) {
	query := db.Model(&entity.Prescription{})

	switch filter.RoleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDPharmacy:
		query = query.Where("pharmacy_id = ? OR (pharmacy_id IS NULL AND status = ?)", filter.UserID, entity.PrescriptionStatusPending)
	case entity.RoleIDDoctor:
		query = query.Where("doctor_id = ?", filter.UserID)
	default:
		query = query.Where("patient_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var prescriptions []entity.Prescription
	err = query.Preload("Items").Preload("Patient").
		Order("created_at DESC").
		Scopes(paginate(filter.Page)).
		Find(&prescriptions).Error
	if err != nil {
		return nil, 0, err
	}
	return prescriptions, total, nil
}

func (r *prescriptionRepository) Update(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit(clause.Associations).Save(prescription).Error
}

// UpdateIfStatus writes the prescription only while its stored status is still expected
func (r *prescriptionRepository) UpdateIfStatus(db *gorm.DB, prescription *entity.Prescription, expected entity.PrescriptionStatus) (int64, error) {
	result := db.Model(prescription).Omit(clause.Associations).
		Where("status = ?", expected).
		Select("*").
		Updates(prescription)
	return result.RowsAffected, result.Error
}

func (r *prescriptionRepository) ExpireDue(db *gorm.DB, now time.Time) (int64, error) {
	today := now.UTC().Format("2006-01-02")
	result := db.Model(&entity.Prescription{}).
		Where("status IN ? AND expiry_date < ?", []entity.PrescriptionStatus{
			entity.PrescriptionStatusPending,
			entity.PrescriptionStatusVerified,
		}, today).
		Update("status", entity.PrescriptionStatusExpired)
	return result.RowsAffected, result.Error
}
