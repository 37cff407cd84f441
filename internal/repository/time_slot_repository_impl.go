package repository

import (
	"errors"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type timeSlotRepository struct{}

func NewTimeSlotRepository() domainRepo.TimeSlotRepository {
	return &timeSlotRepository{}
}

func (r *timeSlotRepository) Create(db *gorm.DB, slot *entity.TimeSlot) error {
	return db.Omit(clause.Associations).Create(slot).Error
}

func (r *timeSlotRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TimeSlot, error) {
	var slot entity.TimeSlot
	err := db.Preload("Doctor").Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// FindAll lists a doctor's slots by date and start time
func (r *timeSlotRepository) FindAll(db *gorm.DB, filter entity.TimeSlotFilter) ([]entity.TimeSlot, error) {
	query := db.Where("doctor_id = ?", filter.DoctorID)
	if filter.DateFrom != nil {
		query = query.Where("slot_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("slot_date <= ?", *filter.DateTo)
	}
	if filter.ConsultationMode != "" {
		query = query.Where("consultation_mode = ?", filter.ConsultationMode)
	}
	if filter.OpenOnly {
		query = query.Where("is_available AND booked_count < max_appointments AND slot_date + start_time > ?", filter.Now.UTC())
	}

	var slots []entity.TimeSlot
	err := query.Order("slot_date ASC, start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) Update(db *gorm.DB, slot *entity.TimeSlot) error {
	return db.Omit(clause.Associations).Save(slot).Error
}

func (r *timeSlotRepository) Delete(db *gorm.DB, doctorID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND doctor_id = ? AND booked_count = 0", id, doctorID).Delete(&entity.TimeSlot{})
	return result.RowsAffected, result.Error
}

func (r *timeSlotRepository) Reserve(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.TimeSlot{}).
		Where("id = ? AND is_available AND booked_count < max_appointments", id).
		Update("booked_count", gorm.Expr("booked_count + ?", 1))
	return result.RowsAffected, result.Error
}

func (r *timeSlotRepository) Release(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.TimeSlot{}).
		Where("id = ? AND booked_count > 0", id).
		Update("booked_count", gorm.Expr("booked_count - ?", 1)).Error
}
