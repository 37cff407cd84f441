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

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("TimeSlot").Preload("Patient").Preload("Doctor").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindAll lists the caller's appointments: patients see theirs, doctors their calendar
func (r *appointmentRepository) FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{}).
		Joins("JOIN time_slots ON time_slots.id = appointments.time_slot_id")

	switch filter.RoleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		query = query.Where("appointments.doctor_id = ?", filter.UserID)
	default:
		query = query.Where("appointments.patient_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("appointments.status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("time_slots.slot_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("time_slots.slot_date <= ?", *filter.DateTo)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	// Doctors work through their calendar forwards; patients see the latest first
	order := "time_slots.slot_date DESC, time_slots.start_time DESC"
	if filter.RoleID == entity.RoleIDDoctor {
		order = "time_slots.slot_date ASC, time_slots.start_time ASC"
	}

	var appointments []entity.Appointment
	err = query.Preload("TimeSlot").Preload("Patient").Preload("Doctor").
		Order(order).
		Scopes(paginate(filter.Page)).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

// UpdateIfStatus writes the appointment only while its stored status is still expected
func (r *appointmentRepository) UpdateIfStatus(db *gorm.DB, appointment *entity.Appointment, expected entity.AppointmentStatus) (int64, error) {
	result := db.Model(appointment).Omit(clause.Associations).Where("status = ?", expected).Select("*").Updates(appointment)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) ExistsActiveForSlot(db *gorm.DB, patientID, slotID uuid.UUID) (bool, error) {
	var total int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? AND time_slot_id = ? AND status <> ?", patientID, slotID, entity.AppointmentStatusCancelled).
		Count(&total).Error
	return total > 0, err
}

func (r *appointmentRepository) CountWithDoctor(db *gorm.DB, patientID, doctorID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Count(&total).Error
	return total, err
}

// Stats counts by status plus today's and upcoming active appointments, by slot date in UTC
func (r *appointmentRepository) Stats(db *gorm.DB, userID uuid.UUID, roleID int, now time.Time) (*entity.AppointmentStats, error) {
	column := "appointments.patient_id"
	if roleID == entity.RoleIDDoctor {
		column = "appointments.doctor_id"
	}
	scoped := func() *gorm.DB {
		return db.Model(&entity.Appointment{}).Where(column+" = ?", userID)
	}

	var rows []struct {
		Status entity.AppointmentStatus
		Count  int64
	}
	if err := scoped().Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &entity.AppointmentStats{ByStatus: make(map[entity.AppointmentStatus]int64, len(rows))}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
	}

	day := now.UTC().Format("2006-01-02")
	active := []entity.AppointmentStatus{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed}
	err := scoped().
		Joins("JOIN time_slots ON time_slots.id = appointments.time_slot_id").
		Where("time_slots.slot_date = ? AND appointments.status <> ?", day, entity.AppointmentStatusCancelled).
		Count(&stats.Today).Error
	if err != nil {
		return nil, err
	}
	err = scoped().
		Joins("JOIN time_slots ON time_slots.id = appointments.time_slot_id").
		Where("time_slots.slot_date >= ? AND appointments.status IN ?", day, active).
		Count(&stats.Upcoming).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
