package repository

import (
	"time"

	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	Create(db *gorm.DB, slot *entity.TimeSlot) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TimeSlot, error)
	FindAll(db *gorm.DB, filter entity.TimeSlotFilter) ([]entity.TimeSlot, error)
	Update(db *gorm.DB, slot *entity.TimeSlot) error
	// Delete removes the doctor's slot only while nothing is booked into it
	Delete(db *gorm.DB, doctorID, id uuid.UUID) (int64, error)
	// Reserve takes one seat only while the slot is open; zero rows means full or closed
	Reserve(db *gorm.DB, id uuid.UUID) (int64, error)
	Release(db *gorm.DB, id uuid.UUID) error
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	UpdateIfStatus(db *gorm.DB, appointment *entity.Appointment, expected entity.AppointmentStatus) (int64, error)
	ExistsActiveForSlot(db *gorm.DB, patientID, slotID uuid.UUID) (bool, error)
	CountWithDoctor(db *gorm.DB, patientID, doctorID uuid.UUID) (int64, error)
	Stats(db *gorm.DB, userID uuid.UUID, roleID int, now time.Time) (*entity.AppointmentStats, error)
}
