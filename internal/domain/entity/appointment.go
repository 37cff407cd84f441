package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowUp     AppointmentType = "follow_up"
	AppointmentTypeCheckup      AppointmentType = "checkup"
	AppointmentTypeEmergency    AppointmentType = "emergency"
)

// MaxReschedules caps how often a patient may move one appointment
const MaxReschedules = 3

// Appointment books a patient into a doctor's time slot
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentNumber  string            `gorm:"type:varchar(30);uniqueIndex;not null" json:"appointment_number"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	TimeSlotID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"time_slot_id"`
	AppointmentType    AppointmentType   `gorm:"type:varchar(20);not null;default:'consultation'" json:"appointment_type"`
	ConsultationMode   ConsultationMode  `gorm:"type:varchar(20);not null;default:'in_person'" json:"consultation_mode"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ChiefComplaint     string            `gorm:"type:text;not null" json:"chief_complaint"`
	ChiefComplaintAr   string            `gorm:"type:text" json:"chief_complaint_ar,omitempty"`
	Symptoms           string            `gorm:"type:text" json:"symptoms,omitempty"`
	ConsultationFee    decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	IsFirstVisit       bool              `gorm:"not null;default:false" json:"is_first_visit"`
	RescheduledCount   int               `gorm:"not null;default:0" json:"rescheduled_count"`
	CancelledBy        string            `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	StartedAt          *time.Time        `json:"started_at,omitempty"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	DoctorNotes        string            `gorm:"type:text" json:"doctor_notes,omitempty"`
	Diagnosis          string            `gorm:"type:text" json:"diagnosis,omitempty"`
	DiagnosisAr        string            `gorm:"type:text" json:"diagnosis_ar,omitempty"`
	TreatmentPlan      string            `gorm:"type:text" json:"treatment_plan,omitempty"`
	FollowUpDate       *time.Time        `gorm:"type:date" json:"follow_up_date,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient  *User     `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor   *User     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	TimeSlot *TimeSlot `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CanTransitionTo checks the status against the appointment lifecycle
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusInProgress || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusInProgress || next == AppointmentStatusCancelled
	case AppointmentStatusInProgress:
		return next == AppointmentStatusCompleted
	}
	return false
}

// Transition moves the appointment to next and stamps the matching timestamp.
// It returns false and leaves the appointment untouched on an illegal transition.
func (a *Appointment) Transition(next AppointmentStatus, now time.Time) bool {
	if !a.CanTransitionTo(next) {
		return false
	}
	a.Status = next
	switch next {
	case AppointmentStatusInProgress:
		a.StartedAt = &now
	case AppointmentStatusCompleted:
		a.CompletedAt = &now
	case AppointmentStatusCancelled:
		a.CancelledAt = &now
	}
	return true
}

// WithinCancellationDeadline reports whether the slot starts too soon to cancel or move.
// The appointment's TimeSlot must be loaded.
func (a *Appointment) WithinCancellationDeadline(now time.Time) bool {
	if a.TimeSlot == nil {
		return true
	}
	return a.TimeSlot.StartsAt().Sub(now) < a.TimeSlot.cancellationDeadline()
}

func (a *Appointment) CanBeRescheduled() bool {
	return (a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed) && a.RescheduledCount < MaxReschedules
}

// IsVisibleTo reports whether the user may read the appointment
func (a *Appointment) IsVisibleTo(userID uuid.UUID, roleID int) bool {
	return roleID == RoleIDAdmin || a.PatientID == userID || a.DoctorID == userID
}

// AppointmentStats counts appointments from the patient's or the doctor's side
type AppointmentStats struct {
	Total    int64
	ByStatus map[AppointmentStatus]int64
	Today    int64
	Upcoming int64
}
