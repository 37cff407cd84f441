package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTimeSlotRequest struct {
	SlotDate                  string   `json:"slot_date" validate:"required"`  // Format: YYYY-MM-DD
	StartTime                 string   `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime                   string   `json:"end_time" validate:"required"`
	ConsultationMode          string   `json:"consultation_mode" validate:"omitempty,oneof=in_person video_call phone_call"`
	MaxAppointments           int      `json:"max_appointments" validate:"omitempty,gte=1,lte=50"`
	ConsultationFee           *float64 `json:"consultation_fee" validate:"omitempty,gte=0"`
	CancellationDeadlineHours int      `json:"cancellation_deadline_hours" validate:"omitempty,gte=0,lte=168"`
}

type TimeSlotResponse struct {
	ID                        uuid.UUID       `json:"id"`
	DoctorID                  uuid.UUID       `json:"doctor_id"`
	SlotDate                  string          `json:"slot_date"`
	StartTime                 string          `json:"start_time"`
	EndTime                   string          `json:"end_time"`
	ConsultationMode          string          `json:"consultation_mode"`
	MaxAppointments           int             `json:"max_appointments"`
	BookedCount               int             `json:"booked_count"`
	RemainingCapacity         int             `json:"remaining_capacity"`
	ConsultationFee           decimal.Decimal `json:"consultation_fee"`
	CancellationDeadlineHours int             `json:"cancellation_deadline_hours"`
	IsAvailable               bool            `json:"is_available"`
}

// AvailableSlotsResponse groups open slots by their date
type AvailableSlotsResponse struct {
	DoctorID   uuid.UUID                     `json:"doctor_id"`
	Dates      []string                      `json:"dates"`
	SlotsByDay map[string][]TimeSlotResponse `json:"slots_by_date"`
	Total      int                           `json:"total"`
}

type BookAppointmentRequest struct {
	TimeSlotID       uuid.UUID `json:"time_slot_id" validate:"required"`
	AppointmentType  string    `json:"appointment_type" validate:"omitempty,oneof=consultation follow_up checkup emergency"`
	ChiefComplaint   string    `json:"chief_complaint" validate:"required,max=2000"`
	ChiefComplaintAr string    `json:"chief_complaint_ar" validate:"omitempty,max=2000"`
	Symptoms         string    `json:"symptoms" validate:"omitempty,max=2000"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

type RescheduleAppointmentRequest struct {
	TimeSlotID uuid.UUID `json:"time_slot_id" validate:"required"`
}

type CompleteAppointmentRequest struct {
	DoctorNotes   string `json:"doctor_notes" validate:"omitempty,max=5000"`
	Diagnosis     string `json:"diagnosis" validate:"omitempty,max=2000"`
	DiagnosisAr   string `json:"diagnosis_ar" validate:"omitempty,max=2000"`
	TreatmentPlan string `json:"treatment_plan" validate:"omitempty,max=5000"`
	FollowUpDate  string `json:"follow_up_date"` // Format: YYYY-MM-DD
}

type AppointmentResponse struct {
	ID                    uuid.UUID         `json:"id"`
	AppointmentNumber     string            `json:"appointment_number"`
	Patient               *UserSummary      `json:"patient,omitempty"`
	Doctor                *UserSummary      `json:"doctor,omitempty"`
	TimeSlot              *TimeSlotResponse `json:"time_slot,omitempty"`
	AppointmentType       string            `json:"appointment_type"`
	ConsultationMode      string            `json:"consultation_mode"`
	Status                string            `json:"status"`
	StatusLabel           string            `json:"status_label"`
	ChiefComplaint        string            `json:"chief_complaint"`
	ChiefComplaintAr      string            `json:"chief_complaint_ar,omitempty"`
	DisplayChiefComplaint string            `json:"display_chief_complaint"`
	Symptoms              string            `json:"symptoms,omitempty"`
	ConsultationFee       decimal.Decimal   `json:"consultation_fee"`
	IsFirstVisit          bool              `json:"is_first_visit"`
	RescheduledCount      int               `json:"rescheduled_count"`
	CancelledBy           string            `json:"cancelled_by,omitempty"`
	CancellationReason    string            `json:"cancellation_reason,omitempty"`
	CancelledAt           *time.Time        `json:"cancelled_at,omitempty"`
	StartedAt             *time.Time        `json:"started_at,omitempty"`
	CompletedAt           *time.Time        `json:"completed_at,omitempty"`
	DoctorNotes           string            `json:"doctor_notes,omitempty"`
	Diagnosis             string            `json:"diagnosis,omitempty"`
	DiagnosisAr           string            `json:"diagnosis_ar,omitempty"`
	TreatmentPlan         string            `json:"treatment_plan,omitempty"`
	FollowUpDate          string            `json:"follow_up_date,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

type AppointmentStatsResponse struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	Today          int64            `json:"today"`
	Upcoming       int64            `json:"upcoming"`
	CompletionRate float64          `json:"completion_rate"`
}

// SlotQuery narrows a slot listing. Dates use YYYY-MM-DD.
type SlotQuery struct {
	DateFrom         string
	DateTo           string
	ConsultationMode string
}

type AppointmentQuery struct {
	Status   string
	DateFrom string
	DateTo   string
}
