package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ConsultationMode string

const (
	ConsultationInPerson  ConsultationMode = "in_person"
	ConsultationVideoCall ConsultationMode = "video_call"
	ConsultationPhoneCall ConsultationMode = "phone_call"
)

// DefaultCancellationDeadlineHours applies when a slot does not set its own deadline
const DefaultCancellationDeadlineHours = 24

// TimeSlot is a bookable window on a doctor's calendar. Dates and times are UTC.
type TimeSlot struct {
	ID                        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID                  uuid.UUID        `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotDate                  time.Time        `gorm:"type:date;not null;index" json:"slot_date"`
	StartTime                 string           `gorm:"type:time;not null" json:"start_time"`
	EndTime                   string           `gorm:"type:time;not null" json:"end_time"`
	ConsultationMode          ConsultationMode `gorm:"type:varchar(20);not null;default:'in_person'" json:"consultation_mode"`
	MaxAppointments           int              `gorm:"not null;default:1" json:"max_appointments"`
	BookedCount               int              `gorm:"not null;default:0" json:"booked_count"`
	ConsultationFee           *decimal.Decimal `gorm:"type:decimal(10,2)" json:"consultation_fee,omitempty"`
	CancellationDeadlineHours int              `gorm:"not null;default:24" json:"cancellation_deadline_hours"`
	IsAvailable               bool             `gorm:"not null;default:true" json:"is_available"`
	CreatedAt                 time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                 time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}

// StartsAt combines the slot date and start time. Postgres returns TIME as HH:MM:SS.
func (s *TimeSlot) StartsAt() time.Time {
	return s.SlotDate.UTC().Truncate(24 * time.Hour).Add(clockOffset(s.StartTime))
}

func clockOffset(clock string) time.Duration {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
		}
	}
	return 0
}

func (s *TimeSlot) RemainingCapacity() int {
	if s.BookedCount >= s.MaxAppointments {
		return 0
	}
	return s.MaxAppointments - s.BookedCount
}

// IsBookableAt reports whether a new appointment may take this slot
func (s *TimeSlot) IsBookableAt(now time.Time) bool {
	return s.IsAvailable && s.RemainingCapacity() > 0 && s.StartsAt().After(now)
}

// Fee is the slot override or else the doctor's standard fee
func (s *TimeSlot) Fee() decimal.Decimal {
	if s.ConsultationFee != nil {
		return *s.ConsultationFee
	}
	if s.Doctor != nil {
		return s.Doctor.ConsultationFee
	}
	return decimal.Zero
}

func (s *TimeSlot) cancellationDeadline() time.Duration {
	hours := s.CancellationDeadlineHours
	if hours <= 0 {
		hours = DefaultCancellationDeadlineHours
	}
	return time.Duration(hours) * time.Hour
}
