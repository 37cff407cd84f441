package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfile holds the medical information of a patient
type PatientProfile struct {
	UserID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	DateOfBirth        *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender             string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	BloodType          string     `gorm:"type:varchar(5)" json:"blood_type,omitempty"`
	Allergies          StringList `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	ChronicConditions  StringList `gorm:"type:jsonb;not null;default:'[]'" json:"chronic_conditions"`
	CurrentMedications StringList `gorm:"type:jsonb;not null;default:'[]'" json:"current_medications"`
	EmergencyContact   string     `gorm:"type:varchar(20)" json:"emergency_contact,omitempty"`
	InsuranceProvider  string     `gorm:"type:varchar(100)" json:"insurance_provider,omitempty"`
	InsuranceNumber    string     `gorm:"type:varchar(50)" json:"insurance_number,omitempty"`
	HeightCm           *float64   `json:"height_cm,omitempty"`
	WeightKg           *float64   `json:"weight_kg,omitempty"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
)
