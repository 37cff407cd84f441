package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialty       string          `gorm:"type:varchar(100);not null;index" json:"specialty"`
	SpecialtyAr     string          `gorm:"type:varchar(100)" json:"specialty_ar,omitempty"`
	ClinicName      string          `gorm:"type:varchar(200)" json:"clinic_name,omitempty"`
	ClinicNameAr    string          `gorm:"type:varchar(200)" json:"clinic_name_ar,omitempty"`
	YearsExperience int             `gorm:"not null;default:0" json:"years_experience"`
	Bio             string          `gorm:"type:text" json:"bio,omitempty"`
	BioAr           string          `gorm:"type:text" json:"bio_ar,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	IsVerified      bool            `gorm:"not null;default:false;index" json:"is_verified"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
