package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdateDoctorRequest struct {
	Specialty       string   `json:"specialty" validate:"omitempty,max=100"`
	SpecialtyAr     *string  `json:"specialty_ar" validate:"omitempty,max=100"`
	ClinicName      *string  `json:"clinic_name" validate:"omitempty,max=200"`
	ClinicNameAr    *string  `json:"clinic_name_ar" validate:"omitempty,max=200"`
	YearsExperience *int     `json:"years_experience" validate:"omitempty,gte=0,lte=70"`
	Bio             *string  `json:"bio" validate:"omitempty,max=2000"`
	BioAr           *string  `json:"bio_ar" validate:"omitempty,max=2000"`
	ConsultationFee *float64 `json:"consultation_fee" validate:"omitempty,gte=0"`
}

type VerifyDoctorRequest struct {
	IsVerified *bool  `json:"is_verified" validate:"required"`
	Notes      string `json:"notes" validate:"omitempty,max=1000"`
}

type DoctorResponse struct {
	ID                uuid.UUID       `json:"id"`
	FullName          string          `json:"full_name,omitempty"`
	AvatarURL         string          `json:"avatar_url,omitempty"`
	LicenseNumber     string          `json:"license_number"`
	Specialty         string          `json:"specialty"`
	SpecialtyAr       string          `json:"specialty_ar,omitempty"`
	DisplaySpecialty  string          `json:"display_specialty"`
	ClinicName        string          `json:"clinic_name,omitempty"`
	ClinicNameAr      string          `json:"clinic_name_ar,omitempty"`
	DisplayClinicName string          `json:"display_clinic_name,omitempty"`
	YearsExperience   int             `json:"years_experience"`
	Bio               string          `json:"bio,omitempty"`
	BioAr             string          `json:"bio_ar,omitempty"`
	DisplayBio        string          `json:"display_bio,omitempty"`
	ConsultationFee   decimal.Decimal `json:"consultation_fee"`
	IsVerified        bool            `json:"is_verified"`
	CreatedAt         *time.Time      `json:"created_at,omitempty"`
}
