package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	FirstName         string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName          string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Phone             string `json:"phone" validate:"omitempty,phone"`
	PreferredLanguage string `json:"preferred_language" validate:"omitempty,lang"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool  `json:"is_active" validate:"required"`
	Reason   string `json:"reason" validate:"omitempty,max=500"`
}

type AddressRequest struct {
	Label          string   `json:"label" validate:"omitempty,oneof=home work other"`
	City           string   `json:"city" validate:"required,max=100"`
	District       string   `json:"district" validate:"omitempty,max=100"`
	Street         string   `json:"street" validate:"required,max=255"`
	BuildingNumber string   `json:"building_number" validate:"omitempty,max=20"`
	PostalCode     string   `json:"postal_code" validate:"omitempty,max=20"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
	IsDefault      bool     `json:"is_default"`
}

type AddressResponse struct {
	ID             uuid.UUID `json:"id"`
	Label          string    `json:"label"`
	City           string    `json:"city"`
	District       string    `json:"district,omitempty"`
	Street         string    `json:"street"`
	BuildingNumber string    `json:"building_number,omitempty"`
	PostalCode     string    `json:"postal_code,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	IsDefault      bool      `json:"is_default"`
	FullAddress    string    `json:"full_address"`
	CreatedAt      time.Time `json:"created_at"`
}

type MedicalInfoRequest struct {
	DateOfBirth        string   `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender             string   `json:"gender" validate:"omitempty,oneof=male female"`
	BloodType          string   `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies          []string `json:"allergies" validate:"omitempty,max=50,dive,max=100"`
	ChronicConditions  []string `json:"chronic_conditions" validate:"omitempty,max=50,dive,max=100"`
	CurrentMedications []string `json:"current_medications" validate:"omitempty,max=50,dive,max=100"`
	EmergencyContact   string   `json:"emergency_contact" validate:"omitempty,phone"`
	InsuranceProvider  string   `json:"insurance_provider" validate:"omitempty,max=100"`
	InsuranceNumber    string   `json:"insurance_number" validate:"omitempty,max=50"`
	HeightCm           *float64 `json:"height_cm" validate:"omitempty,gt=0,lt=300"`
	WeightKg           *float64 `json:"weight_kg" validate:"omitempty,gt=0,lt=500"`
}

type MedicalInfoResponse struct {
	DateOfBirth        string    `json:"date_of_birth,omitempty"`
	Age                *int      `json:"age,omitempty"`
	Gender             string    `json:"gender,omitempty"`
	BloodType          string    `json:"blood_type,omitempty"`
	Allergies          []string  `json:"allergies"`
	ChronicConditions  []string  `json:"chronic_conditions"`
	CurrentMedications []string  `json:"current_medications"`
	EmergencyContact   string    `json:"emergency_contact,omitempty"`
	InsuranceProvider  string    `json:"insurance_provider,omitempty"`
	InsuranceNumber    string    `json:"insurance_number,omitempty"`
	HeightCm           *float64  `json:"height_cm,omitempty"`
	WeightKg           *float64  `json:"weight_kg,omitempty"`
	BMI                *float64  `json:"bmi,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}
