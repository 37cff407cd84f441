package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterPatientRequest struct {
	Email             string `json:"email" validate:"required,email,max=255"`
	Password          string `json:"password" validate:"required,password"`
	FirstName         string `json:"first_name" validate:"required,min=2,max=100"`
	LastName          string `json:"last_name" validate:"required,min=2,max=100"`
	Phone             string `json:"phone" validate:"omitempty,phone"`
	PreferredLanguage string `json:"preferred_language" validate:"omitempty,lang"`
	DateOfBirth       string `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD
	Gender            string `json:"gender" validate:"omitempty,oneof=male female"`
}

type RegisterPharmacyRequest struct {
	Email             string   `json:"email" validate:"required,email,max=255"`
	Password          string   `json:"password" validate:"required,password"`
	FirstName         string   `json:"first_name" validate:"required,min=2,max=100"`
	LastName          string   `json:"last_name" validate:"required,min=2,max=100"`
	Phone             string   `json:"phone" validate:"required,phone"`
	PreferredLanguage string   `json:"preferred_language" validate:"omitempty,lang"`
	Name              string   `json:"name" validate:"required,min=2,max=200"`
	NameAr            string   `json:"name_ar" validate:"required,min=2,max=200"`
	LicenseNumber     string   `json:"license_number" validate:"required,max=100"`
	PharmacistName    string   `json:"pharmacist_name" validate:"omitempty,max=200"`
	Address           string   `json:"address" validate:"required"`
	AddressAr         string   `json:"address_ar" validate:"omitempty"`
	City              string   `json:"city" validate:"required,max=100"`
	Latitude          *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude         *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type RegisterDoctorRequest struct {
	Email             string  `json:"email" validate:"required,email,max=255"`
	Password          string  `json:"password" validate:"required,password"`
	FirstName         string  `json:"first_name" validate:"required,min=2,max=100"`
	LastName          string  `json:"last_name" validate:"required,min=2,max=100"`
	Phone             string  `json:"phone" validate:"omitempty,phone"`
	PreferredLanguage string  `json:"preferred_language" validate:"omitempty,lang"`
	LicenseNumber     string  `json:"license_number" validate:"required,max=50"`
	Specialty         string  `json:"specialty" validate:"required,max=100"`
	SpecialtyAr       string  `json:"specialty_ar" validate:"omitempty,max=100"`
	ClinicName        string  `json:"clinic_name" validate:"omitempty,max=200"`
	ClinicNameAr      string  `json:"clinic_name_ar" validate:"omitempty,max=200"`
	YearsExperience   int     `json:"years_experience" validate:"gte=0,lte=70"`
	ConsultationFee   float64 `json:"consultation_fee" validate:"gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password,nefield=CurrentPassword"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID                uuid.UUID            `json:"id"`
	Email             string               `json:"email"`
	FirstName         string               `json:"first_name"`
	LastName          string               `json:"last_name"`
	FullName          string               `json:"full_name"`
	Phone             string               `json:"phone,omitempty"`
	AvatarURL         string               `json:"avatar_url,omitempty"`
	Role              string               `json:"role"`
	PreferredLanguage string               `json:"preferred_language"`
	IsActive          bool                 `json:"is_active"`
	IsVerified        bool                 `json:"is_verified"`
	LastLoginAt       *time.Time           `json:"last_login_at,omitempty"`
	PatientProfile    *MedicalInfoResponse `json:"patient_profile,omitempty"`
	Pharmacy          *PharmacyResponse    `json:"pharmacy,omitempty"`
	DoctorProfile     *DoctorResponse      `json:"doctor_profile,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// UserSummary is the compact user shown inside other resources
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
}
