package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID            int        `gorm:"not null;index" json:"role_id"`
	Email             string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password          string     `gorm:"type:text;not null" json:"-"`
	FirstName         string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName          string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone             string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	AvatarURL         string     `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
	PreferredLanguage string     `gorm:"type:varchar(2);not null;default:'ar'" json:"preferred_language"`
	IsActive          bool       `gorm:"not null;default:true;index" json:"is_active"`
	IsVerified        bool       `gorm:"not null;default:false" json:"is_verified"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role           Role            `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	PatientProfile *PatientProfile `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
	Pharmacy       *Pharmacy       `gorm:"foreignKey:UserID" json:"pharmacy,omitempty"`
	DoctorProfile  *DoctorProfile  `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsPatient() bool  { return u.RoleID == RoleIDPatient }
func (u *User) IsPharmacy() bool { return u.RoleID == RoleIDPharmacy }
func (u *User) IsDoctor() bool   { return u.RoleID == RoleIDDoctor }
func (u *User) IsAdmin() bool    { return u.RoleID == RoleIDAdmin }

// UserAddress is a saved delivery address. At most one per user is the default.
type UserAddress struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Label          string    `gorm:"type:varchar(20);not null;default:'home'" json:"label"`
	City           string    `gorm:"type:varchar(100);not null" json:"city"`
	District       string    `gorm:"type:varchar(100)" json:"district,omitempty"`
	Street         string    `gorm:"type:varchar(255);not null" json:"street"`
	BuildingNumber string    `gorm:"type:varchar(20)" json:"building_number,omitempty"`
	PostalCode     string    `gorm:"type:varchar(20)" json:"postal_code,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	IsDefault      bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserAddress) TableName() string {
	return "user_addresses"
}

// OneLine renders the address for order snapshots.
func (a *UserAddress) OneLine() string {
	parts := []string{}
	for _, p := range []string{a.BuildingNumber, a.Street, a.District, a.City, a.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Address label constants
const (
	AddressLabelHome  = "home"
	AddressLabelWork  = "work"
	AddressLabelOther = "other"
)
