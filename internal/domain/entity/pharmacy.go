package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Pharmacy is the merchant profile of a pharmacy user, keyed by the owning user id.
type Pharmacy struct {
	UserID                uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name                  string             `gorm:"type:varchar(200);not null" json:"name"`
	NameAr                string             `gorm:"type:varchar(200);not null" json:"name_ar"`
	LicenseNumber         string             `gorm:"type:varchar(100);uniqueIndex;not null" json:"license_number"`
	PharmacistName        string             `gorm:"type:varchar(200)" json:"pharmacist_name,omitempty"`
	Phone                 string             `gorm:"type:varchar(20);not null" json:"phone"`
	Address               string             `gorm:"type:text;not null" json:"address"`
	AddressAr             string             `gorm:"type:text" json:"address_ar,omitempty"`
	City                  string             `gorm:"type:varchar(100);not null;index" json:"city"`
	Latitude              *float64           `json:"latitude,omitempty"`
	Longitude             *float64           `json:"longitude,omitempty"`
	Description           string             `gorm:"type:text" json:"description,omitempty"`
	DescriptionAr         string             `gorm:"type:text" json:"description_ar,omitempty"`
	Is24Hours             bool               `gorm:"column:is_24_hours;not null;default:false" json:"is_24_hours"`
	HasDelivery           bool               `gorm:"not null;default:false" json:"has_delivery"`
	DeliveryFee           decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0" json:"delivery_fee"`
	FreeDeliveryThreshold decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0" json:"free_delivery_threshold"`
	DeliveryRadiusKm      float64            `gorm:"not null;default:10" json:"delivery_radius_km"`
	VerificationStatus    VerificationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"verification_status"`
	VerificationNotes     string             `gorm:"type:text" json:"verification_notes,omitempty"`
	Rating                float64            `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	TotalReviews          int                `gorm:"not null;default:0" json:"total_reviews"`
	TotalOrders           int                `gorm:"not null;default:0" json:"total_orders"`
	CreatedAt             time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Pharmacy) TableName() string {
	return "pharmacies"
}

func (p *Pharmacy) IsVerified() bool {
	return p.VerificationStatus == VerificationVerified
}

// DeliveryFeeFor returns the fee charged for an order subtotal and delivery method.
// Pickup is free, a non-zero free-delivery threshold waives the fee, express costs 1.5x.
func (p *Pharmacy) DeliveryFeeFor(method DeliveryMethod, subtotal decimal.Decimal) decimal.Decimal {
	switch method {
	case DeliveryMethodDelivery:
		if p.FreeDeliveryThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeDeliveryThreshold) {
			return decimal.Zero
		}
		return p.DeliveryFee
	case DeliveryMethodExpress:
		return p.DeliveryFee.Mul(decimal.NewFromFloat(1.5)).Round(2)
	default:
		return decimal.Zero
	}
}
