package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdatePharmacyRequest struct {
	Name                  string   `json:"name" validate:"omitempty,min=2,max=200"`
	NameAr                string   `json:"name_ar" validate:"omitempty,min=2,max=200"`
	PharmacistName        string   `json:"pharmacist_name" validate:"omitempty,max=200"`
	Phone                 string   `json:"phone" validate:"omitempty,phone"`
	Address               string   `json:"address" validate:"omitempty"`
	AddressAr             string   `json:"address_ar" validate:"omitempty"`
	City                  string   `json:"city" validate:"omitempty,max=100"`
	Latitude              *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude             *float64 `json:"longitude" validate:"omitempty,longitude"`
	Description           *string  `json:"description" validate:"omitempty,max=2000"`
	DescriptionAr         *string  `json:"description_ar" validate:"omitempty,max=2000"`
	Is24Hours             *bool    `json:"is_24_hours"`
	HasDelivery           *bool    `json:"has_delivery"`
	DeliveryFee           *float64 `json:"delivery_fee" validate:"omitempty,gte=0"`
	FreeDeliveryThreshold *float64 `json:"free_delivery_threshold" validate:"omitempty,gte=0"`
	DeliveryRadiusKm      *float64 `json:"delivery_radius_km" validate:"omitempty,gt=0,lte=200"`
}

type VerifyPharmacyRequest struct {
	Status string `json:"status" validate:"required,oneof=verified rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
}

type PharmacyResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	NameAr                string          `json:"name_ar"`
	DisplayName           string          `json:"display_name"`
	LicenseNumber         string          `json:"license_number,omitempty"`
	PharmacistName        string          `json:"pharmacist_name,omitempty"`
	Phone                 string          `json:"phone"`
	Email                 string          `json:"email,omitempty"`
	Address               string          `json:"address"`
	AddressAr             string          `json:"address_ar,omitempty"`
	DisplayAddress        string          `json:"display_address"`
	City                  string          `json:"city"`
	Latitude              *float64        `json:"latitude,omitempty"`
	Longitude             *float64        `json:"longitude,omitempty"`
	Description           string          `json:"description,omitempty"`
	DescriptionAr         string          `json:"description_ar,omitempty"`
	DisplayDescription    string          `json:"display_description,omitempty"`
	Is24Hours             bool            `json:"is_24_hours"`
	HasDelivery           bool            `json:"has_delivery"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	FreeDeliveryThreshold decimal.Decimal `json:"free_delivery_threshold"`
	DeliveryRadiusKm      float64         `json:"delivery_radius_km"`
	VerificationStatus    string          `json:"verification_status"`
	VerificationNotes     string          `json:"verification_notes,omitempty"`
	Rating                float64         `json:"rating"`
	TotalReviews          int             `json:"total_reviews"`
	TotalOrders           int             `json:"total_orders"`
	CreatedAt             time.Time       `json:"created_at"`
}

type PharmacyStatsResponse struct {
	InventoryCount int64            `json:"inventory_count"`
	LowStockCount  int64            `json:"low_stock_count"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	TotalOrders    int64            `json:"total_orders"`
	Revenue        decimal.Decimal  `json:"revenue"`
	Currency       string           `json:"currency"`
	Rating         float64          `json:"rating"`
	TotalReviews   int              `json:"total_reviews"`
}
