package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInventoryRequest struct {
	MedicationID       uuid.UUID `json:"medication_id" validate:"required"`
	BatchNumber        string    `json:"batch_number" validate:"omitempty,max=50"`
	ExpiryDate         string    `json:"expiry_date" validate:"omitempty"` // Format: YYYY-MM-DD
	Quantity           int       `json:"quantity" validate:"gte=0"`
	LowStockThreshold  *int      `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	Price              float64   `json:"price" validate:"required,gt=0"`
	DiscountPercentage float64   `json:"discount_percentage" validate:"gte=0,lte=100"`
	IsAvailable        *bool     `json:"is_available"`
}

type UpdateInventoryRequest struct {
	BatchNumber        *string  `json:"batch_number" validate:"omitempty,max=50"`
	ExpiryDate         *string  `json:"expiry_date"`
	LowStockThreshold  *int     `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	Price              *float64 `json:"price" validate:"omitempty,gt=0"`
	DiscountPercentage *float64 `json:"discount_percentage" validate:"omitempty,gte=0,lte=100"`
	IsAvailable        *bool    `json:"is_available"`
}

type StockUpdateRequest struct {
	Operation string `json:"operation" validate:"required,oneof=set add subtract"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type InventoryResponse struct {
	ID                 uuid.UUID           `json:"id"`
	PharmacyID         uuid.UUID           `json:"pharmacy_id"`
	Medication         *MedicationResponse `json:"medication,omitempty"`
	BatchNumber        string              `json:"batch_number,omitempty"`
	ExpiryDate         string              `json:"expiry_date,omitempty"`
	Quantity           int                 `json:"quantity"`
	LowStockThreshold  int                 `json:"low_stock_threshold"`
	Price              decimal.Decimal     `json:"price"`
	DiscountPercentage decimal.Decimal     `json:"discount_percentage"`
	DiscountedPrice    decimal.Decimal     `json:"discounted_price"`
	IsAvailable        bool                `json:"is_available"`
	IsLowStock         bool                `json:"is_low_stock"`
	IsExpired          bool                `json:"is_expired"`
	UpdatedAt          time.Time           `json:"updated_at"`
}
