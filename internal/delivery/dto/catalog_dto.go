package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	Name          string     `json:"name" validate:"required,min=2,max=100"`
	NameAr        string     `json:"name_ar" validate:"required,min=2,max=100"`
	Description   string     `json:"description" validate:"omitempty,max=1000"`
	DescriptionAr string     `json:"description_ar" validate:"omitempty,max=1000"`
	ParentID      *uuid.UUID `json:"parent_id"`
	IsActive      *bool      `json:"is_active"`
}

type CategoryResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	NameAr             string     `json:"name_ar"`
	DisplayName        string     `json:"display_name"`
	Description        string     `json:"description,omitempty"`
	DescriptionAr      string     `json:"description_ar,omitempty"`
	DisplayDescription string     `json:"display_description,omitempty"`
	ParentID           *uuid.UUID `json:"parent_id,omitempty"`
	IsActive           bool       `json:"is_active"`
}

type MedicationRequest struct {
	Name                 string     `json:"name" validate:"required,min=2,max=200"`
	NameAr               string     `json:"name_ar" validate:"required,min=2,max=200"`
	GenericName          string     `json:"generic_name" validate:"omitempty,max=200"`
	GenericNameAr        string     `json:"generic_name_ar" validate:"omitempty,max=200"`
	Brand                string     `json:"brand" validate:"omitempty,max=100"`
	CategoryID           *uuid.UUID `json:"category_id"`
	DosageForm           string     `json:"dosage_form" validate:"omitempty,max=50"`
	Strength             string     `json:"strength" validate:"omitempty,max=50"`
	Manufacturer         string     `json:"manufacturer" validate:"omitempty,max=200"`
	Barcode              string     `json:"barcode" validate:"omitempty,max=50"`
	Description          string     `json:"description" validate:"omitempty,max=5000"`
	DescriptionAr        string     `json:"description_ar" validate:"omitempty,max=5000"`
	RequiresPrescription bool       `json:"requires_prescription"`
	IsActive             *bool      `json:"is_active"`
}

type MedicationResponse struct {
	ID                   uuid.UUID         `json:"id"`
	Name                 string            `json:"name"`
	NameAr               string            `json:"name_ar"`
	DisplayName          string            `json:"display_name"`
	GenericName          string            `json:"generic_name,omitempty"`
	GenericNameAr        string            `json:"generic_name_ar,omitempty"`
	DisplayGenericName   string            `json:"display_generic_name,omitempty"`
	Brand                string            `json:"brand,omitempty"`
	Category             *CategoryResponse `json:"category,omitempty"`
	DosageForm           string            `json:"dosage_form,omitempty"`
	Strength             string            `json:"strength,omitempty"`
	Manufacturer         string            `json:"manufacturer,omitempty"`
	Barcode              string            `json:"barcode,omitempty"`
	Description          string            `json:"description,omitempty"`
	DescriptionAr        string            `json:"description_ar,omitempty"`
	DisplayDescription   string            `json:"display_description,omitempty"`
	RequiresPrescription bool              `json:"requires_prescription"`
	IsActive             bool              `json:"is_active"`
	CreatedAt            time.Time         `json:"created_at"`
}

// PharmacyOfferResponse is one pharmacy selling a medication
type PharmacyOfferResponse struct {
	InventoryID        uuid.UUID       `json:"inventory_id"`
	PharmacyID         uuid.UUID       `json:"pharmacy_id"`
	PharmacyName       string          `json:"pharmacy_name"`
	City               string          `json:"city"`
	Rating             float64         `json:"rating"`
	HasDelivery        bool            `json:"has_delivery"`
	Is24Hours          bool            `json:"is_24_hours"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
}
