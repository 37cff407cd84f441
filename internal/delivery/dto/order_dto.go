package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	InventoryID uuid.UUID `json:"inventory_id" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,gte=1,lte=1000"`
}

type CreateOrderRequest struct {
	PharmacyID        uuid.UUID          `json:"pharmacy_id" validate:"required"`
	Items             []OrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
	DeliveryMethod    string             `json:"delivery_method" validate:"omitempty,oneof=pickup delivery express"`
	AddressID         *uuid.UUID         `json:"address_id"`
	DeliveryAddress   string             `json:"delivery_address" validate:"omitempty,max=500"`
	DeliveryCity      string             `json:"delivery_city" validate:"omitempty,max=100"`
	DeliveryPhone     string             `json:"delivery_phone" validate:"omitempty,phone"`
	DeliveryLatitude  *float64           `json:"delivery_latitude" validate:"omitempty,latitude"`
	DeliveryLongitude *float64           `json:"delivery_longitude" validate:"omitempty,longitude"`
	PaymentMethod     string             `json:"payment_method" validate:"omitempty,oneof=cash card wallet"`
	PrescriptionID    *uuid.UUID         `json:"prescription_id"`
	OrderType         string             `json:"order_type" validate:"omitempty,oneof=regular prescription emergency"`
	Notes             string             `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status            string `json:"status" validate:"required,oneof=confirmed preparing ready out_for_delivery delivered cancelled"`
	PharmacistNotes   string `json:"pharmacist_notes" validate:"omitempty,max=1000"`
	PharmacistNotesAr string `json:"pharmacist_notes_ar" validate:"omitempty,max=1000"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type OrderItemResponse struct {
	ID                    uuid.UUID       `json:"id"`
	InventoryID           uuid.UUID       `json:"inventory_id"`
	MedicationID          uuid.UUID       `json:"medication_id"`
	MedicationName        string          `json:"medication_name"`
	MedicationNameAr      string          `json:"medication_name_ar,omitempty"`
	DisplayMedicationName string          `json:"display_medication_name"`
	Quantity              int             `json:"quantity"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	TotalPrice            decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID                     uuid.UUID           `json:"id"`
	OrderNumber            string              `json:"order_number"`
	Status                 string              `json:"status"`
	DisplayStatus          string              `json:"display_status"`
	OrderType              string              `json:"order_type"`
	Patient                *UserSummary        `json:"patient,omitempty"`
	PharmacyID             uuid.UUID           `json:"pharmacy_id"`
	PharmacyName           string              `json:"pharmacy_name,omitempty"`
	PrescriptionID         *uuid.UUID          `json:"prescription_id,omitempty"`
	DeliveryMethod         string              `json:"delivery_method"`
	DeliveryAddress        string              `json:"delivery_address,omitempty"`
	DeliveryCity           string              `json:"delivery_city,omitempty"`
	DeliveryPhone          string              `json:"delivery_phone,omitempty"`
	DeliveryLatitude       *float64            `json:"delivery_latitude,omitempty"`
	DeliveryLongitude      *float64            `json:"delivery_longitude,omitempty"`
	Subtotal               decimal.Decimal     `json:"subtotal"`
	TaxAmount              decimal.Decimal     `json:"tax_amount"`
	DeliveryFee            decimal.Decimal     `json:"delivery_fee"`
	DiscountAmount         decimal.Decimal     `json:"discount_amount"`
	TotalAmount            decimal.Decimal     `json:"total_amount"`
	Currency               string              `json:"currency"`
	PaymentMethod          string              `json:"payment_method"`
	PaymentStatus          string              `json:"payment_status"`
	Notes                  string              `json:"notes,omitempty"`
	PharmacistNotes        string              `json:"pharmacist_notes,omitempty"`
	PharmacistNotesAr      string              `json:"pharmacist_notes_ar,omitempty"`
	DisplayPharmacistNotes string              `json:"display_pharmacist_notes,omitempty"`
	CancellationReason     string              `json:"cancellation_reason,omitempty"`
	CanBeCancelled         bool                `json:"can_be_cancelled"`
	Items                  []OrderItemResponse `json:"items"`
	ConfirmedAt            *time.Time          `json:"confirmed_at,omitempty"`
	PreparedAt             *time.Time          `json:"prepared_at,omitempty"`
	DeliveredAt            *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt            *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
}
