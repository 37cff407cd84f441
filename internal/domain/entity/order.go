package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type OrderType string

const (
	OrderTypeRegular      OrderType = "regular"
	OrderTypePrescription OrderType = "prescription"
	OrderTypeEmergency    OrderType = "emergency"
)

type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodExpress  DeliveryMethod = "express"
)

// NeedsAddress reports whether the method ships to the patient
func (m DeliveryMethod) NeedsAddress() bool {
	return m == DeliveryMethodDelivery || m == DeliveryMethodExpress
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order represents a patient purchase from one pharmacy
type Order struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderNumber        string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	PatientID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	PharmacyID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"pharmacy_id"`
	PrescriptionID     *uuid.UUID      `gorm:"type:uuid" json:"prescription_id,omitempty"`
	Status             OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	OrderType          OrderType       `gorm:"type:varchar(20);not null;default:'regular'" json:"order_type"`
	DeliveryMethod     DeliveryMethod  `gorm:"type:varchar(20);not null;default:'pickup'" json:"delivery_method"`
	DeliveryAddress    string          `gorm:"type:text" json:"delivery_address,omitempty"`
	DeliveryCity       string          `gorm:"type:varchar(100)" json:"delivery_city,omitempty"`
	DeliveryPhone      string          `gorm:"type:varchar(20)" json:"delivery_phone,omitempty"`
	DeliveryLatitude   *float64        `json:"delivery_latitude,omitempty"`
	DeliveryLongitude  *float64        `json:"delivery_longitude,omitempty"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax_amount"`
	DeliveryFee        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"delivery_fee"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Currency           string          `gorm:"type:varchar(3);not null;default:'YER'" json:"currency"`
	PaymentMethod      PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaymentStatus      PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	Notes              string          `gorm:"type:text" json:"notes,omitempty"`
	PharmacistNotes    string          `gorm:"type:text" json:"pharmacist_notes,omitempty"`
	PharmacistNotesAr  string          `gorm:"type:text" json:"pharmacist_notes_ar,omitempty"`
	CancellationReason string          `gorm:"type:text" json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time      `json:"confirmed_at,omitempty"`
	PreparedAt         *time.Time      `json:"prepared_at,omitempty"`
	DeliveredAt        *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient  *User       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Pharmacy *Pharmacy   `gorm:"foreignKey:PharmacyID" json:"pharmacy,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// CanTransitionTo checks the status against the order lifecycle. From ready, pickup
// orders go straight to delivered while shipped orders go out for delivery first.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch o.Status {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusPreparing || next == OrderStatusCancelled
	case OrderStatusPreparing:
		return next == OrderStatusReady
	case OrderStatusReady:
		if o.DeliveryMethod.NeedsAddress() {
			return next == OrderStatusOutForDelivery
		}
		return next == OrderStatusDelivered
	case OrderStatusOutForDelivery:
		return next == OrderStatusDelivered
	}
	return false
}

// CanBeCancelled checks if the order is still before preparation
func (o *Order) CanBeCancelled() bool {
	return o.CanTransitionTo(OrderStatusCancelled)
}

// Transition moves the order to next and stamps the matching timestamp.
// It returns false and leaves the order untouched on an illegal transition.
func (o *Order) Transition(next OrderStatus, now time.Time) bool {
	if !o.CanTransitionTo(next) {
		return false
	}
	o.Status = next
	switch next {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusReady:
		o.PreparedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
		if o.PaymentMethod == PaymentMethodCash {
			o.PaymentStatus = PaymentStatusPaid
		}
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
	return true
}

// IsVisibleTo reports whether the user may read the order
func (o *Order) IsVisibleTo(userID uuid.UUID, roleID int) bool {
	return roleID == RoleIDAdmin || o.PatientID == userID || o.PharmacyID == userID
}

// ApplyTotals sets tax and total from the subtotal, fee and discount already on the order.
// The total never goes below zero.
func (o *Order) ApplyTotals(taxRate decimal.Decimal) {
	o.TaxAmount = o.Subtotal.Mul(taxRate).Round(2)
	total := o.Subtotal.Add(o.TaxAmount).Add(o.DeliveryFee).Sub(o.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.TotalAmount = total.Round(2)
}

// OrderItem snapshots the medication name and price at order time
type OrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	InventoryID      uuid.UUID       `gorm:"type:uuid;not null" json:"inventory_id"`
	MedicationID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"medication_id"`
	MedicationName   string          `gorm:"type:varchar(200);not null" json:"medication_name"`
	MedicationNameAr string          `gorm:"type:varchar(200)" json:"medication_name_ar,omitempty"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
