package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold applies when a pharmacy does not set one
const DefaultLowStockThreshold = 10

// InventoryItem is a medication stocked by one pharmacy with its own price and quantity
type InventoryItem struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PharmacyID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_pharmacy_medication" json:"pharmacy_id"`
	MedicationID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_pharmacy_medication" json:"medication_id"`
	BatchNumber        string          `gorm:"type:varchar(50)" json:"batch_number,omitempty"`
	ExpiryDate         *time.Time      `gorm:"type:date" json:"expiry_date,omitempty"`
	Quantity           int             `gorm:"not null;default:0" json:"quantity"`
	LowStockThreshold  int             `gorm:"not null;default:10" json:"low_stock_threshold"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percentage"`
	IsAvailable        bool            `gorm:"not null;default:true" json:"is_available"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Medication Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
	Pharmacy   *Pharmacy  `gorm:"foreignKey:PharmacyID" json:"pharmacy,omitempty"`
}

func (InventoryItem) TableName() string {
	return "pharmacy_inventory"
}

var hundred = decimal.NewFromInt(100)

// DiscountedPrice is price * (1 - discount/100), rounded to 2 decimals
func (i *InventoryItem) DiscountedPrice() decimal.Decimal {
	if !i.DiscountPercentage.IsPositive() {
		return i.Price.Round(2)
	}
	factor := decimal.NewFromInt(1).Sub(i.DiscountPercentage.Div(hundred))
	if factor.IsNegative() {
		factor = decimal.Zero
	}
	return i.Price.Mul(factor).Round(2)
}

func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// IsExpiredAt reports whether the batch expiry date is before the given day
func (i *InventoryItem) IsExpiredAt(now time.Time) bool {
	if i.ExpiryDate == nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return i.ExpiryDate.Before(today)
}

func (i *InventoryItem) IsExpired() bool {
	return i.IsExpiredAt(time.Now())
}

// IsSellable reports whether the item can go into a new order
func (i *InventoryItem) IsSellable() bool {
	return i.IsAvailable && !i.IsExpired() && i.Quantity > 0
}

// StockOperation is the kind of manual stock adjustment
type StockOperation string

const (
	StockSet      StockOperation = "set"
	StockAdd      StockOperation = "add"
	StockSubtract StockOperation = "subtract"
)

// ApplyStock returns the quantity after the operation, false if it would go below zero
func ApplyStock(current int, op StockOperation, quantity int) (int, bool) {
	var next int
	switch op {
	case StockSet:
		next = quantity
	case StockAdd:
		next = current + quantity
	case StockSubtract:
		next = current - quantity
	default:
		return current, false
	}
	if next < 0 {
		return current, false
	}
	return next, true
}
