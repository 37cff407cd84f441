package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem holds a quantity of one pharmacy's inventory item until checkout
type CartItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	InventoryID uuid.UUID `gorm:"type:uuid;not null" json:"inventory_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Item *InventoryItem `gorm:"foreignKey:InventoryID" json:"item,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal prices the line at the current discounted price. Zero when the item is not loaded.
func (c *CartItem) LineTotal() decimal.Decimal {
	if c.Item == nil {
		return decimal.Zero
	}
	return c.Item.DiscountedPrice().Mul(decimal.NewFromInt(int64(c.Quantity))).Round(2)
}
