package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	InventoryID uuid.UUID `json:"inventory_id" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,gte=1,lte=100"`
}

// UpdateCartItemRequest sets the quantity; zero removes the line
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=100"`
}

type CartItemResponse struct {
	ID        uuid.UUID          `json:"id"`
	Quantity  int                `json:"quantity"`
	Item      *InventoryResponse `json:"item,omitempty"`
	LineTotal decimal.Decimal    `json:"line_total"`
	Available bool               `json:"available"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	ItemCount  int                `json:"item_count"`
	TotalUnits int                `json:"total_units"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Currency   string             `json:"currency"`
}
