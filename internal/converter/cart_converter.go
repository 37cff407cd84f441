package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"

	"github.com/shopspring/decimal"
)

func CartItemToResponse(c *entity.CartItem, lang i18n.Lang) *dto.CartItemResponse {
	if c == nil {
		return nil
	}
	response := &dto.CartItemResponse{
		ID:        c.ID,
		Quantity:  c.Quantity,
		Item:      InventoryToResponse(c.Item, lang),
		LineTotal: c.LineTotal(),
	}
	if c.Item != nil {
		response.Available = c.Item.IsSellable() && c.Item.Quantity >= c.Quantity
	}
	return response
}

// CartToResponse sums only lines that can still be bought
func CartToResponse(items []entity.CartItem, currency string, lang i18n.Lang) *dto.CartResponse {
	response := &dto.CartResponse{
		Items:     make([]dto.CartItemResponse, len(items)),
		ItemCount: len(items),
		Subtotal:  decimal.Zero,
		Currency:  currency,
	}
	for i := range items {
		line := CartItemToResponse(&items[i], lang)
		response.Items[i] = *line
		response.TotalUnits += line.Quantity
		if line.Available {
			response.Subtotal = response.Subtotal.Add(line.LineTotal)
		}
	}
	return response
}
