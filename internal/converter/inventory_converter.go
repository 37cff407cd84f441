package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

func InventoryToResponse(item *entity.InventoryItem, lang i18n.Lang) *dto.InventoryResponse {
	if item == nil {
		return nil
	}

	response := &dto.InventoryResponse{
		ID:                 item.ID,
		PharmacyID:         item.PharmacyID,
		BatchNumber:        item.BatchNumber,
		ExpiryDate:         formatDate(item.ExpiryDate),
		Quantity:           item.Quantity,
		LowStockThreshold:  item.LowStockThreshold,
		Price:              item.Price,
		DiscountPercentage: item.DiscountPercentage,
		DiscountedPrice:    item.DiscountedPrice(),
		IsAvailable:        item.IsAvailable,
		IsLowStock:         item.IsLowStock(),
		IsExpired:          item.IsExpired(),
		UpdatedAt:          item.UpdatedAt,
	}
	if item.Medication.ID == item.MedicationID {
		response.Medication = MedicationToResponse(&item.Medication, lang)
	}

	return response
}

func InventoriesToResponses(items []entity.InventoryItem, lang i18n.Lang) []dto.InventoryResponse {
	responses := make([]dto.InventoryResponse, len(items))
	for i := range items {
		responses[i] = *InventoryToResponse(&items[i], lang)
	}
	return responses
}
