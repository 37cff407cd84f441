package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

func OrderToResponse(o *entity.Order, lang i18n.Lang) *dto.OrderResponse {
	if o == nil {
		return nil
	}

	response := &dto.OrderResponse{
		ID:                     o.ID,
		OrderNumber:            o.OrderNumber,
		Status:                 string(o.Status),
		DisplayStatus:          i18n.StatusLabel(string(o.Status)).In(lang),
		OrderType:              string(o.OrderType),
		Patient:                UserToSummary(o.Patient),
		PharmacyID:             o.PharmacyID,
		PrescriptionID:         o.PrescriptionID,
		DeliveryMethod:         string(o.DeliveryMethod),
		DeliveryAddress:        o.DeliveryAddress,
		DeliveryCity:           o.DeliveryCity,
		DeliveryPhone:          o.DeliveryPhone,
		DeliveryLatitude:       o.DeliveryLatitude,
		DeliveryLongitude:      o.DeliveryLongitude,
		Subtotal:               o.Subtotal,
		TaxAmount:              o.TaxAmount,
		DeliveryFee:            o.DeliveryFee,
		DiscountAmount:         o.DiscountAmount,
		TotalAmount:            o.TotalAmount,
		Currency:               o.Currency,
		PaymentMethod:          string(o.PaymentMethod),
		PaymentStatus:          string(o.PaymentStatus),
		Notes:                  o.Notes,
		PharmacistNotes:        o.PharmacistNotes,
		PharmacistNotesAr:      o.PharmacistNotesAr,
		DisplayPharmacistNotes: i18n.Pick(lang, o.PharmacistNotes, o.PharmacistNotesAr),
		CancellationReason:     o.CancellationReason,
		CanBeCancelled:         o.CanBeCancelled(),
		Items:                  make([]dto.OrderItemResponse, len(o.Items)),
		ConfirmedAt:            o.ConfirmedAt,
		PreparedAt:             o.PreparedAt,
		DeliveredAt:            o.DeliveredAt,
		CancelledAt:            o.CancelledAt,
		CreatedAt:              o.CreatedAt,
	}
	if o.Pharmacy != nil {
		response.PharmacyName = i18n.Pick(lang, o.Pharmacy.Name, o.Pharmacy.NameAr)
	}

	for i, item := range o.Items {
		response.Items[i] = dto.OrderItemResponse{
			ID:                    item.ID,
			InventoryID:           item.InventoryID,
			MedicationID:          item.MedicationID,
			MedicationName:        item.MedicationName,
			MedicationNameAr:      item.MedicationNameAr,
			DisplayMedicationName: i18n.Pick(lang, item.MedicationName, item.MedicationNameAr),
			Quantity:              item.Quantity,
			UnitPrice:             item.UnitPrice,
			TotalPrice:            item.TotalPrice,
		}
	}

	return response
}

func OrdersToResponses(orders []entity.Order, lang i18n.Lang) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *OrderToResponse(&orders[i], lang)
	}
	return responses
}
