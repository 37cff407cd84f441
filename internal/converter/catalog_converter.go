package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

func CategoryToResponse(c *entity.MedicationCategory, lang i18n.Lang) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:                 c.ID,
		Name:               c.Name,
		NameAr:             c.NameAr,
		DisplayName:        i18n.Pick(lang, c.Name, c.NameAr),
		Description:        c.Description,
		DescriptionAr:      c.DescriptionAr,
		DisplayDescription: i18n.Pick(lang, c.Description, c.DescriptionAr),
		ParentID:           c.ParentID,
		IsActive:           c.IsActive,
	}
}

func CategoriesToResponses(categories []entity.MedicationCategory, lang i18n.Lang) []dto.CategoryResponse {
	responses := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *CategoryToResponse(&categories[i], lang)
	}
	return responses
}

func MedicationToResponse(m *entity.Medication, lang i18n.Lang) *dto.MedicationResponse {
	if m == nil {
		return nil
	}

	response := &dto.MedicationResponse{
		ID:                   m.ID,
		Name:                 m.Name,
		NameAr:               m.NameAr,
		DisplayName:          i18n.Pick(lang, m.Name, m.NameAr),
		GenericName:          m.GenericName,
		GenericNameAr:        m.GenericNameAr,
		DisplayGenericName:   i18n.Pick(lang, m.GenericName, m.GenericNameAr),
		Brand:                m.Brand,
		Category:             CategoryToResponse(m.Category, lang),
		DosageForm:           m.DosageForm,
		Strength:             m.Strength,
		Manufacturer:         m.Manufacturer,
		Description:          m.Description,
		DescriptionAr:        m.DescriptionAr,
		DisplayDescription:   i18n.Pick(lang, m.Description, m.DescriptionAr),
		RequiresPrescription: m.RequiresPrescription,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
	}
	if m.Barcode != nil {
		response.Barcode = *m.Barcode
	}

	return response
}

func MedicationsToResponses(medications []entity.Medication, lang i18n.Lang) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i := range medications {
		responses[i] = *MedicationToResponse(&medications[i], lang)
	}
	return responses
}

func OffersToResponses(offers []entity.PharmacyOffer, lang i18n.Lang) []dto.PharmacyOfferResponse {
	responses := make([]dto.PharmacyOfferResponse, len(offers))
	for i := range offers {
		item, pharmacy := &offers[i].Item, &offers[i].Pharmacy
		responses[i] = dto.PharmacyOfferResponse{
			InventoryID:        item.ID,
			PharmacyID:         pharmacy.UserID,
			PharmacyName:       i18n.Pick(lang, pharmacy.Name, pharmacy.NameAr),
			City:               pharmacy.City,
			Rating:             pharmacy.Rating,
			HasDelivery:        pharmacy.HasDelivery,
			Is24Hours:          pharmacy.Is24Hours,
			Quantity:           item.Quantity,
			Price:              item.Price,
			DiscountPercentage: item.DiscountPercentage,
			DiscountedPrice:    item.DiscountedPrice(),
		}
	}
	return responses
}
