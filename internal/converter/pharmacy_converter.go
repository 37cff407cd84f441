package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

// PharmacyToResponse renders a pharmacy. Private fields (license, verification notes)
// are only included for the owner and admins.
func PharmacyToResponse(p *entity.Pharmacy, lang i18n.Lang, private bool) *dto.PharmacyResponse {
	if p == nil {
		return nil
	}

	response := &dto.PharmacyResponse{
		ID:                    p.UserID,
		Name:                  p.Name,
		NameAr:                p.NameAr,
		DisplayName:           i18n.Pick(lang, p.Name, p.NameAr),
		PharmacistName:        p.PharmacistName,
		Phone:                 p.Phone,
		Address:               p.Address,
		AddressAr:             p.AddressAr,
		DisplayAddress:        i18n.Pick(lang, p.Address, p.AddressAr),
		City:                  p.City,
		Latitude:              p.Latitude,
		Longitude:             p.Longitude,
		Description:           p.Description,
		DescriptionAr:         p.DescriptionAr,
		DisplayDescription:    i18n.Pick(lang, p.Description, p.DescriptionAr),
		Is24Hours:             p.Is24Hours,
		HasDelivery:           p.HasDelivery,
		DeliveryFee:           p.DeliveryFee,
		FreeDeliveryThreshold: p.FreeDeliveryThreshold,
		DeliveryRadiusKm:      p.DeliveryRadiusKm,
		VerificationStatus:    string(p.VerificationStatus),
		Rating:                p.Rating,
		TotalReviews:          p.TotalReviews,
		TotalOrders:           p.TotalOrders,
		CreatedAt:             p.CreatedAt,
	}

	if private {
		response.LicenseNumber = p.LicenseNumber
		response.VerificationNotes = p.VerificationNotes
		response.Email = p.User.Email
	}

	return response
}

func PharmaciesToResponses(pharmacies []entity.Pharmacy, lang i18n.Lang, private bool) []dto.PharmacyResponse {
	responses := make([]dto.PharmacyResponse, len(pharmacies))
	for i := range pharmacies {
		responses[i] = *PharmacyToResponse(&pharmacies[i], lang, private)
	}
	return responses
}

func PharmacyStatsToResponse(stats *entity.PharmacyStats, currency string) *dto.PharmacyStatsResponse {
	if stats == nil {
		return nil
	}

	byStatus := make(map[string]int64, len(stats.OrdersByStatus))
	var total int64
	for status, count := range stats.OrdersByStatus {
		byStatus[string(status)] = count
		total += count
	}

	return &dto.PharmacyStatsResponse{
		InventoryCount: stats.InventoryCount,
		LowStockCount:  stats.LowStockCount,
		OrdersByStatus: byStatus,
		TotalOrders:    total,
		Revenue:        stats.Revenue,
		Currency:       currency,
		Rating:         stats.Rating,
		TotalReviews:   stats.TotalReviews,
	}
}
