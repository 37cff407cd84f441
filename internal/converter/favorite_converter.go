package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

func FavoriteToResponse(f *entity.Favorite, lang i18n.Lang) *dto.FavoriteResponse {
	if f == nil {
		return nil
	}

	response := &dto.FavoriteResponse{
		ID:           f.ID,
		ItemType:     string(f.ItemType),
		MedicationID: f.MedicationID,
		PharmacyID:   f.PharmacyID,
		Notes:        f.Notes,
		NotesAr:      f.NotesAr,
		CreatedAt:    f.CreatedAt,
	}
	if f.Medication != nil {
		response.Medication = MedicationToResponse(f.Medication, lang)
	}
	if f.Pharmacy != nil {
		response.Pharmacy = PharmacyToResponse(f.Pharmacy, lang, false)
	}
	return response
}

func FavoritesToResponses(favorites []entity.Favorite, lang i18n.Lang) []dto.FavoriteResponse {
	responses := make([]dto.FavoriteResponse, len(favorites))
	for i := range favorites {
		responses[i] = *FavoriteToResponse(&favorites[i], lang)
	}
	return responses
}

func FavoriteStatsToResponse(counts map[entity.FavoriteType]int64) *dto.FavoriteStatsResponse {
	response := &dto.FavoriteStatsResponse{ByType: map[string]int64{
		string(entity.FavoriteTypeMedication): 0,
		string(entity.FavoriteTypePharmacy):   0,
	}}
	for itemType, count := range counts {
		response.ByType[string(itemType)] = count
		response.Total += count
	}
	return response
}
