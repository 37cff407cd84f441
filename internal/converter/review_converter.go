package converter

import (
	"math"
	"strconv"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

func ReviewToResponse(r *entity.Review, lang i18n.Lang) *dto.ReviewResponse {
	if r == nil {
		return nil
	}
	return &dto.ReviewResponse{
		ID:                 r.ID,
		User:               UserToSummary(r.User),
		PharmacyID:         r.PharmacyID,
		MedicationID:       r.MedicationID,
		OrderID:            r.OrderID,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		CommentAr:          r.CommentAr,
		DisplayComment:     i18n.Pick(lang, r.Comment, r.CommentAr),
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		HelpfulCount:       r.HelpfulCount,
		Response:           r.Response,
		ResponseAt:         r.ResponseAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func ReviewsToResponses(reviews []entity.Review, lang i18n.Lang) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ReviewToResponse(&reviews[i], lang)
	}
	return responses
}

// RatingStatsToResponse always lists the five star buckets
func RatingStatsToResponse(stats *entity.RatingStats) *dto.ReviewStatsResponse {
	response := &dto.ReviewStatsResponse{Distribution: make(map[string]int64, 5)}
	for star := 1; star <= 5; star++ {
		response.Distribution[strconv.Itoa(star)] = 0
	}
	if stats == nil {
		return response
	}

	response.AverageRating = math.Round(stats.AverageRating*100) / 100
	response.TotalReviews = stats.TotalReviews
	for star, count := range stats.Distribution {
		if star >= 1 && star <= 5 {
			response.Distribution[strconv.Itoa(star)] = count
		}
	}
	return response
}
