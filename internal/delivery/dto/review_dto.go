package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	PharmacyID   *uuid.UUID `json:"pharmacy_id"`
	MedicationID *uuid.UUID `json:"medication_id"`
	OrderID      *uuid.UUID `json:"order_id"`
	Rating       int        `json:"rating" validate:"required,gte=1,lte=5"`
	Title        string     `json:"title" validate:"omitempty,max=200"`
	Comment      string     `json:"comment" validate:"omitempty,max=2000"`
	CommentAr    string     `json:"comment_ar" validate:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Rating    *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Title     *string `json:"title" validate:"omitempty,max=200"`
	Comment   *string `json:"comment" validate:"omitempty,max=2000"`
	CommentAr *string `json:"comment_ar" validate:"omitempty,max=2000"`
}

type ReviewResponseRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

type ReviewResponse struct {
	ID                 uuid.UUID    `json:"id"`
	User               *UserSummary `json:"user,omitempty"`
	PharmacyID         *uuid.UUID   `json:"pharmacy_id,omitempty"`
	MedicationID       *uuid.UUID   `json:"medication_id,omitempty"`
	OrderID            *uuid.UUID   `json:"order_id,omitempty"`
	Rating             int          `json:"rating"`
	Title              string       `json:"title,omitempty"`
	Comment            string       `json:"comment,omitempty"`
	CommentAr          string       `json:"comment_ar,omitempty"`
	DisplayComment     string       `json:"display_comment,omitempty"`
	IsVerifiedPurchase bool         `json:"is_verified_purchase"`
	HelpfulCount       int          `json:"helpful_count"`
	Response           string       `json:"response,omitempty"`
	ResponseAt         *time.Time   `json:"response_at,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type ReviewStatsResponse struct {
	AverageRating float64          `json:"average_rating"`
	TotalReviews  int64            `json:"total_reviews"`
	Distribution  map[string]int64 `json:"distribution"`
}
