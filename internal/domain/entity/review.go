package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review rates exactly one of a pharmacy or a medication
type Review struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PharmacyID         *uuid.UUID `gorm:"type:uuid;index" json:"pharmacy_id,omitempty"`
	MedicationID       *uuid.UUID `gorm:"type:uuid;index" json:"medication_id,omitempty"`
	OrderID            *uuid.UUID `gorm:"type:uuid" json:"order_id,omitempty"`
	Rating             int        `gorm:"not null" json:"rating"`
	Title              string     `gorm:"type:varchar(200)" json:"title,omitempty"`
	Comment            string     `gorm:"type:text" json:"comment,omitempty"`
	CommentAr          string     `gorm:"type:text" json:"comment_ar,omitempty"`
	IsVerifiedPurchase bool       `gorm:"not null;default:false" json:"is_verified_purchase"`
	HelpfulCount       int        `gorm:"not null;default:0" json:"helpful_count"`
	Response           string     `gorm:"type:text" json:"response,omitempty"`
	ResponseAt         *time.Time `json:"response_at,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) HasSingleTarget() bool {
	return (r.PharmacyID == nil) != (r.MedicationID == nil)
}

// ReviewHelpfulVote records one user finding a review helpful
type ReviewHelpfulVote struct {
	ReviewID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"review_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ReviewHelpfulVote) TableName() string {
	return "review_helpful_votes"
}

// RatingStats aggregates the reviews of one target
type RatingStats struct {
	AverageRating float64
	TotalReviews  int64
	Distribution  map[int]int64
}
