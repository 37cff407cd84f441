package repository

import (
	"errors"
	"math"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct{}

func NewReviewRepository() domainRepo.ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *entity.Review) error {
	return db.Omit("User").Create(review).Error
}

func (r *reviewRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	err := db.Preload("User").Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

var reviewOrder = map[entity.ReviewSort]string{
	entity.ReviewSortNewest:     "created_at DESC",
	entity.ReviewSortOldest:     "created_at ASC",
	entity.ReviewSortRatingHigh: "rating DESC, created_at DESC",
	entity.ReviewSortRatingLow:  "rating ASC, created_at DESC",
	entity.ReviewSortHelpful:    "helpful_count DESC, created_at DESC",
}

func (r *reviewRepository) FindAll(db *gorm.DB, filter entity.ReviewFilter) ([]entity.Review, int64, error) {
	query := targetScope(db.Model(&entity.Review{}), filter.PharmacyID, filter.MedicationID)
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	order, ok := reviewOrder[filter.Sort]
	if !ok {
		order = reviewOrder[entity.ReviewSortNewest]
	}

	var reviews []entity.Review
	err = query.Preload("User").Order(order).Scopes(paginate(filter.Page)).Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) Update(db *gorm.DB, review *entity.Review) error {
	return db.Omit("User").Save(review).Error
}

// Delete removes the review and its helpful votes
func (r *reviewRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	if err := db.Where("review_id = ?", id).Delete(&entity.ReviewHelpfulVote{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entity.Review{}).Error
}

func (r *reviewRepository) ExistsForTarget(db *gorm.DB, userID uuid.UUID, pharmacyID, medicationID *uuid.UUID) (bool, error) {
	var total int64
	err := targetScope(db.Model(&entity.Review{}), pharmacyID, medicationID).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total > 0, err
}

// Stats computes the rating distribution of a target, average rounded to 2 decimals
func (r *reviewRepository) Stats(db *gorm.DB, pharmacyID, medicationID *uuid.UUID) (*entity.RatingStats, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := targetScope(db.Model(&entity.Review{}), pharmacyID, medicationID).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &entity.RatingStats{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum int64
	for _, row := range rows {
		stats.Distribution[row.Rating] = row.Count
		stats.TotalReviews += row.Count
		sum += int64(row.Rating) * row.Count
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.TotalReviews)*100) / 100
	}
	return stats, nil
}

// AddHelpfulVote records the vote and bumps the counter; a repeated vote fails on the primary key
func (r *reviewRepository) AddHelpfulVote(db *gorm.DB, vote *entity.ReviewHelpfulVote) error {
	if err := db.Create(vote).Error; err != nil {
		return err
	}
	return db.Model(&entity.Review{}).Where("id = ?", vote.ReviewID).
		Update("helpful_count", gorm.Expr("helpful_count + ?", 1)).Error
}

func targetScope(query *gorm.DB, pharmacyID, medicationID *uuid.UUID) *gorm.DB {
	if pharmacyID != nil {
		query = query.Where("pharmacy_id = ?", *pharmacyID)
	}
	if medicationID != nil {
		query = query.Where("medication_id = ?", *medicationID)
	}
	return query
}
