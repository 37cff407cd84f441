package usecase

import (
	"context"
	"errors"
	"time"

	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound    = errors.New("review not found")
	ErrReviewExists      = errors.New("review already exists")
	ErrReviewTarget      = errors.New("exactly one of pharmacy_id or medication_id is required")
	ErrHelpfulDuplicate  = errors.New("review already marked helpful")
	ErrHelpfulOwnReview  = errors.New("cannot mark own review helpful")
	ErrResponseDuplicate = errors.New("review already has a response")
)

type ReviewUsecase interface {
	List(ctx context.Context, filter entity.ReviewFilter) ([]dto.ReviewResponse, int64, error)
	Stats(ctx context.Context, pharmacyID, medicationID *uuid.UUID) (*dto.ReviewStatsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error)
	MyReviews(ctx context.Context, page entity.Page) ([]dto.ReviewResponse, int64, error)
	Create(ctx context.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkHelpful(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error)
	Respond(ctx context.Context, id uuid.UUID, req *dto.ReviewResponseRequest) (*dto.ReviewResponse, error)
}

type reviewUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	reviewRepo          repository.ReviewRepository
	pharmacyRepo        repository.PharmacyRepository
	medicationRepo      repository.MedicationRepository
	orderRepo           repository.OrderRepository
	notificationService service.NotificationService
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reviewRepo repository.ReviewRepository,
	pharmacyRepo repository.PharmacyRepository,
	medicationRepo repository.MedicationRepository,
	orderRepo repository.OrderRepository,
	notificationService service.NotificationService,
) ReviewUsecase {
	return &reviewUsecase{
		db:                  db,
		log:                 log,
		reviewRepo:          reviewRepo,
		pharmacyRepo:        pharmacyRepo,
		medicationRepo:      medicationRepo,
		orderRepo:           orderRepo,
		notificationService: notificationService,
	}
}

func singleTarget(pharmacyID, medicationID *uuid.UUID) bool {
	return (pharmacyID == nil) != (medicationID == nil)
}

func (u *reviewUsecase) List(ctx context.Context, filter entity.ReviewFilter) ([]dto.ReviewResponse, int64, error) {
	reviews, total, err := u.reviewRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list reviews: %+v", err)
		return nil, 0, err
	}
	return converter.ReviewsToResponses(reviews, i18n.FromContext(ctx)), total, nil
}

func (u *reviewUsecase) Stats(ctx context.Context, pharmacyID, medicationID *uuid.UUID) (*dto.ReviewStatsResponse, error) {
	if !singleTarget(pharmacyID, medicationID) {
		return nil, ErrReviewTarget
	}

	stats, err := u.reviewRepo.Stats(u.db.WithContext(ctx), pharmacyID, medicationID)
	if err != nil {
		u.log.Warnf("Failed to compute review stats: %+v", err)
		return nil, err
	}
	return converter.RatingStatsToResponse(stats), nil
}

func (u *reviewUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error) {
	review, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.ReviewToResponse(review, i18n.FromContext(ctx)), nil
}

func (u *reviewUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	review, err := u.reviewRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find review: %+v", err)
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (u *reviewUsecase) MyReviews(ctx context.Context, page entity.Page) ([]dto.ReviewResponse, int64, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, 0, err
	}
	if roleID != entity.RoleIDPatient {
		return nil, 0, ErrPatientsOnly
	}
	return u.List(ctx, entity.ReviewFilter{UserID: &userID, Page: page})
}

func (u *reviewUsecase) Create(ctx context.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDPatient {
		return nil, ErrPatientsOnly
	}
	if !singleTarget(req.PharmacyID, req.MedicationID) {
		return nil, ErrReviewTarget
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review := &entity.Review{
		UserID:       userID,
		PharmacyID:   req.PharmacyID,
		MedicationID: req.MedicationID,
		OrderID:      req.OrderID,
		Rating:       req.Rating,
		Title:        req.Title,
		Comment:      req.Comment,
		CommentAr:    req.CommentAr,
	}

	if req.PharmacyID != nil {
		pharmacy, err := u.pharmacyRepo.FindVerifiedByID(tx, *req.PharmacyID)
		if err != nil {
			u.log.Warnf("Failed to find pharmacy: %+v", err)
			return nil, err
		}
		if pharmacy == nil {
			return nil, ErrPharmacyNotFound
		}
		if review.IsVerifiedPurchase, err = u.orderRepo.HasDeliveredFromPharmacy(tx, userID, pharmacy.UserID); err != nil {
			u.log.Warnf("Failed to check purchase history: %+v", err)
			return nil, err
		}
	} else {
		medication, err := u.medicationRepo.FindByID(tx, *req.MedicationID)
		if err != nil {
			u.log.Warnf("Failed to find medication: %+v", err)
			return nil, err
		}
		if medication == nil || !medication.IsActive {
			return nil, ErrMedicationNotFound
		}
		if review.IsVerifiedPurchase, err = u.orderRepo.HasDeliveredMedication(tx, userID, medication.ID); err != nil {
			u.log.Warnf("Failed to check purchase history: %+v", err)
			return nil, err
		}
	}

	if req.OrderID != nil {
		order, err := u.orderRepo.FindByID(tx, *req.OrderID)
		if err != nil {
			u.log.Warnf("Failed to find order: %+v", err)
			return nil, err
		}
		if order == nil || order.PatientID != userID {
			return nil, ErrOrderNotFound
		}
	}

	exists, err := u.reviewRepo.ExistsForTarget(tx, userID, req.PharmacyID, req.MedicationID)
	if err != nil {
		u.log.Warnf("Failed to check existing review: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	if err := u.reviewRepo.Create(tx, review); err != nil {
		if isDuplicateKeyError(err, "reviews_user_") {
			return nil, ErrReviewExists
		}
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	var notification *entity.Notification
	if review.PharmacyID != nil {
		if err := u.recomputeRating(tx, *review.PharmacyID); err != nil {
			return nil, err
		}
		notification, err = u.notificationService.Create(ctx, tx, service.NotificationInput{
			UserID:    *review.PharmacyID,
			Type:      entity.NotificationTypeReview,
			Title:     i18n.NotifyReviewTitle,
			Body:      i18n.NotifyReviewBody.Format(review.Rating),
			ActionURL: "/reviews/" + review.ID.String(),
			Data:      entity.JSON{"review_id": review.ID.String(), "rating": review.Rating},
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.notificationService.Push(ctx, notification)

	return u.Get(ctx, review.ID)
}

// recomputeRating refreshes the pharmacy's cached average and review count.
// Concurrent review writes queue on the pharmacy row so each aggregate sees the others.
func (u *reviewUsecase) recomputeRating(tx *gorm.DB, pharmacyID uuid.UUID) error {
	if _, err := u.pharmacyRepo.FindByUserID(tx.Clauses(forUpdate()), pharmacyID); err != nil {
		u.log.Warnf("Failed to lock pharmacy: %+v", err)
		return err
	}

	stats, err := u.reviewRepo.Stats(tx, &pharmacyID, nil)
	if err != nil {
		u.log.Warnf("Failed to compute pharmacy rating: %+v", err)
		return err
	}
	if err := u.pharmacyRepo.UpdateRating(tx, pharmacyID, stats.AverageRating, stats.TotalReviews); err != nil {
		u.log.Warnf("Failed to update pharmacy rating: %+v", err)
		return err
	}
	return nil
}

// owned loads a review written by the calling patient. Someone else's review reads as not found.
func (u *reviewUsecase) owned(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDPatient {
		return nil, ErrPatientsOnly
	}

	review, err := u.find(tx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (u *reviewUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review, err := u.owned(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.CommentAr != nil {
		review.CommentAr = *req.CommentAr
	}

	if err := u.reviewRepo.Update(tx, review); err != nil {
		u.log.Warnf("Failed to update review: %+v", err)
		return nil, err
	}
	if review.PharmacyID != nil && req.Rating != nil {
		if err := u.recomputeRating(tx, *review.PharmacyID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return converter.ReviewToResponse(review, i18n.FromContext(ctx)), nil
}

func (u *reviewUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review, err := u.owned(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := u.reviewRepo.Delete(tx, review.ID); err != nil {
		u.log.Warnf("Failed to delete review: %+v", err)
		return err
	}
	if review.PharmacyID != nil {
		if err := u.recomputeRating(tx, *review.PharmacyID); err != nil {
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *reviewUsecase) MarkHelpful(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	review, err := u.find(db, id)
	if err != nil {
		return nil, err
	}
	if review.UserID == userID {
		return nil, ErrHelpfulOwnReview
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return u.reviewRepo.AddHelpfulVote(tx, &entity.ReviewHelpfulVote{ReviewID: review.ID, UserID: userID})
	})
	if err != nil {
		if isDuplicateKeyError(err, "review_helpful_votes_pkey") {
			return nil, ErrHelpfulDuplicate
		}
		u.log.Warnf("Failed to record helpful vote: %+v", err)
		return nil, err
	}

	review.HelpfulCount++
	return converter.ReviewToResponse(review, i18n.FromContext(ctx)), nil
}

// Respond lets the reviewed pharmacy answer once
func (u *reviewUsecase) Respond(ctx context.Context, id uuid.UUID, req *dto.ReviewResponseRequest) (*dto.ReviewResponse, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if roleID != entity.RoleIDPharmacy {
		return nil, ErrForbidden
	}

	db := u.db.WithContext(ctx)
	review, err := u.find(db, id)
	if err != nil {
		return nil, err
	}
	if review.PharmacyID == nil || *review.PharmacyID != userID {
		return nil, ErrForbidden
	}
	if review.Response != "" {
		return nil, ErrResponseDuplicate
	}

	now := time.Now()
	review.Response = req.Response
	review.ResponseAt = &now
	if err := u.reviewRepo.Update(db, review); err != nil {
		u.log.Warnf("Failed to save review response: %+v", err)
		return nil, err
	}
	return converter.ReviewToResponse(review, i18n.FromContext(ctx)), nil
}
