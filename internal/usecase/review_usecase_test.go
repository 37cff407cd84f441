package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeReviewRepo struct {
	repository.ReviewRepository
	reviews map[uuid.UUID]*entity.Review
	stats   *entity.RatingStats
	voteErr error
	votes   int
}

func (f *fakeReviewRepo) Create(_ *gorm.DB, r *entity.Review) error {
	r.ID = uuid.New()
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeReviewRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	return f.reviews[id], nil
}

func (f *fakeReviewRepo) Update(_ *gorm.DB, r *entity.Review) error {
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeReviewRepo) ExistsForTarget(_ *gorm.DB, userID uuid.UUID, pharmacyID, medicationID *uuid.UUID) (bool, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && equalID(r.PharmacyID, pharmacyID) && equalID(r.MedicationID, medicationID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) Stats(_ *gorm.DB, _, _ *uuid.UUID) (*entity.RatingStats, error) {
	return f.stats, nil
}

func (f *fakeReviewRepo) AddHelpfulVote(_ *gorm.DB, _ *entity.ReviewHelpfulVote) error {
	if f.voteErr != nil {
		return f.voteErr
	}
	f.votes++
	return nil
}

func equalID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type fakePharmacyRepo struct {
	repository.PharmacyRepository
	pharmacy     *entity.Pharmacy
	ratedAverage float64
	ratedTotal   int64
	locked       int
	incremented  int
}

func (f *fakePharmacyRepo) FindVerifiedByID(_ *gorm.DB, id uuid.UUID) (*entity.Pharmacy, error) {
	if f.pharmacy == nil || f.pharmacy.UserID != id {
		return nil, nil
	}
	return f.pharmacy, nil
}

func (f *fakePharmacyRepo) FindByUserID(db *gorm.DB, id uuid.UUID) (*entity.Pharmacy, error) {
	if isLocking(db) {
		f.locked++
	}
	if f.pharmacy == nil || f.pharmacy.UserID != id {
		return nil, nil
	}
	return f.pharmacy, nil
}

func (f *fakePharmacyRepo) UpdateRating(_ *gorm.DB, _ uuid.UUID, rating float64, total int64) error {
	if f.locked == 0 {
		return errors.New("rating written without holding the pharmacy row")
	}
	f.ratedAverage, f.ratedTotal = rating, total
	return nil
}

func (f *fakePharmacyRepo) IncrementOrders(_ *gorm.DB, _ uuid.UUID) error {
	f.incremented++
	return nil
}

// fakeOrderRepo hands out copies so callers only see writes that went through UpdateIfStatus
type fakeOrderRepo struct {
	repository.OrderRepository
	mu        sync.Mutex
	orders    map[uuid.UUID]*entity.Order
	delivered bool
	locked    []uuid.UUID
	pending   []entity.Order
	// readers, when set, holds every locked read until all expected readers arrived
	readers *sync.WaitGroup
}

func (f *fakeOrderRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error) {
	locking := isLocking(db)

	f.mu.Lock()
	stored, ok := f.orders[id]
	var order *entity.Order
	if ok {
		snapshot := *stored
		order = &snapshot
	}
	if locking {
		f.locked = append(f.locked, id)
	}
	f.mu.Unlock()

	if locking && f.readers != nil {
		f.readers.Done()
		f.readers.Wait()
	}
	return order, nil
}

func (f *fakeOrderRepo) UpdateIfStatus(_ *gorm.DB, o *entity.Order, expected entity.OrderStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[o.ID]
	if !ok || stored.Status != expected {
		return 0, nil
	}
	saved := *o
	f.orders[o.ID] = &saved
	return 1, nil
}

func (f *fakeOrderRepo) FindPendingBefore(_ *gorm.DB, _ time.Time, _ int) ([]entity.Order, error) {
	return f.pending, nil
}

func (f *fakeOrderRepo) HasDeliveredFromPharmacy(_ *gorm.DB, _, _ uuid.UUID) (bool, error) {
	return f.delivered, nil
}

func (f *fakeOrderRepo) HasDeliveredMedication(_ *gorm.DB, _, _ uuid.UUID) (bool, error) {
	return f.delivered, nil
}

func (f *fakeOrderRepo) status(id uuid.UUID) entity.OrderStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id].Status
}

type reviewFixture struct {
	usecase    *reviewUsecase
	reviews    *fakeReviewRepo
	pharmacies *fakePharmacyRepo
	orders     *fakeOrderRepo
	notifier   *recordingNotifier
	patient    uuid.UUID
	pharmacyID uuid.UUID
}

func newReviewFixture(db *gorm.DB) *reviewFixture {
	f := &reviewFixture{
		patient:    uuid.New(),
		pharmacyID: uuid.New(),
		reviews:    &fakeReviewRepo{reviews: map[uuid.UUID]*entity.Review{}},
		orders:     &fakeOrderRepo{orders: map[uuid.UUID]*entity.Order{}},
		notifier:   &recordingNotifier{},
	}
	f.pharmacies = &fakePharmacyRepo{pharmacy: &entity.Pharmacy{UserID: f.pharmacyID, VerificationStatus: entity.VerificationVerified}}
	f.usecase = &reviewUsecase{
		db:                  db,
		log:                 newTestLogger(),
		reviewRepo:          f.reviews,
		pharmacyRepo:        f.pharmacies,
		orderRepo:           f.orders,
		notificationService: f.notifier,
	}
	return f
}

func TestCreateReview_PharmacyUpdatesRatingAndNotifies(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	f := newReviewFixture(db)
	f.orders.delivered = true
	f.reviews.stats = &entity.RatingStats{AverageRating: 4.5, TotalReviews: 2}

	resp, err := f.usecase.Create(asUser(f.patient, entity.RoleIDPatient), &dto.CreateReviewRequest{
		PharmacyID: &f.pharmacyID,
		Rating:     5,
		Comment:    "Fast service",
	})
	require.NoError(t, err)

	assert.True(t, resp.IsVerifiedPurchase)
	assert.Equal(t, 4.5, f.pharmacies.ratedAverage)
	assert.Equal(t, int64(2), f.pharmacies.ratedTotal)
	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, f.pharmacyID, f.notifier.created[0].UserID)
	assert.Contains(t, f.notifier.created[0].Body.EN, "5-star")
	assert.Len(t, f.notifier.pushed, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	f := newReviewFixture(db)
	existing := &entity.Review{ID: uuid.New(), UserID: f.patient, PharmacyID: &f.pharmacyID, Rating: 3}
	f.reviews.reviews[existing.ID] = existing

	_, err := f.usecase.Create(asUser(f.patient, entity.RoleIDPatient), &dto.CreateReviewRequest{PharmacyID: &f.pharmacyID, Rating: 4})
	assert.ErrorIs(t, err, ErrReviewExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview_Rules(t *testing.T) {
	db, _ := newMockDB(t)
	f := newReviewFixture(db)
	medicationID := uuid.New()

	_, err := f.usecase.Create(asUser(f.pharmacyID, entity.RoleIDPharmacy), &dto.CreateReviewRequest{PharmacyID: &f.pharmacyID, Rating: 5})
	assert.ErrorIs(t, err, ErrPatientsOnly)

	_, err = f.usecase.Create(asUser(f.patient, entity.RoleIDPatient), &dto.CreateReviewRequest{PharmacyID: &f.pharmacyID, MedicationID: &medicationID, Rating: 5})
	assert.ErrorIs(t, err, ErrReviewTarget)

	_, err = f.usecase.Create(asUser(f.patient, entity.RoleIDPatient), &dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrReviewTarget)
}

func TestMarkHelpful(t *testing.T) {
	db, mock := newMockDB(t)
	f := newReviewFixture(db)
	review := &entity.Review{ID: uuid.New(), UserID: f.patient, PharmacyID: &f.pharmacyID, Rating: 4}
	f.reviews.reviews[review.ID] = review

	_, err := f.usecase.MarkHelpful(asUser(f.patient, entity.RoleIDPatient), review.ID)
	assert.ErrorIs(t, err, ErrHelpfulOwnReview)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := f.usecase.MarkHelpful(asUser(uuid.New(), entity.RoleIDPatient), review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.HelpfulCount)

	mock.ExpectBegin()
	mock.ExpectRollback()
	f.reviews.voteErr = &pgconn.PgError{Code: "23505", ConstraintName: "review_helpful_votes_pkey"}
	_, err = f.usecase.MarkHelpful(asUser(uuid.New(), entity.RoleIDPatient), review.ID)
	assert.ErrorIs(t, err, ErrHelpfulDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespond(t *testing.T) {
	db, _ := newMockDB(t)
	f := newReviewFixture(db)
	review := &entity.Review{ID: uuid.New(), UserID: f.patient, PharmacyID: &f.pharmacyID, Rating: 2}
	f.reviews.reviews[review.ID] = review
	req := &dto.ReviewResponseRequest{Response: "Sorry for the delay"}

	_, err := f.usecase.Respond(asUser(uuid.New(), entity.RoleIDPharmacy), review.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := f.usecase.Respond(asUser(f.pharmacyID, entity.RoleIDPharmacy), review.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Sorry for the delay", resp.Response)
	assert.NotNil(t, resp.ResponseAt)

	_, err = f.usecase.Respond(asUser(f.pharmacyID, entity.RoleIDPharmacy), review.ID, req)
	assert.ErrorIs(t, err, ErrResponseDuplicate)
}

func TestUpdateReview_OtherPatientSeesNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	f := newReviewFixture(db)
	review := &entity.Review{ID: uuid.New(), UserID: f.patient, PharmacyID: &f.pharmacyID, Rating: 2}
	f.reviews.reviews[review.ID] = review

	rating := 1
	_, err := f.usecase.Update(asUser(uuid.New(), entity.RoleIDPatient), review.ID, &dto.UpdateReviewRequest{Rating: &rating})
	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.Equal(t, 2, review.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewStats_RequiresOneTarget(t *testing.T) {
	db, _ := newMockDB(t)
	f := newReviewFixture(db)

	_, err := f.usecase.Stats(asUser(f.patient, entity.RoleIDPatient), nil, nil)
	assert.ErrorIs(t, err, ErrReviewTarget)
}

func TestUpdateReview_RatingRecomputedUnderPharmacyLock(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	f := newReviewFixture(db)
	review := &entity.Review{ID: uuid.New(), UserID: f.patient, PharmacyID: &f.pharmacyID, Rating: 5}
	f.reviews.reviews[review.ID] = review
	f.reviews.stats = &entity.RatingStats{AverageRating: 3, TotalReviews: 3}

	rating := 1
	_, err := f.usecase.Update(asUser(f.patient, entity.RoleIDPatient), review.ID, &dto.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)

	assert.Equal(t, 1, f.pharmacies.locked)
	assert.Equal(t, 3.0, f.pharmacies.ratedAverage)
	assert.Equal(t, int64(3), f.pharmacies.ratedTotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
