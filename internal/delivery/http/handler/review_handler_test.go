package handler

import (
	"context"
	"net/http"
	"testing"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewUsecase struct {
	usecase.ReviewUsecase
	filter     *entity.ReviewFilter
	helpfulErr error
}

func (f *fakeReviewUsecase) List(_ context.Context, filter entity.ReviewFilter) ([]dto.ReviewResponse, int64, error) {
	f.filter = &filter
	return []dto.ReviewResponse{}, 0, nil
}

func (f *fakeReviewUsecase) Stats(_ context.Context, pharmacyID, medicationID *uuid.UUID) (*dto.ReviewStatsResponse, error) {
	if pharmacyID == nil && medicationID == nil {
		return nil, usecase.ErrReviewTarget
	}
	return &dto.ReviewStatsResponse{}, nil
}

func (f *fakeReviewUsecase) MarkHelpful(_ context.Context, id uuid.UUID) (*dto.ReviewResponse, error) {
	if f.helpfulErr != nil {
		return nil, f.helpfulErr
	}
	return &dto.ReviewResponse{ID: id}, nil
}

func TestReviewHandler_ListFilters(t *testing.T) {
	fake := &fakeReviewUsecase{}
	h := NewReviewHandler(fake, validator.NewValidator())
	pharmacyID := uuid.New()

	rec := serve(h.List, newRequest(http.MethodGet, "/api/v1/reviews?pharmacy_id="+pharmacyID.String()+"&sort=helpful&per_page=5", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fake.filter)
	assert.Equal(t, pharmacyID, *fake.filter.PharmacyID)
	assert.Nil(t, fake.filter.MedicationID)
	assert.Equal(t, entity.ReviewSortHelpful, fake.filter.Sort)
	assert.Equal(t, 5, fake.filter.Limit)
}

func TestReviewHandler_ListBadTarget(t *testing.T) {
	fake := &fakeReviewUsecase{}
	h := NewReviewHandler(fake, validator.NewValidator())

	rec := serve(h.List, newRequest(http.MethodGet, "/api/v1/reviews?medication_id=abc", nil, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fake.filter)
}

func TestReviewHandler_StatsNeedsTarget(t *testing.T) {
	h := NewReviewHandler(&fakeReviewUsecase{}, validator.NewValidator())

	rec := serve(h.Stats, newRequest(http.MethodGet, "/api/v1/reviews/stats", nil, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, i18n.MsgReviewTarget.EN, decodeEnvelope(t, rec).Message)
}

func TestReviewHandler_CreateRatingRange(t *testing.T) {
	h := NewReviewHandler(&fakeReviewUsecase{}, validator.NewValidator())
	pharmacyID := uuid.New()

	rec := serve(h.Create, newRequest(http.MethodPost, "/api/v1/reviews", jsonBody(t, dto.CreateReviewRequest{PharmacyID: &pharmacyID, Rating: 6}), nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Errors, "rating")
}

func TestReviewHandler_MarkHelpful(t *testing.T) {
	id := map[string]string{"id": uuid.New().String()}
	tests := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{usecase.ErrHelpfulDuplicate, http.StatusConflict},
		{usecase.ErrHelpfulOwnReview, http.StatusUnprocessableEntity},
		{usecase.ErrReviewNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		h := NewReviewHandler(&fakeReviewUsecase{helpfulErr: tt.err}, validator.NewValidator())
		rec := serve(h.MarkHelpful, newRequest(http.MethodPost, "/", http.NoBody, id))
		assert.Equal(t, tt.status, rec.Code)
	}
}
