package handler

import (
	"context"
	"net/http"
	"testing"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartUsecase struct {
	usecase.CartUsecase
	updated *dto.UpdateCartItemRequest
	addErr  error
}

func (f *fakeCartUsecase) Update(_ context.Context, _ uuid.UUID, req *dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	f.updated = req
	return &dto.CartResponse{}, nil
}

func (f *fakeCartUsecase) Add(_ context.Context, _ *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &dto.CartResponse{}, nil
}

func TestCartHandler_UpdateToZeroRemoves(t *testing.T) {
	id := map[string]string{"id": uuid.New().String()}
	fake := &fakeCartUsecase{}
	h := NewCartHandler(fake, validator.NewValidator())

	rec := serve(h.Update, newRequest(http.MethodPut, "/", jsonBody(t, `{"quantity":0}`), id))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, i18n.MsgCartItemRemoved.EN, decodeEnvelope(t, rec).Message)
	require.NotNil(t, fake.updated)
	assert.Equal(t, 0, *fake.updated.Quantity)

	rec = serve(h.Update, newRequest(http.MethodPut, "/", jsonBody(t, `{"quantity":2}`), id))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, i18n.MsgCartItemUpdated.EN, decodeEnvelope(t, rec).Message)
}

func TestCartHandler_UpdateNeedsQuantity(t *testing.T) {
	fake := &fakeCartUsecase{}
	h := NewCartHandler(fake, validator.NewValidator())

	rec := serve(h.Update, newRequest(http.MethodPut, "/", jsonBody(t, `{}`), map[string]string{"id": uuid.New().String()}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Errors, "quantity")
	assert.Nil(t, fake.updated)
}

func TestCartHandler_AddErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{usecase.ErrInsufficientStock, http.StatusConflict},
		{usecase.ErrInventoryNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		h := NewCartHandler(&fakeCartUsecase{addErr: tt.err}, validator.NewValidator())
		rec := serve(h.Add, newRequest(http.MethodPost, "/api/v1/cart/items", jsonBody(t, dto.AddCartItemRequest{InventoryID: uuid.New(), Quantity: 1}), nil))
		assert.Equal(t, tt.status, rec.Code)
	}
}
