package handler

import (
	"context"
	"encoding/json"
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

type fakeOrderUsecase struct {
	usecase.OrderUsecase
	createErr error
	status    entity.OrderStatus
	page      entity.Page
	cancelled *dto.CancelOrderRequest
}

func (f *fakeOrderUsecase) Create(_ context.Context, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.OrderResponse{ID: uuid.New()}, nil
}

func (f *fakeOrderUsecase) List(_ context.Context, status entity.OrderStatus, page entity.Page) ([]dto.OrderResponse, int64, error) {
	f.status = status
	f.page = page
	return []dto.OrderResponse{{ID: uuid.New()}}, 45, nil
}

func (f *fakeOrderUsecase) Cancel(_ context.Context, id uuid.UUID, req *dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	f.cancelled = req
	return &dto.OrderResponse{ID: id}, nil
}

func validOrder() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		PharmacyID: uuid.New(),
		Items:      []dto.OrderItemRequest{{InventoryID: uuid.New(), Quantity: 2}},
	}
}

func TestOrderHandler_Create(t *testing.T) {
	h := NewOrderHandler(&fakeOrderUsecase{}, validator.NewValidator())

	rec := serve(h.Create, newRequest(http.MethodPost, "/api/v1/orders", jsonBody(t, validOrder()), nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, i18n.MsgOrderCreated.EN, decodeEnvelope(t, rec).Message)
}

func TestOrderHandler_CreateInsufficientStock(t *testing.T) {
	h := NewOrderHandler(&fakeOrderUsecase{createErr: usecase.ErrInsufficientStock}, validator.NewValidator())

	rec := serve(h.Create, newRequest(http.MethodPost, "/api/v1/orders", jsonBody(t, validOrder()), nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, i18n.MsgInsufficientStock.AR, decodeEnvelope(t, rec).MessageAr)
}

func TestOrderHandler_CreateRejectsZeroQuantity(t *testing.T) {
	h := NewOrderHandler(&fakeOrderUsecase{}, validator.NewValidator())
	req := validOrder()
	req.Items[0].Quantity = 0

	rec := serve(h.Create, newRequest(http.MethodPost, "/api/v1/orders", jsonBody(t, req), nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOrderHandler_ListPaginates(t *testing.T) {
	fake := &fakeOrderUsecase{}
	h := NewOrderHandler(fake, validator.NewValidator())

	rec := serve(h.List, newRequest(http.MethodGet, "/api/v1/orders?status=pending&page=2&per_page=20", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.OrderStatusPending, fake.status)
	assert.Equal(t, entity.Page{Offset: 20, Limit: 20}, fake.page)

	meta := decodeEnvelope(t, rec).Meta
	var total int64
	var hasNext bool
	require.NoError(t, json.Unmarshal(meta["total"], &total))
	require.NoError(t, json.Unmarshal(meta["has_next"], &hasNext))
	assert.Equal(t, int64(45), total)
	assert.True(t, hasNext)
}

func TestOrderHandler_CancelBadID(t *testing.T) {
	fake := &fakeOrderUsecase{}
	h := NewOrderHandler(fake, validator.NewValidator())

	rec := serve(h.Cancel, newRequest(http.MethodPost, "/api/v1/orders/x/cancel", http.NoBody, map[string]string{"id": "x"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fake.cancelled)
}

func TestOrderHandler_CancelWithReason(t *testing.T) {
	fake := &fakeOrderUsecase{}
	h := NewOrderHandler(fake, validator.NewValidator())
	id := uuid.New()

	r := newRequest(http.MethodPost, "/api/v1/orders/"+id.String()+"/cancel",
		jsonBody(t, dto.CancelOrderRequest{Reason: "out of stock"}), map[string]string{"id": id.String()})
	rec := serve(h.Cancel, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fake.cancelled)
	assert.Equal(t, "out of stock", fake.cancelled.Reason)
}
