package handler

import (
	"net/http"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/validator"
)

type CartHandler struct {
	cartUsecase usecase.CartUsecase
	validator   *validator.CustomValidator
}

func NewCartHandler(cartUsecase usecase.CartUsecase, validator *validator.CustomValidator) *CartHandler {
	return &CartHandler{
		cartUsecase: cartUsecase,
		validator:   validator,
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgCartRetrieved, cart)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	cart, err := h.cartUsecase.Add(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgCartItemAdded, cart)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	cart, err := h.cartUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	message := i18n.MsgCartItemUpdated
	if *req.Quantity == 0 {
		message = i18n.MsgCartItemRemoved
	}
	response.Success(w, http.StatusOK, message, cart)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	cart, err := h.cartUsecase.Remove(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgCartItemRemoved, cart)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartUsecase.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgCartCleared, nil)
}
