package handler

import (
	"net/http"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/validator"
)

// InventoryHandler serves the authenticated pharmacy's own stock
type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
	validator        *validator.CustomValidator
}

func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase, validator *validator.CustomValidator) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
		validator:        validator,
	}
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := queryUUID(r, "category_id")
	if !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}

	p := pagination.FromRequest(r)
	filter := entity.InventoryFilter{
		Query:      queryString(r, "q"),
		CategoryID: categoryID,
		LowStock:   queryBool(r, "low_stock"),
		Expired:    queryBool(r, "expired"),
		Available:  queryBool(r, "available"),
		Page:       pageOf(p),
	}

	items, total, err := h.inventoryUsecase.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgInventoryRetrieved, items, p, total)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.inventoryUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgInventoryRetrieved, item)
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInventoryRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	item, err := h.inventoryUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgInventoryCreated, item)
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateInventoryRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	item, err := h.inventoryUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgInventoryUpdated, item)
}

func (h *InventoryHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.StockUpdateRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	item, err := h.inventoryUsecase.UpdateStock(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgStockUpdated, item)
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.inventoryUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgInventoryDeleted, nil)
}
