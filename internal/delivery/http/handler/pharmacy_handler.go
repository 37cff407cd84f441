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

type PharmacyHandler struct {
	pharmacyUsecase usecase.PharmacyUsecase
	validator       *validator.CustomValidator
}

func NewPharmacyHandler(pharmacyUsecase usecase.PharmacyUsecase, validator *validator.CustomValidator) *PharmacyHandler {
	return &PharmacyHandler{
		pharmacyUsecase: pharmacyUsecase,
		validator:       validator,
	}
}

func (h *PharmacyHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)
	filter := entity.PharmacyFilter{
		Query:       queryString(r, "q"),
		City:        queryString(r, "city"),
		Is24Hours:   queryBool(r, "is_24_hours"),
		HasDelivery: queryBool(r, "has_delivery"),
		Page:        pageOf(p),
	}

	pharmacies, total, err := h.pharmacyUsecase.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgPharmaciesRetrieved, pharmacies, p, total)
}

func (h *PharmacyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	pharmacy, err := h.pharmacyUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgPharmacyRetrieved, pharmacy)
}

// ListInventory is the public storefront: sellable items only
func (h *PharmacyHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	categoryID, ok := queryUUID(r, "category_id")
	if !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}

	p := pagination.FromRequest(r)
	filter := entity.InventoryFilter{
		Query:      queryString(r, "q"),
		CategoryID: categoryID,
		Page:       pageOf(p),
	}

	items, total, err := h.pharmacyUsecase.ListInventory(r.Context(), id, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgInventoryRetrieved, items, p, total)
}

func (h *PharmacyHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.pharmacyUsecase.GetOwnProfile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgPharmacyRetrieved, pharmacy)
}

func (h *PharmacyHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePharmacyRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	pharmacy, err := h.pharmacyUsecase.UpdateOwnProfile(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgPharmacyUpdated, pharmacy)
}

func (h *PharmacyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.pharmacyUsecase.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgPharmacyStats, stats)
}

// AdminList lists every pharmacy, optionally narrowed by ?status=
func (h *PharmacyHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)
	filter := entity.PharmacyFilter{
		Query:  queryString(r, "q"),
		City:   queryString(r, "city"),
		Status: entity.VerificationStatus(queryString(r, "status")),
		Page:   pageOf(p),
	}

	pharmacies, total, err := h.pharmacyUsecase.AdminList(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgPharmaciesRetrieved, pharmacies, p, total)
}

func (h *PharmacyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.VerifyPharmacyRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	pharmacy, err := h.pharmacyUsecase.Verify(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgPharmacyVerification, pharmacy)
}
