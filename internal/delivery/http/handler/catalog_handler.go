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

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgCategoriesRetrieved, categories)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	category, err := h.catalogUsecase.CreateCategory(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgCategoryCreated, category)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	category, err := h.catalogUsecase.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgCategoryUpdated, category)
}

func (h *CatalogHandler) ListMedications(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := queryUUID(r, "category_id")
	if !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}

	p := pagination.FromRequest(r)
	filter := entity.MedicationFilter{
		Query:                queryString(r, "q"),
		CategoryID:           categoryID,
		RequiresPrescription: queryBool(r, "requires_prescription"),
		Page:                 pageOf(p),
	}

	medications, total, err := h.catalogUsecase.ListMedications(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgMedicationsRetrieved, medications, p, total)
}

func (h *CatalogHandler) GetMedication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	medication, err := h.catalogUsecase.GetMedication(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMedicationRetrieved, medication)
}

// ListOffers returns the verified pharmacies stocking a medication, cheapest first
func (h *CatalogHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p := pagination.FromRequest(r)
	offers, total, err := h.catalogUsecase.ListOffers(r.Context(), id, pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgPharmaciesRetrieved, offers, p, total)
}

func (h *CatalogHandler) CreateMedication(w http.ResponseWriter, r *http.Request) {
	var req dto.MedicationRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	medication, err := h.catalogUsecase.CreateMedication(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgMedicationCreated, medication)
}

func (h *CatalogHandler) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.MedicationRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	medication, err := h.catalogUsecase.UpdateMedication(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMedicationUpdated, medication)
}

// DeleteMedication deactivates the medication; rows are kept for order history
func (h *CatalogHandler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogUsecase.DeleteMedication(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMedicationDeleted, nil)
}
