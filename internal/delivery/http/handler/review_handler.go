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

	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validator.CustomValidator
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
	}
}

// targets reads pharmacy_id and medication_id from the query
func targets(w http.ResponseWriter, r *http.Request) (pharmacyID, medicationID *uuid.UUID, ok bool) {
	if pharmacyID, ok = queryUUID(r, "pharmacy_id"); !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return nil, nil, false
	}
	if medicationID, ok = queryUUID(r, "medication_id"); !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return nil, nil, false
	}
	return pharmacyID, medicationID, true
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	pharmacyID, medicationID, ok := targets(w, r)
	if !ok {
		return
	}

	p := pagination.FromRequest(r)
	filter := entity.ReviewFilter{
		PharmacyID:   pharmacyID,
		MedicationID: medicationID,
		Sort:         entity.ReviewSort(queryString(r, "sort")),
		Page:         pageOf(p),
	}

	reviews, total, err := h.reviewUsecase.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgReviewsRetrieved, reviews, p, total)
}

func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	pharmacyID, medicationID, ok := targets(w, r)
	if !ok {
		return
	}

	stats, err := h.reviewUsecase.Stats(r.Context(), pharmacyID, medicationID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgReviewStats, stats)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	review, err := h.reviewUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgReviewRetrieved, review)
}

func (h *ReviewHandler) MyReviews(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	reviews, total, err := h.reviewUsecase.MyReviews(r.Context(), pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgReviewsRetrieved, reviews, p, total)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReviewRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	review, err := h.reviewUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgReviewCreated, review)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	review, err := h.reviewUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgReviewUpdated, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reviewUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgReviewDeleted, nil)
}

func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	review, err := h.reviewUsecase.MarkHelpful(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgHelpfulRecorded, review)
}

func (h *ReviewHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.ReviewResponseRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	review, err := h.reviewUsecase.Respond(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgResponseRecorded, review)
}
