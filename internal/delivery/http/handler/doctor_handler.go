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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorProfileUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorProfileUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)
	filter := entity.DoctorFilter{
		Query:     queryString(r, "q"),
		Specialty: queryString(r, "specialty"),
		Page:      pageOf(p),
	}

	doctors, total, err := h.doctorUsecase.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgDoctorsRetrieved, doctors, p, total)
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgDoctorRetrieved, doctor)
}

func (h *DoctorHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.GetOwnProfile(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgDoctorRetrieved, doctor)
}

func (h *DoctorHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDoctorRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.UpdateOwnProfile(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgDoctorUpdated, doctor)
}

func (h *DoctorHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.VerifyDoctorRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.Verify(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgDoctorVerification, doctor)
}
