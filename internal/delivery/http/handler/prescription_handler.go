package handler

import (
	"context"
	"net/http"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/upload"
	"dawaksahl-api/pkg/validator"

	"github.com/google/uuid"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
	policy              upload.Policy
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator, uploads config.UploadConfig) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
		policy:              upload.PrescriptionPolicy(uploads.MaxPrescriptionSize),
	}
}

// Upload takes a multipart form: the scan in "image" plus optional pharmacy_id, doctor_id,
// prescription_type, notes and expiry_date fields.
func (h *PrescriptionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(w, r, h.policy); err != nil {
		writeError(w, err)
		return
	}

	req := dto.UploadPrescriptionRequest{
		PrescriptionType: r.FormValue("prescription_type"),
		Notes:            r.FormValue("notes"),
		ExpiryDate:       r.FormValue("expiry_date"),
	}
	var ok bool
	if req.PharmacyID, ok = formUUID(r, "pharmacy_id"); !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}
	if req.DoctorID, ok = formUUID(r, "doctor_id"); !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}
	if !validate(w, r, h.validator, &req) {
		return
	}

	file, err := upload.ReadFile(r, "image", h.policy)
	if err != nil {
		writeError(w, err)
		return
	}

	prescription, err := h.prescriptionUsecase.Upload(r.Context(), &req, file)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgPrescriptionUploaded, prescription)
}

func (h *PrescriptionHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req dto.IssuePrescriptionRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescriptionUsecase.Issue(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgPrescriptionIssued, prescription)
}

func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)
	status := entity.PrescriptionStatus(queryString(r, "status"))

	prescriptions, total, err := h.prescriptionUsecase.List(r.Context(), status, pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgPrescriptionsRetrieved, prescriptions, p, total)
}

func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	prescription, err := h.prescriptionUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgPrescriptionRetrieved, prescription)
}

// Image streams the uploaded scan to whoever may read the prescription
func (h *PrescriptionHandler) Image(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	file, err := h.prescriptionUsecase.Image(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("Content-Disposition", `inline; filename="`+file.Name+`"`)
	http.ServeContent(w, r, file.Name, file.ModTime, file)
}

func (h *PrescriptionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.prescriptionUsecase.Verify, i18n.MsgPrescriptionVerified)
}

func (h *PrescriptionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.prescriptionUsecase.Reject, i18n.MsgPrescriptionRejected)
}

type reviewFunc func(ctx context.Context, id uuid.UUID, req *dto.PrescriptionVerificationRequest) (*dto.PrescriptionResponse, error)

func (h *PrescriptionHandler) review(w http.ResponseWriter, r *http.Request, decide reviewFunc, message i18n.Message) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.PrescriptionVerificationRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	prescription, err := decide(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, prescription)
}

func (h *PrescriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	prescription, err := h.prescriptionUsecase.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgPrescriptionCancelled, prescription)
}

func formUUID(r *http.Request, key string) (*uuid.UUID, bool) {
	raw := r.FormValue(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}
