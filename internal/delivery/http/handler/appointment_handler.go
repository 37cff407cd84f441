package handler

import (
	"net/http"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/validator"

	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func slotQuery(r *http.Request) dto.SlotQuery {
	return dto.SlotQuery{
		DateFrom:         queryString(r, "date_from"),
		DateTo:           queryString(r, "date_to"),
		ConsultationMode: queryString(r, "consultation_mode"),
	}
}

func (h *AppointmentHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTimeSlotRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	slot, err := h.appointmentUsecase.CreateSlot(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgTimeSlotCreated, slot)
}

func (h *AppointmentHandler) MySlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.appointmentUsecase.MySlots(r.Context(), slotQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgTimeSlotsRetrieved, slots)
}

func (h *AppointmentHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.DeleteSlot(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgTimeSlotDeleted, nil)
}

// AvailableSlots requires doctor_id in the query
func (h *AppointmentHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := queryUUID(r, "doctor_id")
	if !ok || doctorID == nil {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}

	slots, err := h.appointmentUsecase.AvailableSlots(r.Context(), *doctorID, slotQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgTimeSlotsRetrieved, slots)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgAppointmentBooked, appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)
	query := dto.AppointmentQuery{
		Status:   queryString(r, "status"),
		DateFrom: queryString(r, "date_from"),
		DateTo:   queryString(r, "date_to"),
	}

	appointments, total, err := h.appointmentUsecase.List(r.Context(), query, pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgAppointmentsRetrieved, appointments, p, total)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAppointmentRetrieved, appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.CancelAppointmentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAppointmentCancelled, appointment)
}

func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.RescheduleAppointmentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAppointmentRescheduled, appointment)
}

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, apply func(id uuid.UUID) (*dto.AppointmentResponse, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	appointment, err := apply(id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAppointmentUpdated, appointment)
}

func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(id uuid.UUID) (*dto.AppointmentResponse, error) {
		return h.appointmentUsecase.Confirm(r.Context(), id)
	})
}

func (h *AppointmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(id uuid.UUID) (*dto.AppointmentResponse, error) {
		return h.appointmentUsecase.Start(r.Context(), id)
	})
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req dto.CompleteAppointmentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	h.transition(w, r, func(id uuid.UUID) (*dto.AppointmentResponse, error) {
		return h.appointmentUsecase.Complete(r.Context(), id, &req)
	})
}

func (h *AppointmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.appointmentUsecase.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAppointmentStats, stats)
}
