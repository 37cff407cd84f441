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

type fakeAppointmentUsecase struct {
	usecase.AppointmentUsecase
	doctorID  uuid.UUID
	query     dto.SlotQuery
	booked    *dto.BookAppointmentRequest
	cancelErr error
}

func (f *fakeAppointmentUsecase) AvailableSlots(_ context.Context, doctorID uuid.UUID, query dto.SlotQuery) (*dto.AvailableSlotsResponse, error) {
	f.doctorID = doctorID
	f.query = query
	return &dto.AvailableSlotsResponse{DoctorID: doctorID}, nil
}

func (f *fakeAppointmentUsecase) Book(_ context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	f.booked = req
	return &dto.AppointmentResponse{ID: uuid.New()}, nil
}

func (f *fakeAppointmentUsecase) Cancel(_ context.Context, id uuid.UUID, _ *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &dto.AppointmentResponse{ID: id}, nil
}

func TestAppointmentHandler_AvailableSlotsNeedsDoctor(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	rec := serve(h.AvailableSlots, newRequest(http.MethodGet, "/api/v1/time-slots/available", nil, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uuid.Nil, fake.doctorID)

	doctorID := uuid.New()
	rec = serve(h.AvailableSlots, newRequest(http.MethodGet, "/api/v1/time-slots/available?doctor_id="+doctorID.String()+"&date_from=2026-11-01&consultation_mode=video_call", nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doctorID, fake.doctorID)
	assert.Equal(t, dto.SlotQuery{DateFrom: "2026-11-01", ConsultationMode: "video_call"}, fake.query)
}

func TestAppointmentHandler_BookValidates(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	rec := serve(h.Book, newRequest(http.MethodPost, "/api/v1/appointments", jsonBody(t, dto.BookAppointmentRequest{TimeSlotID: uuid.New(), AppointmentType: "surgery"}), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeEnvelope(t, rec).Errors
	assert.Contains(t, errs, "chief_complaint")
	assert.Contains(t, errs, "appointment_type")
	assert.Nil(t, fake.booked)

	rec = serve(h.Book, newRequest(http.MethodPost, "/api/v1/appointments", jsonBody(t, dto.BookAppointmentRequest{TimeSlotID: uuid.New(), ChiefComplaint: "Persistent cough"}), nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, i18n.MsgAppointmentBooked.EN, decodeEnvelope(t, rec).Message)
}

func TestAppointmentHandler_CancelErrors(t *testing.T) {
	id := map[string]string{"id": uuid.New().String()}
	tests := []struct {
		err     error
		status  int
		message i18n.Message
	}{
		{nil, http.StatusOK, i18n.MsgAppointmentCancelled},
		{usecase.ErrCancellationDeadline, http.StatusUnprocessableEntity, i18n.MsgAppointmentDeadline},
		{usecase.ErrInvalidTransition, http.StatusUnprocessableEntity, i18n.MsgInvalidTransition},
		{usecase.ErrAppointmentNotFound, http.StatusNotFound, i18n.MsgAppointmentNotFound},
	}
	for _, tt := range tests {
		h := NewAppointmentHandler(&fakeAppointmentUsecase{cancelErr: tt.err}, validator.NewValidator())
		rec := serve(h.Cancel, newRequest(http.MethodPost, "/", http.NoBody, id))
		assert.Equal(t, tt.status, rec.Code)
		assert.Equal(t, tt.message.EN, decodeEnvelope(t, rec).Message)
	}
}
