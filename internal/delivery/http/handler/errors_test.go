package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/upload"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message i18n.Message
	}{
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized, i18n.MsgInvalidCredentials},
		{usecase.ErrTokenRevoked, http.StatusUnauthorized, i18n.MsgTokenRevoked},
		{usecase.ErrAccountDisabled, http.StatusForbidden, i18n.MsgAccountDisabled},
		{usecase.ErrPatientsOnly, http.StatusForbidden, i18n.MsgPatientsOnly},
		{usecase.ErrPharmacyNotVerified, http.StatusForbidden, i18n.MsgPharmacyNotVerified},
		{usecase.ErrOrderNotFound, http.StatusNotFound, i18n.MsgOrderNotFound},
		{usecase.ErrConversationNotFound, http.StatusNotFound, i18n.MsgConversationNotFound},
		{usecase.ErrEmailAlreadyExists, http.StatusConflict, i18n.MsgEmailExists},
		{usecase.ErrInsufficientStock, http.StatusConflict, i18n.MsgInsufficientStock},
		{usecase.ErrHelpfulDuplicate, http.StatusConflict, i18n.MsgHelpfulDuplicate},
		{upload.ErrFileTooLarge, http.StatusRequestEntityTooLarge, i18n.MsgFileTooLarge},
		{upload.ErrUnsupportedType, http.StatusUnprocessableEntity, i18n.MsgUnsupportedFileType},
		{upload.ErrMissingFile, http.StatusBadRequest, i18n.MsgFileRequired},
		{usecase.ErrInvalidTransition, http.StatusUnprocessableEntity, i18n.MsgInvalidTransition},
		{usecase.ErrHelpfulOwnReview, http.StatusUnprocessableEntity, i18n.MsgHelpfulOwnReview},
		{usecase.ErrConversationSelf, http.StatusUnprocessableEntity, i18n.MsgConversationSelf},
		{usecase.ErrMessageTooLong, http.StatusUnprocessableEntity, i18n.MsgMessageTooLong},
		{usecase.ErrInvalidStock, http.StatusUnprocessableEntity, i18n.MsgInvalidStock},
		{usecase.ErrReasonRequired, http.StatusUnprocessableEntity, i18n.MsgReasonRequired},
		{usecase.ErrInvalidDateFormat, http.StatusBadRequest, i18n.MsgInvalidDate},
		{usecase.ErrInvalidTimeFormat, http.StatusBadRequest, i18n.MsgInvalidTime},
		{usecase.ErrAppointmentNotFound, http.StatusNotFound, i18n.MsgAppointmentNotFound},
		{usecase.ErrTimeSlotUnavailable, http.StatusConflict, i18n.MsgTimeSlotUnavailable},
		{usecase.ErrTimeSlotInUse, http.StatusConflict, i18n.MsgTimeSlotBooked},
		{usecase.ErrCancellationDeadline, http.StatusUnprocessableEntity, i18n.MsgAppointmentDeadline},
		{usecase.ErrRescheduleLimit, http.StatusUnprocessableEntity, i18n.MsgAppointmentRescheduleMax},
		{usecase.ErrFavoriteExists, http.StatusConflict, i18n.MsgFavoriteExists},
		{usecase.ErrCartItemNotFound, http.StatusNotFound, i18n.MsgCartItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message.EN, body.Message)
			assert.Equal(t, tt.message.AR, body.MessageAr)
		})
	}
}

func TestWriteError_WrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("create order: %w", usecase.ErrInsufficientStock))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestWriteError_UnknownIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, i18n.MsgInternalError.EN, body.Message)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
