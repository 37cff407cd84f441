package handler

import (
	"errors"
	"net/http"

	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/upload"
)

// writeError maps usecase sentinels onto the bilingual envelope. Anything unknown is a 500
// without details; the usecase has already logged it.
func writeError(w http.ResponseWriter, err error) {
	switch {
	// 400
	case errors.Is(err, usecase.ErrInvalidDateFormat):
		response.BadRequest(w, i18n.MsgInvalidDate)
	case errors.Is(err, usecase.ErrInvalidDateRange):
		response.BadRequest(w, i18n.MsgInvalidDateRange)
	case errors.Is(err, usecase.ErrInvalidTimeFormat):
		response.BadRequest(w, i18n.MsgInvalidTime)
	case errors.Is(err, usecase.ErrFavoriteType):
		response.BadRequest(w, i18n.MsgFavoriteType)
	case errors.Is(err, upload.ErrMissingFile):
		response.BadRequest(w, i18n.MsgFileRequired)
	case errors.Is(err, upload.ErrMalformedMultipart):
		response.BadRequest(w, i18n.MsgInvalidRequestBody)

	// 401
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, i18n.MsgUnauthorized)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, i18n.MsgInvalidCredentials)
	case errors.Is(err, usecase.ErrInvalidToken):
		response.Unauthorized(w, i18n.MsgTokenInvalid)
	case errors.Is(err, usecase.ErrTokenRevoked):
		response.Unauthorized(w, i18n.MsgTokenRevoked)

	// 403
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, i18n.MsgForbidden)
	case errors.Is(err, usecase.ErrAccountDisabled):
		response.Forbidden(w, i18n.MsgAccountDisabled)
	case errors.Is(err, usecase.ErrPatientsOnly):
		response.Forbidden(w, i18n.MsgPatientsOnly)
	case errors.Is(err, usecase.ErrPharmacyNotVerified):
		response.Forbidden(w, i18n.MsgPharmacyNotVerified)

	// 404
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, i18n.MsgUserNotFound)
	case errors.Is(err, usecase.ErrAddressNotFound):
		response.NotFound(w, i18n.MsgAddressNotFound)
	case errors.Is(err, usecase.ErrPharmacyNotFound):
		response.NotFound(w, i18n.MsgPharmacyNotFound)
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, i18n.MsgDoctorNotFound)
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, i18n.MsgPatientNotFound)
	case errors.Is(err, usecase.ErrCategoryNotFound):
		response.NotFound(w, i18n.MsgCategoryNotFound)
	case errors.Is(err, usecase.ErrMedicationNotFound):
		response.NotFound(w, i18n.MsgMedicationNotFound)
	case errors.Is(err, usecase.ErrInventoryNotFound):
		response.NotFound(w, i18n.MsgInventoryNotFound)
	case errors.Is(err, usecase.ErrPrescriptionNotFound):
		response.NotFound(w, i18n.MsgPrescriptionNotFound)
	case errors.Is(err, usecase.ErrPrescriptionNoImage):
		response.NotFound(w, i18n.MsgPrescriptionNoImage)
	case errors.Is(err, usecase.ErrOrderNotFound):
		response.NotFound(w, i18n.MsgOrderNotFound)
	case errors.Is(err, usecase.ErrConversationNotFound):
		response.NotFound(w, i18n.MsgConversationNotFound)
	case errors.Is(err, usecase.ErrMessageNotFound):
		response.NotFound(w, i18n.MsgMessageNotFound)
	case errors.Is(err, usecase.ErrNotificationNotFound):
		response.NotFound(w, i18n.MsgNotificationNotFound)
	case errors.Is(err, usecase.ErrReviewNotFound):
		response.NotFound(w, i18n.MsgReviewNotFound)
	case errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, i18n.MsgAuditLogNotFound)
	case errors.Is(err, usecase.ErrTimeSlotNotFound):
		response.NotFound(w, i18n.MsgTimeSlotNotFound)
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, i18n.MsgAppointmentNotFound)
	case errors.Is(err, usecase.ErrFavoriteNotFound):
		response.NotFound(w, i18n.MsgFavoriteNotFound)
	case errors.Is(err, usecase.ErrCartItemNotFound):
		response.NotFound(w, i18n.MsgCartItemNotFound)

	// 409
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Conflict(w, i18n.MsgEmailExists)
	case errors.Is(err, usecase.ErrLicenseAlreadyExists):
		response.Conflict(w, i18n.MsgLicenseExists)
	case errors.Is(err, usecase.ErrBarcodeExists):
		response.Conflict(w, i18n.MsgBarcodeExists)
	case errors.Is(err, usecase.ErrInventoryExists):
		response.Conflict(w, i18n.MsgInventoryExists)
	case errors.Is(err, usecase.ErrInsufficientStock):
		response.Conflict(w, i18n.MsgInsufficientStock)
	case errors.Is(err, usecase.ErrReviewExists):
		response.Conflict(w, i18n.MsgReviewExists)
	case errors.Is(err, usecase.ErrHelpfulDuplicate):
		response.Conflict(w, i18n.MsgHelpfulDuplicate)
	case errors.Is(err, usecase.ErrResponseDuplicate):
		response.Conflict(w, i18n.MsgResponseDuplicate)
	case errors.Is(err, usecase.ErrTimeSlotExists):
		response.Conflict(w, i18n.MsgTimeSlotExists)
	case errors.Is(err, usecase.ErrTimeSlotInUse):
		response.Conflict(w, i18n.MsgTimeSlotBooked)
	case errors.Is(err, usecase.ErrTimeSlotUnavailable):
		response.Conflict(w, i18n.MsgTimeSlotUnavailable)
	case errors.Is(err, usecase.ErrAlreadyBooked):
		response.Conflict(w, i18n.MsgAppointmentExists)
	case errors.Is(err, usecase.ErrFavoriteExists):
		response.Conflict(w, i18n.MsgFavoriteExists)

	// 413
	case errors.Is(err, upload.ErrFileTooLarge):
		response.PayloadTooLarge(w, i18n.MsgFileTooLarge)

	// 422
	case errors.Is(err, upload.ErrUnsupportedType):
		response.UnprocessableEntity(w, i18n.MsgUnsupportedFileType)
	case errors.Is(err, usecase.ErrWrongPassword):
		response.UnprocessableEntity(w, i18n.MsgWrongPassword)
	case errors.Is(err, usecase.ErrInvalidTransition):
		response.UnprocessableEntity(w, i18n.MsgInvalidTransition)
	case errors.Is(err, usecase.ErrInvalidStock):
		response.UnprocessableEntity(w, i18n.MsgInvalidStock)
	case errors.Is(err, usecase.ErrOrderNotCancellable):
		response.UnprocessableEntity(w, i18n.MsgOrderNotCancellable)
	case errors.Is(err, usecase.ErrDeliveryUnavailable):
		response.UnprocessableEntity(w, i18n.MsgDeliveryUnavailable)
	case errors.Is(err, usecase.ErrDeliveryAddressNeeded):
		response.UnprocessableEntity(w, i18n.MsgDeliveryAddressNeeded)
	case errors.Is(err, usecase.ErrItemUnavailable):
		response.UnprocessableEntity(w, i18n.MsgItemUnavailable)
	case errors.Is(err, usecase.ErrPrescriptionRequired):
		response.UnprocessableEntity(w, i18n.MsgPrescriptionRequired)
	case errors.Is(err, usecase.ErrPrescriptionNotUsable):
		response.UnprocessableEntity(w, i18n.MsgPrescriptionNotUsable)
	case errors.Is(err, usecase.ErrPrescriptionExpiryInvalid):
		response.UnprocessableEntity(w, i18n.MsgPrescriptionExpiryInvalid)
	case errors.Is(err, usecase.ErrReasonRequired):
		response.UnprocessableEntity(w, i18n.MsgReasonRequired)
	case errors.Is(err, usecase.ErrConversationSelf):
		response.UnprocessableEntity(w, i18n.MsgConversationSelf)
	case errors.Is(err, usecase.ErrMessageTooLong):
		response.UnprocessableEntity(w, i18n.MsgMessageTooLong)
	case errors.Is(err, usecase.ErrMessageEmpty):
		response.UnprocessableEntity(w, i18n.MsgMessageEmpty)
	case errors.Is(err, usecase.ErrReviewTarget):
		response.UnprocessableEntity(w, i18n.MsgReviewTarget)
	case errors.Is(err, usecase.ErrHelpfulOwnReview):
		response.UnprocessableEntity(w, i18n.MsgHelpfulOwnReview)
	case errors.Is(err, usecase.ErrTimeSlotInvalid):
		response.UnprocessableEntity(w, i18n.MsgTimeSlotInvalid)
	case errors.Is(err, usecase.ErrCancellationDeadline):
		response.UnprocessableEntity(w, i18n.MsgAppointmentDeadline)
	case errors.Is(err, usecase.ErrRescheduleLimit):
		response.UnprocessableEntity(w, i18n.MsgAppointmentRescheduleMax)

	default:
		response.InternalServerError(w)
	}
}
