package response

import (
	"encoding/json"
	"net/http"

	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
)

type Response struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	MessageAr string              `json:"message_ar"`
	Data      interface{}         `json:"data,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Meta      *pagination.Meta    `json:"meta,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message i18n.Message, data interface{}) {
	JSON(w, statusCode, Response{
		Success:   true,
		Message:   message.EN,
		MessageAr: message.AR,
		Data:      data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, statusCode int, message i18n.Message, data interface{}, meta *pagination.Meta) {
	JSON(w, statusCode, Response{
		Success:   true,
		Message:   message.EN,
		MessageAr: message.AR,
		Data:      data,
		Meta:      meta,
	})
}

func Error(w http.ResponseWriter, statusCode int, message i18n.Message, errors map[string][]string) {
	JSON(w, statusCode, Response{
		Success:   false,
		Message:   message.EN,
		MessageAr: message.AR,
		Errors:    errors,
	})
}

func ValidationError(w http.ResponseWriter, errors map[string][]string) {
	Error(w, http.StatusUnprocessableEntity, i18n.MsgValidationError, errors)
}

func BadRequest(w http.ResponseWriter, message i18n.Message) {
	Error(w, http.StatusBadRequest, orDefault(message, i18n.MsgBadRequest), nil)
}

func Unauthorized(w http.ResponseWriter, message i18n.Message) {
	Error(w, http.StatusUnauthorized, orDefault(message, i18n.MsgUnauthorized), nil)
}

func Forbidden(w http.ResponseWriter, message i18n.Message) {
	Error(w, http.StatusForbidden, orDefault(message, i18n.MsgForbidden), nil)
}

func NotFound(w http.ResponseWriter, message i18n.Message) {
	Error(w, http.StatusNotFound, orDefault(message, i18n.MsgNotFound), nil)
}

func Conflict(w http.ResponseWriter, message i18n.Message) {
	Error(w, http.StatusConflict, orDefault(message, i18n.MsgConflict), nil)
}

func PayloadTooLarge(w http.ResponseWriter, message i18n.Message) {
	Error(w, http.StatusRequestEntityTooLarge, orDefault(message, i18n.MsgFileTooLarge), nil)
}

func UnprocessableEntity(w http.ResponseWriter, message i18n.Message) {
	Error(w, http.StatusUnprocessableEntity, orDefault(message, i18n.MsgUnprocessable), nil)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, i18n.MsgRateLimited, nil)
}

func InternalServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, i18n.MsgInternalError, nil)
}

func orDefault(message, fallback i18n.Message) i18n.Message {
	if message.EN == "" {
		return fallback
	}
	return message
}
