package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, i18n.MsgOrderCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, i18n.MsgOrderCreated.EN, body["message"])
	assert.Equal(t, i18n.MsgOrderCreated.AR, body["message_ar"])
	assert.NotContains(t, body, "errors")
	assert.NotContains(t, body, "meta")
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	meta := pagination.NewMeta(pagination.New(2, 10), 25)
	SuccessWithMeta(rec, http.StatusOK, i18n.MsgSuccess, []int{1, 2}, meta)

	body := decode(t, rec)
	m := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(25), m["total"])
	assert.Equal(t, float64(3), m["pages"])
	assert.Equal(t, true, m["has_prev"])
	assert.Equal(t, true, m["has_next"])
}

func TestErrorHelpersAreBilingual(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, i18n.Message{}) }, http.StatusBadRequest},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, i18n.MsgTokenExpired) }, http.StatusUnauthorized},
		{"forbidden", func(w http.ResponseWriter) { Forbidden(w, i18n.Message{}) }, http.StatusForbidden},
		{"not found", func(w http.ResponseWriter) { NotFound(w, i18n.MsgOrderNotFound) }, http.StatusNotFound},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, i18n.MsgEmailExists) }, http.StatusConflict},
		{"too large", func(w http.ResponseWriter) { PayloadTooLarge(w, i18n.Message{}) }, http.StatusRequestEntityTooLarge},
		{"unprocessable", func(w http.ResponseWriter) { UnprocessableEntity(w, i18n.MsgUnsupportedFileType) }, http.StatusUnprocessableEntity},
		{"rate limited", func(w http.ResponseWriter) { TooManyRequests(w) }, http.StatusTooManyRequests},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w) }, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["message"])
			assert.NotEmpty(t, body["message_ar"])
		})
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string][]string{"email": {"email is required"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, i18n.MsgValidationError.AR, body["message_ar"])
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"email is required"}, errs["email"])
}
