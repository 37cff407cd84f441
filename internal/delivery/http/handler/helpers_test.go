package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dawaksahl-api/internal/delivery/http/middleware"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success   bool                       `json:"success"`
	Message   string                     `json:"message"`
	MessageAr string                     `json:"message_ar"`
	Data      json.RawMessage            `json:"data"`
	Errors    map[string][]string        `json:"errors"`
	Meta      map[string]json.RawMessage `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

// newRequest builds a request as a patient with the given route variables
func newRequest(method, target string, body io.Reader, vars map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	r.Header.Set("Content-Type", "application/json")
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	ctx := middleware.WithClaims(r.Context(), uuid.New(), "patient@example.com", entity.RoleIDPatient, "token-id")
	return r.WithContext(ctx)
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func TestDecodeJSON_Malformed(t *testing.T) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/", jsonBody(t, `{"name":`), nil)

	ok := decodeJSON(rec, r, validator.NewValidator(), &req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecodeJSON_EmptyBodyReportsFields(t *testing.T) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/", http.NoBody, nil)

	ok := decodeJSON(rec, r, validator.NewValidator(), &req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Errors, "name")
}

func TestPathID_Invalid(t *testing.T) {
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/", nil, map[string]string{"id": "not-a-uuid"})

	_, ok := pathID(rec, r, "id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryHelpers(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/?flag=true&bad=maybe&id="+id.String()+"&broken=xyz", nil)

	assert.True(t, *queryBool(r, "flag"))
	assert.Nil(t, queryBool(r, "bad"))
	assert.Nil(t, queryBool(r, "missing"))

	got, ok := queryUUID(r, "id")
	assert.True(t, ok)
	assert.Equal(t, id, *got)

	_, ok = queryUUID(r, "broken")
	assert.False(t, ok)

	got, ok = queryUUID(r, "missing")
	assert.True(t, ok)
	assert.Nil(t, got)
}
