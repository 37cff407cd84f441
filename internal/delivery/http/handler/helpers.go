package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// decodeJSON reads and validates the body into req. It writes the error response and
// returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	// An empty body decodes as {} so that required fields surface as validation errors
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, i18n.MsgInvalidRequestBody)
		return false
	}
	return validate(w, r, v, req)
}

func validate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err, i18n.FromContext(r.Context())))
		return false
	}
	return true
}

// pathID parses a uuid route variable, answering 400 when it is malformed
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, i18n.MsgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func pageOf(p pagination.Params) entity.Page {
	return entity.Page{Offset: p.Offset(), Limit: p.Limit()}
}

func writePage(w http.ResponseWriter, message i18n.Message, data interface{}, p pagination.Params, total int64) {
	response.SuccessWithMeta(w, http.StatusOK, message, data, pagination.NewMeta(p, total))
}

// queryBool returns nil when the parameter is absent or not a boolean
func queryBool(r *http.Request, key string) *bool {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

// queryUUID reports ok=false when the parameter is present but malformed
func queryUUID(r *http.Request, key string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func queryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
