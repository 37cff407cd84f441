package handler

import (
	"net/http"
	"strconv"

	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
	"dawaksahl-api/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// auditQuery reads ?action, ?user_id, ?entity, ?from and ?to
func auditQuery(w http.ResponseWriter, r *http.Request) (dto.AuditLogQuery, bool) {
	userID, ok := queryUUID(r, "user_id")
	if !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return dto.AuditLogQuery{}, false
	}
	return dto.AuditLogQuery{
		Action: queryString(r, "action"),
		UserID: userID,
		Entity: queryString(r, "entity"),
		From:   queryString(r, "from"),
		To:     queryString(r, "to"),
	}, true
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	query, ok := auditQuery(w, r)
	if !ok {
		return
	}

	p := pagination.FromRequest(r)
	entries, total, err := h.auditLogUsecase.List(r.Context(), query, pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgAuditLogsRetrieved, entries, p, total)
}

func (h *AuditLogHandler) Summary(w http.ResponseWriter, r *http.Request) {
	query, ok := auditQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.auditLogUsecase.Summary(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAuditLogSummary, summary)
}

// Get takes the numeric id; audit entries use a bigserial key
func (h *AuditLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}

	entry, err := h.auditLogUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgAuditLogRetrieved, entry)
}
