package handler

import (
	"net/http"

	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
	"dawaksahl-api/pkg/response"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

type countResponse struct {
	Count int64 `json:"count"`
}

type updatedResponse struct {
	Updated int64 `json:"updated"`
}

type deletedResponse struct {
	Deleted int64 `json:"deleted"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)
	unreadOnly := queryBool(r, "unread_only")
	notificationType := entity.NotificationType(queryString(r, "type"))

	notifications, total, err := h.notificationUsecase.List(r.Context(), unreadOnly != nil && *unreadOnly, notificationType, pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgNotificationsRetrieved, notifications, p, total)
}

func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	notification, err := h.notificationUsecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgNotificationRetrieved, notification)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationUsecase.MarkRead(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgNotificationRead, nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.notificationUsecase.MarkAllRead(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgNotificationsAllRead, updatedResponse{Updated: updated})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgNotificationDeleted, nil)
}

func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.notificationUsecase.ClearAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgNotificationsCleared, deletedResponse{Deleted: deleted})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationUsecase.UnreadCount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgUnreadCount, countResponse{Count: count})
}
