package handler

import (
	"net/http"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/pagination"
	"dawaksahl-api/pkg/response"
	"dawaksahl-api/pkg/upload"
	"dawaksahl-api/pkg/validator"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
	policy      upload.Policy
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator, uploads config.UploadConfig) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
		policy:      upload.ChatAttachmentPolicy(uploads.MaxChatFileSize),
	}
}

// CreateConversation answers 201 for a new conversation and 200 when an existing one is reused
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateConversationRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	conversation, created, err := h.chatUsecase.CreateConversation(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(w, status, i18n.MsgConversationCreated, conversation)
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	p := pagination.FromRequest(r)

	conversations, total, err := h.chatUsecase.ListConversations(r.Context(), pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgConversationsRetrieved, conversations, p, total)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p := pagination.FromRequest(r)
	messages, total, err := h.chatUsecase.ListMessages(r.Context(), id, pageOf(p))
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, i18n.MsgMessagesRetrieved, messages, p, total)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	message, err := h.chatUsecase.SendMessage(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgMessageSent, message)
}

// SendAttachment takes the upload in "file" with optional caption and reply_to_id fields
func (h *ChatHandler) SendAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := upload.ParseForm(w, r, h.policy); err != nil {
		writeError(w, err)
		return
	}
	replyToID, ok := formUUID(r, "reply_to_id")
	if !ok {
		response.BadRequest(w, i18n.MsgInvalidID)
		return
	}
	file, err := upload.ReadFile(r, "file", h.policy)
	if err != nil {
		writeError(w, err)
		return
	}

	message, err := h.chatUsecase.SendAttachment(r.Context(), id, file, r.FormValue("caption"), replyToID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, i18n.MsgMessageSent, message)
}

func (h *ChatHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.EditMessageRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	message, err := h.chatUsecase.EditMessage(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMessageUpdated, message)
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.chatUsecase.DeleteMessage(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMessageDeleted, nil)
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.chatUsecase.MarkRead(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMarkedRead, nil)
}

func (h *ChatHandler) SetMuted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.MuteConversationRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	if err := h.chatUsecase.SetMuted(r.Context(), id, *req.Muted); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgMuteUpdated, nil)
}

func (h *ChatHandler) Typing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.chatUsecase.Typing(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgTypingSent, nil)
}

func (h *ChatHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.chatUsecase.UnreadCount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, i18n.MsgUnreadCount, countResponse{Count: count})
}
