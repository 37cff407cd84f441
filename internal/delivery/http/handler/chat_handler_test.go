package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/upload"
	"dawaksahl-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatUsecase struct {
	usecase.ChatUsecase
	created    bool
	muted      *bool
	attachment *upload.File
	caption    string
	replyTo    *uuid.UUID
	sendErr    error
}

func (f *fakeChatUsecase) CreateConversation(_ context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, bool, error) {
	return &dto.ConversationResponse{ID: uuid.New()}, f.created, nil
}

func (f *fakeChatUsecase) SendMessage(_ context.Context, id uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &dto.MessageResponse{ID: uuid.New(), ConversationID: id}, nil
}

func (f *fakeChatUsecase) SendAttachment(_ context.Context, id uuid.UUID, file *upload.File, caption string, replyToID *uuid.UUID) (*dto.MessageResponse, error) {
	f.attachment = file
	f.caption = caption
	f.replyTo = replyToID
	return &dto.MessageResponse{ID: uuid.New(), ConversationID: id}, nil
}

func (f *fakeChatUsecase) SetMuted(_ context.Context, id uuid.UUID, muted bool) error {
	f.muted = &muted
	return nil
}

func (f *fakeChatUsecase) UnreadCount(context.Context) (int64, error) {
	return 7, nil
}

func newChatHandler(fake *fakeChatUsecase) *ChatHandler {
	return NewChatHandler(fake, validator.NewValidator(), config.UploadConfig{MaxChatFileSize: 64 * 1024})
}

func TestChatHandler_CreateConversationStatus(t *testing.T) {
	req := dto.CreateConversationRequest{ParticipantID: uuid.New()}

	rec := serve(newChatHandler(&fakeChatUsecase{created: true}).CreateConversation,
		newRequest(http.MethodPost, "/api/v1/chat/conversations", jsonBody(t, req), nil))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(newChatHandler(&fakeChatUsecase{created: false}).CreateConversation,
		newRequest(http.MethodPost, "/api/v1/chat/conversations", jsonBody(t, req), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatHandler_SendMessageErrors(t *testing.T) {
	id := uuid.New().String()
	tests := []struct {
		err    error
		status int
	}{
		{usecase.ErrMessageTooLong, http.StatusUnprocessableEntity},
		{usecase.ErrConversationNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		h := newChatHandler(&fakeChatUsecase{sendErr: tt.err})
		r := newRequest(http.MethodPost, "/", jsonBody(t, dto.SendMessageRequest{Content: "hello"}), map[string]string{"id": id})
		assert.Equal(t, tt.status, serve(h.SendMessage, r).Code, tt.err.Error())
	}
}

func TestChatHandler_SetMutedRequiresFlag(t *testing.T) {
	fake := &fakeChatUsecase{}
	h := newChatHandler(fake)
	id := uuid.New().String()

	rec := serve(h.SetMuted, newRequest(http.MethodPut, "/", jsonBody(t, `{}`), map[string]string{"id": id}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, fake.muted)

	rec = serve(h.SetMuted, newRequest(http.MethodPut, "/", jsonBody(t, `{"muted":false}`), map[string]string{"id": id}))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fake.muted)
	assert.False(t, *fake.muted)
}

func TestChatHandler_SendAttachment(t *testing.T) {
	fake := &fakeChatUsecase{}
	replyTo := uuid.New()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("caption", "lab results"))
	require.NoError(t, writer.WriteField("reply_to_id", replyTo.String()))
	part, err := writer.CreateFormFile("file", "results.pdf")
	require.NoError(t, err)
	_, err = part.Write(samplePDF)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	r := newRequest(http.MethodPost, "/", body, map[string]string{"id": uuid.New().String()})
	r.Header.Set("Content-Type", writer.FormDataContentType())
	rec := serve(newChatHandler(fake).SendAttachment, r)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, fake.attachment)
	assert.Equal(t, "application/pdf", fake.attachment.MIMEType)
	assert.Equal(t, "lab results", fake.caption)
	assert.Equal(t, replyTo, *fake.replyTo)
}

func TestChatHandler_UnreadCount(t *testing.T) {
	rec := serve(newChatHandler(&fakeChatUsecase{}).UnreadCount, newRequest(http.MethodGet, "/", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":7}`, string(decodeEnvelope(t, rec).Data))
}
