package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	ParticipantID  uuid.UUID  `json:"participant_id" validate:"required"`
	OrderID        *uuid.UUID `json:"order_id"`
	InitialMessage string     `json:"initial_message"`
}

type SendMessageRequest struct {
	Content   string     `json:"content" validate:"required"`
	ReplyToID *uuid.UUID `json:"reply_to_id"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type MuteConversationRequest struct {
	Muted *bool `json:"muted" validate:"required"`
}

type MessageResponse struct {
	ID             uuid.UUID    `json:"id"`
	ConversationID uuid.UUID    `json:"conversation_id"`
	Sender         *UserSummary `json:"sender,omitempty"`
	SenderID       uuid.UUID    `json:"sender_id"`
	Content        string       `json:"content"`
	MessageType    string       `json:"message_type"`
	FileURL        string       `json:"file_url,omitempty"`
	FileName       string       `json:"file_name,omitempty"`
	FileSize       int64        `json:"file_size,omitempty"`
	ReplyToID      *uuid.UUID   `json:"reply_to_id,omitempty"`
	IsEdited       bool         `json:"is_edited"`
	IsDeleted      bool         `json:"is_deleted"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type ConversationResponse struct {
	ID            uuid.UUID        `json:"id"`
	OrderID       *uuid.UUID       `json:"order_id,omitempty"`
	Participants  []UserSummary    `json:"participants"`
	OtherUser     *UserSummary     `json:"other_user,omitempty"`
	LastMessage   *MessageResponse `json:"last_message,omitempty"`
	LastMessageAt *time.Time       `json:"last_message_at,omitempty"`
	UnreadCount   int64            `json:"unread_count"`
	IsMuted       bool             `json:"is_muted"`
	CreatedAt     time.Time        `json:"created_at"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type TypingEvent struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	UserID         uuid.UUID `json:"user_id"`
}

type ReadEvent struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	UserID         uuid.UUID `json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}
