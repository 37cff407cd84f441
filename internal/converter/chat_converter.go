package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
)

// MessageToResponse blanks the content and attachment of deleted messages
func MessageToResponse(m *entity.Message) *dto.MessageResponse {
	if m == nil {
		return nil
	}

	response := &dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         UserToSummary(m.Sender),
		SenderID:       m.SenderID,
		Content:        m.Content,
		MessageType:    string(m.MessageType),
		FileURL:        m.FileURL,
		FileName:       m.FileName,
		FileSize:       m.FileSize,
		ReplyToID:      m.ReplyToID,
		IsEdited:       m.IsEdited,
		IsDeleted:      m.IsDeleted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.IsDeleted {
		response.Content = ""
		response.FileURL = ""
		response.FileName = ""
		response.FileSize = 0
	}

	return response
}

func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = *MessageToResponse(&messages[i])
	}
	return responses
}

// ConversationToResponse renders the conversation from the viewpoint of viewer
func ConversationToResponse(c *entity.Conversation, viewer uuid.UUID, last *entity.Message, unread int64) *dto.ConversationResponse {
	if c == nil {
		return nil
	}

	response := &dto.ConversationResponse{
		ID:            c.ID,
		OrderID:       c.OrderID,
		Participants:  make([]dto.UserSummary, 0, len(c.Participants)),
		LastMessage:   MessageToResponse(last),
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   unread,
		CreatedAt:     c.CreatedAt,
	}

	for _, p := range c.Participants {
		summary := UserToSummary(p.User)
		if summary == nil {
			summary = &dto.UserSummary{ID: p.UserID}
		}
		response.Participants = append(response.Participants, *summary)
		if p.UserID == viewer {
			response.IsMuted = p.IsMuted
		} else if response.OtherUser == nil {
			response.OtherUser = summary
		}
	}

	return response
}
