package repository

import (
	"time"

	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(db *gorm.DB, conversation *entity.Conversation) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Conversation, error)
	FindBetween(db *gorm.DB, userA, userB uuid.UUID, orderID *uuid.UUID) (*entity.Conversation, error)
	FindByUser(db *gorm.DB, userID uuid.UUID, page entity.Page) ([]entity.Conversation, int64, error)
	TouchLastMessage(db *gorm.DB, id uuid.UUID, at time.Time) error
	UpdateParticipant(db *gorm.DB, participant *entity.ConversationParticipant) error
	CountUnread(db *gorm.DB, conversationID, userID uuid.UUID, since *time.Time) (int64, error)
	TotalUnread(db *gorm.DB, userID uuid.UUID) (int64, error)
}

type MessageRepository interface {
	Create(db *gorm.DB, message *entity.Message) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Message, error)
	FindByConversation(db *gorm.DB, conversationID uuid.UUID, page entity.Page) ([]entity.Message, int64, error)
	FindLast(db *gorm.DB, conversationID uuid.UUID) (*entity.Message, error)
	Update(db *gorm.DB, message *entity.Message) error
}
