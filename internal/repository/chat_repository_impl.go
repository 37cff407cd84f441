package repository

import (
	"errors"
	"time"

	"dawaksahl-api/internal/domain/entity"
	domainRepo "dawaksahl-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type conversationRepository struct{}

func NewConversationRepository() domainRepo.ConversationRepository {
	return &conversationRepository{}
}

// Create inserts the conversation together with its participants
func (r *conversationRepository) Create(db *gorm.DB, conversation *entity.Conversation) error {
	return db.Create(conversation).Error
}

func (r *conversationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := db.Preload("Participants.User").Where("id = ?", id).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

// FindBetween finds the conversation shared by two users about the same order, or
// about no order when orderID is nil
func (r *conversationRepository) FindBetween(db *gorm.DB, userA, userB uuid.UUID, orderID *uuid.UUID) (*entity.Conversation, error) {
	query := db.Model(&entity.Conversation{}).
		Joins("JOIN conversation_participants pa ON pa.conversation_id = conversations.id AND pa.user_id = ?", userA).
		Joins("JOIN conversation_participants pb ON pb.conversation_id = conversations.id AND pb.user_id = ?", userB)
	if orderID != nil {
		query = query.Where("conversations.order_id = ?", *orderID)
	} else {
		query = query.Where("conversations.order_id IS NULL")
	}

	var conversation entity.Conversation
	err := query.Preload("Participants.User").First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindByUser(db *gorm.DB, userID uuid.UUID, page entity.Page) ([]entity.Conversation, int64, error) {
	query := db.Model(&entity.Conversation{}).
		Joins("JOIN conversation_participants me ON me.conversation_id = conversations.id AND me.user_id = ?", userID)

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var conversations []entity.Conversation
	err = query.Preload("Participants.User").
		Order("conversations.last_message_at DESC NULLS LAST, conversations.created_at DESC").
		Scopes(paginate(page)).
		Find(&conversations).Error
	if err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

func (r *conversationRepository) TouchLastMessage(db *gorm.DB, id uuid.UUID, at time.Time) error {
	return db.Model(&entity.Conversation{}).Where("id = ?", id).Update("last_message_at", at).Error
}

func (r *conversationRepository) UpdateParticipant(db *gorm.DB, participant *entity.ConversationParticipant) error {
	return db.Model(&entity.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", participant.ConversationID, participant.UserID).
		Updates(map[string]interface{}{
			"last_read_at": participant.LastReadAt,
			"is_muted":     participant.IsMuted,
		}).Error
}

// CountUnread counts live messages from others newer than since
func (r *conversationRepository) CountUnread(db *gorm.DB, conversationID, userID uuid.UUID, since *time.Time) (int64, error) {
	query := db.Model(&entity.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_deleted = ?", conversationID, userID, false)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}

	var total int64
	err := query.Count(&total).Error
	return total, err
}

func (r *conversationRepository) TotalUnread(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.Message{}).
		Joins("JOIN conversation_participants p ON p.conversation_id = messages.conversation_id AND p.user_id = ?", userID).
		Where("messages.sender_id <> ? AND messages.is_deleted = ?", userID, false).
		Where("p.last_read_at IS NULL OR messages.created_at > p.last_read_at").
		Count(&total).Error
	return total, err
}

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *entity.Message) error {
	return db.Omit("Sender").Create(message).Error
}

func (r *messageRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Message, error) {
	var message entity.Message
	err := db.Preload("Sender").Where("id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindByConversation(db *gorm.DB, conversationID uuid.UUID, page entity.Page) ([]entity.Message, int64, error) {
	query := db.Model(&entity.Message{}).Where("conversation_id = ?", conversationID)

	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}

	var messages []entity.Message
	err = query.Preload("Sender").Order("created_at DESC").Scopes(paginate(page)).Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *messageRepository) FindLast(db *gorm.DB, conversationID uuid.UUID) (*entity.Message, error) {
	var messages []entity.Message
	err := db.Where("conversation_id = ?", conversationID).Order("created_at DESC").Limit(1).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

func (r *messageRepository) Update(db *gorm.DB, message *entity.Message) error {
	return db.Omit("Sender").Save(message).Error
}
