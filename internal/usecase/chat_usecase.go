package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/converter"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/infrastructure/storage"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/upload"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationSelf     = errors.New("cannot start a conversation with yourself")
	ErrMessageNotFound      = errors.New("message not found")
	ErrMessageTooLong       = errors.New("message is too long")
	ErrMessageEmpty         = errors.New("message content is required")
)

const (
	chatFolder         = "chat"
	notifyPreviewRunes = 100
)

type ChatUsecase interface {
	CreateConversation(ctx context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, bool, error)
	ListConversations(ctx context.Context, page entity.Page) ([]dto.ConversationResponse, int64, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID, page entity.Page) ([]dto.MessageResponse, int64, error)
	SendMessage(ctx context.Context, conversationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	SendAttachment(ctx context.Context, conversationID uuid.UUID, file *upload.File, caption string, replyToID *uuid.UUID) (*dto.MessageResponse, error)
	EditMessage(ctx context.Context, messageID uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error)
	DeleteMessage(ctx context.Context, messageID uuid.UUID) error
	MarkRead(ctx context.Context, conversationID uuid.UUID) error
	SetMuted(ctx context.Context, conversationID uuid.UUID, muted bool) error
	Typing(ctx context.Context, conversationID uuid.UUID) error
	UnreadCount(ctx context.Context) (int64, error)
}

type chatUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	business            config.BusinessConfig
	conversationRepo    repository.ConversationRepository
	messageRepo         repository.MessageRepository
	userRepo            repository.UserRepository
	orderRepo           repository.OrderRepository
	files               storage.FileStorage
	realtime            service.RealtimePublisher
	notificationService service.NotificationService
}

func NewChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	business config.BusinessConfig,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	files storage.FileStorage,
	realtime service.RealtimePublisher,
	notificationService service.NotificationService,
) ChatUsecase {
	return &chatUsecase{
		db:                  db,
		log:                 log,
		business:            business,
		conversationRepo:    conversationRepo,
		messageRepo:         messageRepo,
		userRepo:            userRepo,
		orderRepo:           orderRepo,
		files:               files,
		realtime:            realtime,
		notificationService: notificationService,
	}
}

// CreateConversation returns the existing thread between the two users when there is one; created reports a new thread
func (u *chatUsecase) CreateConversation(ctx context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, bool, error) {
	userID, roleID, err := actor(ctx)
	if err != nil {
		return nil, false, err
	}
	if req.ParticipantID == userID {
		return nil, false, ErrConversationSelf
	}

	db := u.db.WithContext(ctx)

	other, err := u.userRepo.FindByID(db, req.ParticipantID)
	if err != nil {
		u.log.Warnf("Failed to find participant: %+v", err)
		return nil, false, err
	}
	if other == nil || !other.IsActive {
		return nil, false, ErrUserNotFound
	}

	if req.OrderID != nil {
		order, err := u.orderRepo.FindByID(db, *req.OrderID)
		if err != nil {
			u.log.Warnf("Failed to find order: %+v", err)
			return nil, false, err
		}
		if order == nil || !order.IsVisibleTo(userID, roleID) || !order.IsVisibleTo(other.ID, other.RoleID) {
			return nil, false, ErrOrderNotFound
		}
	}

	conversation, err := u.conversationRepo.FindBetween(db, userID, other.ID, req.OrderID)
	if err != nil {
		u.log.Warnf("Failed to find conversation: %+v", err)
		return nil, false, err
	}

	created := false
	if conversation == nil {
		conversation = &entity.Conversation{
			OrderID: req.OrderID,
			Participants: []entity.ConversationParticipant{
				{UserID: userID},
				{UserID: other.ID},
			},
		}
		if err := u.conversationRepo.Create(db, conversation); err != nil {
			u.log.Warnf("Failed to create conversation: %+v", err)
			return nil, false, err
		}
		created = true
	}

	if strings.TrimSpace(req.InitialMessage) != "" {
		if _, err := u.SendMessage(ctx, conversation.ID, &dto.SendMessageRequest{Content: req.InitialMessage}); err != nil {
			return nil, false, err
		}
	}

	resp, err := u.conversationView(ctx, db, conversation.ID, userID)
	if err != nil {
		return nil, false, err
	}
	return resp, created, nil
}

func (u *chatUsecase) conversationView(ctx context.Context, db *gorm.DB, id, viewer uuid.UUID) (*dto.ConversationResponse, error) {
	conversation, err := u.conversationRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find conversation: %+v", err)
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}
	return u.summarize(db, conversation, viewer)
}

func (u *chatUsecase) summarize(db *gorm.DB, conversation *entity.Conversation, viewer uuid.UUID) (*dto.ConversationResponse, error) {
	last, err := u.messageRepo.FindLast(db, conversation.ID)
	if err != nil {
		u.log.Warnf("Failed to find last message: %+v", err)
		return nil, err
	}

	var since *time.Time
	if me := conversation.Participant(viewer); me != nil {
		since = me.LastReadAt
	}
	unread, err := u.conversationRepo.CountUnread(db, conversation.ID, viewer, since)
	if err != nil {
		u.log.Warnf("Failed to count unread messages: %+v", err)
		return nil, err
	}
	return converter.ConversationToResponse(conversation, viewer, last, unread), nil
}

func (u *chatUsecase) ListConversations(ctx context.Context, page entity.Page) ([]dto.ConversationResponse, int64, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	db := u.db.WithContext(ctx)
	conversations, total, err := u.conversationRepo.FindByUser(db, userID, page)
	if err != nil {
		u.log.Warnf("Failed to list conversations: %+v", err)
		return nil, 0, err
	}

	responses := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		resp, err := u.summarize(db, &conversations[i], userID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *resp)
	}
	return responses, total, nil
}

// membership loads the conversation and checks the caller belongs to it
func (u *chatUsecase) membership(db *gorm.DB, conversationID, userID uuid.UUID) (*entity.Conversation, *entity.ConversationParticipant, error) {
	conversation, err := u.conversationRepo.FindByID(db, conversationID)
	if err != nil {
		u.log.Warnf("Failed to find conversation: %+v", err)
		return nil, nil, err
	}
	if conversation == nil {
		return nil, nil, ErrConversationNotFound
	}
	me := conversation.Participant(userID)
	if me == nil {
		return nil, nil, ErrConversationNotFound
	}
	return conversation, me, nil
}

func (u *chatUsecase) ListMessages(ctx context.Context, conversationID uuid.UUID, page entity.Page) ([]dto.MessageResponse, int64, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	db := u.db.WithContext(ctx)
	if _, _, err := u.membership(db, conversationID, userID); err != nil {
		return nil, 0, err
	}

	messages, total, err := u.messageRepo.FindByConversation(db, conversationID, page)
	if err != nil {
		u.log.Warnf("Failed to list messages: %+v", err)
		return nil, 0, err
	}
	return converter.MessagesToResponses(messages), total, nil
}

func (u *chatUsecase) checkContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrMessageEmpty
	}
	if utf8.RuneCountInString(content) > u.business.ChatMessageMaxLength {
		return "", ErrMessageTooLong
	}
	return content, nil
}

func (u *chatUsecase) SendMessage(ctx context.Context, conversationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content, err := u.checkContent(req.Content)
	if err != nil {
		return nil, err
	}
	return u.send(ctx, conversationID, &entity.Message{
		Content:     content,
		MessageType: entity.MessageTypeText,
		ReplyToID:   req.ReplyToID,
	})
}

// SendAttachment stores the file and posts it as an image or file message
func (u *chatUsecase) SendAttachment(ctx context.Context, conversationID uuid.UUID, file *upload.File, caption string, replyToID *uuid.UUID) (*dto.MessageResponse, error) {
	caption = strings.TrimSpace(caption)
	if utf8.RuneCountInString(caption) > u.business.ChatMessageMaxLength {
		return nil, ErrMessageTooLong
	}

	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	// Check membership before writing the file
	if _, _, err := u.membership(u.db.WithContext(ctx), conversationID, userID); err != nil {
		return nil, err
	}

	url, err := u.files.Save(ctx, chatFolder, file.Extension, file.Content)
	if err != nil {
		u.log.Warnf("Failed to store chat attachment: %+v", err)
		return nil, err
	}

	messageType := entity.MessageTypeFile
	if file.IsImage() {
		messageType = entity.MessageTypeImage
	}

	resp, err := u.send(ctx, conversationID, &entity.Message{
		Content:     caption,
		MessageType: messageType,
		FileURL:     url,
		FileName:    file.Name,
		FileSize:    file.Size,
		ReplyToID:   replyToID,
	})
	if err != nil {
		if delErr := u.files.Delete(ctx, url); delErr != nil {
			u.log.Warnf("Failed to remove orphan attachment %s: %+v", url, delErr)
		}
		return nil, err
	}
	return resp, nil
}

func (u *chatUsecase) send(ctx context.Context, conversationID uuid.UUID, message *entity.Message) (*dto.MessageResponse, error) {
	senderID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	conversation, me, err := u.membership(tx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	if message.ReplyToID != nil {
		parent, err := u.messageRepo.FindByID(tx, *message.ReplyToID)
		if err != nil {
			u.log.Warnf("Failed to find replied message: %+v", err)
			return nil, err
		}
		if parent == nil || parent.ConversationID != conversationID {
			return nil, ErrMessageNotFound
		}
	}

	message.ConversationID = conversationID
	message.SenderID = senderID
	if err := u.messageRepo.Create(tx, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	sentAt := message.CreatedAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}
	if err := u.conversationRepo.TouchLastMessage(tx, conversationID, sentAt); err != nil {
		u.log.Warnf("Failed to touch conversation: %+v", err)
		return nil, err
	}
	me.LastReadAt = &sentAt
	if err := u.conversationRepo.UpdateParticipant(tx, me); err != nil {
		u.log.Warnf("Failed to update read marker: %+v", err)
		return nil, err
	}

	preview := messagePreview(message)
	var notifications []*entity.Notification
	for _, p := range conversation.Others(senderID) {
		if p.IsMuted {
			continue
		}
		n, err := u.notificationService.Create(ctx, tx, service.NotificationInput{
			UserID:    p.UserID,
			Type:      entity.NotificationTypeChat,
			Title:     i18n.NotifyChatTitle,
			Body:      i18n.Message{EN: preview, AR: preview},
			ActionURL: "/chat/conversations/" + conversationID.String(),
			Data:      entity.JSON{"conversation_id": conversationID.String(), "message_id": message.ID.String()},
		})
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if sender := conversation.Participant(senderID); sender != nil {
		message.Sender = sender.User
	}
	resp := converter.MessageToResponse(message)

	u.broadcast(ctx, conversation, senderID, service.EventMessage, resp)
	u.notificationService.Push(ctx, notifications...)
	return resp, nil
}

func messagePreview(message *entity.Message) string {
	text := message.Content
	if text == "" {
		text = message.FileName
	}
	if utf8.RuneCountInString(text) <= notifyPreviewRunes {
		return text
	}
	return string([]rune(text)[:notifyPreviewRunes]) + "…"
}

// broadcast publishes a realtime event to every participant except the actor. Delivery is best-effort.
func (u *chatUsecase) broadcast(ctx context.Context, conversation *entity.Conversation, except uuid.UUID, eventType string, data interface{}) {
	for _, p := range conversation.Others(except) {
		if err := u.realtime.Publish(ctx, p.UserID, eventType, data); err != nil {
			u.log.Warnf("Failed to publish %s event to %s: %+v", eventType, p.UserID, err)
		}
	}
}

// ownMessage loads a live message written by the caller
func (u *chatUsecase) ownMessage(db *gorm.DB, messageID, userID uuid.UUID) (*entity.Message, error) {
	message, err := u.messageRepo.FindByID(db, messageID)
	if err != nil {
		u.log.Warnf("Failed to find message: %+v", err)
		return nil, err
	}
	if message == nil || message.IsDeleted {
		return nil, ErrMessageNotFound
	}
	if message.SenderID != userID {
		return nil, ErrForbidden
	}
	return message, nil
}

func (u *chatUsecase) EditMessage(ctx context.Context, messageID uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	content, err := u.checkContent(req.Content)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	message, err := u.ownMessage(db, messageID, userID)
	if err != nil {
		return nil, err
	}

	message.Content = content
	message.IsEdited = true
	if err := u.messageRepo.Update(db, message); err != nil {
		u.log.Warnf("Failed to edit message: %+v", err)
		return nil, err
	}

	resp := converter.MessageToResponse(message)
	if conversation, err := u.conversationRepo.FindByID(db, message.ConversationID); err == nil && conversation != nil {
		u.broadcast(ctx, conversation, userID, service.EventMessageUpdated, resp)
	}
	return resp, nil
}

func (u *chatUsecase) DeleteMessage(ctx context.Context, messageID uuid.UUID) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	db := u.db.WithContext(ctx)
	message, err := u.ownMessage(db, messageID, userID)
	if err != nil {
		return err
	}

	message.IsDeleted = true
	if err := u.messageRepo.Update(db, message); err != nil {
		u.log.Warnf("Failed to delete message: %+v", err)
		return err
	}

	if conversation, err := u.conversationRepo.FindByID(db, message.ConversationID); err == nil && conversation != nil {
		u.broadcast(ctx, conversation, userID, service.EventMessageDeleted, converter.MessageToResponse(message))
	}
	return nil
}

func (u *chatUsecase) MarkRead(ctx context.Context, conversationID uuid.UUID) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	db := u.db.WithContext(ctx)
	conversation, me, err := u.membership(db, conversationID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	me.LastReadAt = &now
	if err := u.conversationRepo.UpdateParticipant(db, me); err != nil {
		u.log.Warnf("Failed to mark conversation read: %+v", err)
		return err
	}

	u.broadcast(ctx, conversation, userID, service.EventRead, dto.ReadEvent{
		ConversationID: conversationID,
		UserID:         userID,
		ReadAt:         now,
	})
	return nil
}

func (u *chatUsecase) SetMuted(ctx context.Context, conversationID uuid.UUID, muted bool) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	db := u.db.WithContext(ctx)
	_, me, err := u.membership(db, conversationID, userID)
	if err != nil {
		return err
	}

	me.IsMuted = muted
	if err := u.conversationRepo.UpdateParticipant(db, me); err != nil {
		u.log.Warnf("Failed to update mute: %+v", err)
		return err
	}
	return nil
}

// Typing only publishes; nothing is stored
func (u *chatUsecase) Typing(ctx context.Context, conversationID uuid.UUID) error {
	userID, _, err := actor(ctx)
	if err != nil {
		return err
	}

	conversation, _, err := u.membership(u.db.WithContext(ctx), conversationID, userID)
	if err != nil {
		return err
	}

	u.broadcast(ctx, conversation, userID, service.EventTyping, dto.TypingEvent{
		ConversationID: conversationID,
		UserID:         userID,
	})
	return nil
}

func (u *chatUsecase) UnreadCount(ctx context.Context) (int64, error) {
	userID, _, err := actor(ctx)
	if err != nil {
		return 0, err
	}

	total, err := u.conversationRepo.TotalUnread(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to count unread messages: %+v", err)
		return 0, err
	}
	return total, nil
}
