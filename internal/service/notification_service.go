package service

import (
	"context"
	"time"

	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/pkg/i18n"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationInput is a bilingual notification for one user
type NotificationInput struct {
	UserID    uuid.UUID
	Type      entity.NotificationType
	Title     i18n.Message
	Body      i18n.Message
	Priority  entity.NotificationPriority
	ActionURL string
	Data      entity.JSON
	ExpiresAt *time.Time
}

type NotificationService interface {
	// Create stores the notification on tx. Call Push with the result once tx has committed.
	Create(ctx context.Context, tx *gorm.DB, input NotificationInput) (*entity.Notification, error)
	Push(ctx context.Context, notifications ...*entity.Notification)
}

type notificationService struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	realtime         RealtimePublisher
}

func NewNotificationService(log *logrus.Logger, notificationRepo repository.NotificationRepository, realtime RealtimePublisher) NotificationService {
	return &notificationService{
		log:              log,
		notificationRepo: notificationRepo,
		realtime:         realtime,
	}
}

func (s *notificationService) Create(ctx context.Context, tx *gorm.DB, input NotificationInput) (*entity.Notification, error) {
	priority := input.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}

	notification := &entity.Notification{
		UserID:           input.UserID,
		NotificationType: input.Type,
		Title:            input.Title.EN,
		TitleAr:          input.Title.AR,
		Message:          input.Body.EN,
		MessageAr:        input.Body.AR,
		Priority:         priority,
		ActionURL:        input.ActionURL,
		Data:             input.Data,
		ExpiresAt:        input.ExpiresAt,
	}

	if err := s.notificationRepo.Create(tx.WithContext(ctx), notification); err != nil {
		s.log.Warnf("Failed to create notification for user %s: %+v", input.UserID, err)
		return nil, err
	}
	return notification, nil
}

// Push is best-effort: the notification is already stored and shows up on the next fetch
func (s *notificationService) Push(ctx context.Context, notifications ...*entity.Notification) {
	for _, n := range notifications {
		if n == nil {
			continue
		}
		if err := s.realtime.Publish(ctx, n.UserID, EventNotification, n); err != nil {
			s.log.Warnf("Failed to push notification %s: %+v", n.ID, err)
		}
	}
}
