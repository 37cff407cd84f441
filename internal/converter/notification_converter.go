package converter

import (
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/pkg/i18n"
)

func NotificationToResponse(n *entity.Notification, lang i18n.Lang) *dto.NotificationResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificationResponse{
		ID:               n.ID,
		NotificationType: string(n.NotificationType),
		Title:            n.Title,
		TitleAr:          n.TitleAr,
		DisplayTitle:     i18n.Pick(lang, n.Title, n.TitleAr),
		Message:          n.Message,
		MessageAr:        n.MessageAr,
		DisplayMessage:   i18n.Pick(lang, n.Message, n.MessageAr),
		Priority:         string(n.Priority),
		ActionURL:        n.ActionURL,
		Data:             n.Data,
		IsRead:           n.IsRead,
		ReadAt:           n.ReadAt,
		ExpiresAt:        n.ExpiresAt,
		CreatedAt:        n.CreatedAt,
	}
}

func NotificationsToResponses(notifications []entity.Notification, lang i18n.Lang) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = *NotificationToResponse(&notifications[i], lang)
	}
	return responses
}
