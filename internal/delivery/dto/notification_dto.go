package dto

import (
	"time"

	"dawaksahl-api/internal/domain/entity"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID               uuid.UUID   `json:"id"`
	NotificationType string      `json:"notification_type"`
	Title            string      `json:"title"`
	TitleAr          string      `json:"title_ar"`
	DisplayTitle     string      `json:"display_title"`
	Message          string      `json:"message"`
	MessageAr        string      `json:"message_ar"`
	DisplayMessage   string      `json:"display_message"`
	Priority         string      `json:"priority"`
	ActionURL        string      `json:"action_url,omitempty"`
	Data             entity.JSON `json:"data,omitempty"`
	IsRead           bool        `json:"is_read"`
	ReadAt           *time.Time  `json:"read_at,omitempty"`
	ExpiresAt        *time.Time  `json:"expires_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

type UpdatedCountResponse struct {
	Updated int64 `json:"updated"`
}

type DeletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}
