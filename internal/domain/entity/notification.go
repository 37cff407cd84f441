package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeOrder        NotificationType = "order"
	NotificationTypePrescription NotificationType = "prescription"
	NotificationTypeChat         NotificationType = "chat"
	NotificationTypeReview       NotificationType = "review"
	NotificationTypeSystem       NotificationType = "system"
	NotificationTypeAppointment  NotificationType = "appointment"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Notification is an in-app message for one user
type Notification struct {
	ID               uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	NotificationType NotificationType     `gorm:"type:varchar(20);not null;index" json:"notification_type"`
	Title            string               `gorm:"type:varchar(200);not null" json:"title"`
	TitleAr          string               `gorm:"type:varchar(200);not null" json:"title_ar"`
	Message          string               `gorm:"type:text;not null" json:"message"`
	MessageAr        string               `gorm:"type:text;not null" json:"message_ar"`
	Priority         NotificationPriority `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	ActionURL        string               `gorm:"type:varchar(500)" json:"action_url,omitempty"`
	Data             JSON                 `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead           bool                 `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt           *time.Time           `json:"read_at,omitempty"`
	ExpiresAt        *time.Time           `json:"expires_at,omitempty"`
	CreatedAt        time.Time            `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
