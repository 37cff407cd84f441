package entity

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a domain event written in the same transaction as the state change
// and relayed to the message broker afterwards
type OutboxEvent struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AggregateType string     `gorm:"type:varchar(50);not null" json:"aggregate_type"`
	AggregateID   uuid.UUID  `gorm:"type:uuid;not null" json:"aggregate_id"`
	EventType     string     `gorm:"type:varchar(100);not null" json:"event_type"`
	Payload       JSON       `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	ProcessedAt   *time.Time `gorm:"index" json:"processed_at,omitempty"`
	RetryCount    int        `gorm:"not null;default:0" json:"retry_count"`
	ErrorMessage  string     `gorm:"type:text" json:"error_message,omitempty"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

const (
	AggregateOrder        = "order"
	AggregatePrescription = "prescription"

	EventOrderCreated          = "order.created"
	EventOrderStatusChanged    = "order.status_changed"
	EventPrescriptionUploaded  = "prescription.uploaded"
	EventPrescriptionVerified  = "prescription.verified"
	EventPrescriptionRejected  = "prescription.rejected"
	EventPrescriptionCancelled = "prescription.cancelled"
)
