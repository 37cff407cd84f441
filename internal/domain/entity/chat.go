package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a chat thread between users, optionally about an order
type Conversation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID       *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	LastMessageAt *time.Time `gorm:"index" json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// Participant returns the membership of the user, nil if not a participant
func (c *Conversation) Participant(userID uuid.UUID) *ConversationParticipant {
	for i := range c.Participants {
		if c.Participants[i].UserID == userID {
			return &c.Participants[i]
		}
	}
	return nil
}

// Others returns the participants other than the user
func (c *Conversation) Others(userID uuid.UUID) []ConversationParticipant {
	others := make([]ConversationParticipant, 0, len(c.Participants))
	for _, p := range c.Participants {
		if p.UserID != userID {
			others = append(others, p)
		}
	}
	return others
}

type ConversationParticipant struct {
	ConversationID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	UserID         uuid.UUID  `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	LastReadAt     *time.Time `json:"last_read_at,omitempty"`
	IsMuted        bool       `gorm:"not null;default:false" json:"is_muted"`
	JoinedAt       time.Time  `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeFile   MessageType = "file"
	MessageTypeSystem MessageType = "system"
)

// Message is one chat entry. Deleted messages keep their row with IsDeleted set.
type Message struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ConversationID uuid.UUID   `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"sender_id"`
	Content        string      `gorm:"type:text" json:"content"`
	MessageType    MessageType `gorm:"type:varchar(20);not null;default:'text'" json:"message_type"`
	FileURL        string      `gorm:"type:varchar(500)" json:"file_url,omitempty"`
	FileName       string      `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	FileSize       int64       `json:"file_size,omitempty"`
	ReplyToID      *uuid.UUID  `gorm:"type:uuid" json:"reply_to_id,omitempty"`
	IsEdited       bool        `gorm:"not null;default:false" json:"is_edited"`
	IsDeleted      bool        `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt      time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
