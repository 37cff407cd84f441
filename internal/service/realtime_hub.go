package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const realtimeChannelPrefix = "realtime:user:"

// Realtime event types sent over the websocket
const (
	EventMessage        = "message"
	EventMessageUpdated = "message_updated"
	EventMessageDeleted = "message_deleted"
	EventTyping         = "typing"
	EventRead           = "read"
	EventNotification   = "notification"
)

// RealtimeEvent is the frame written to websocket clients
type RealtimeEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// RealtimePublisher sends an event to every open connection of a user
type RealtimePublisher interface {
	Publish(ctx context.Context, userID uuid.UUID, eventType string, data interface{}) error
}

// RealtimeHub fans events out through Redis pub/sub so any instance holding the
// user's socket can deliver them
type RealtimeHub struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRealtimeHub(redisClient *redis.Client, log *logrus.Logger) *RealtimeHub {
	return &RealtimeHub{redisClient: redisClient, log: log}
}

func RealtimeChannel(userID uuid.UUID) string {
	return realtimeChannelPrefix + userID.String()
}

func (h *RealtimeHub) Publish(ctx context.Context, userID uuid.UUID, eventType string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}
	frame, err := json.Marshal(RealtimeEvent{Type: eventType, Data: raw})
	if err != nil {
		return fmt.Errorf("marshal %s frame: %w", eventType, err)
	}

	if err := h.redisClient.Publish(ctx, RealtimeChannel(userID), frame).Err(); err != nil {
		h.log.Warnf("Failed to publish %s event for user %s: %+v", eventType, userID, err)
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return nil
}

// Subscribe opens the user's channel. The caller must Close the subscription.
func (h *RealtimeHub) Subscribe(ctx context.Context, userID uuid.UUID) (*redis.PubSub, error) {
	sub := h.redisClient.Subscribe(ctx, RealtimeChannel(userID))

	// Wait for the confirmation so no event published right after is lost
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", RealtimeChannel(userID), err)
	}
	return sub, nil
}
