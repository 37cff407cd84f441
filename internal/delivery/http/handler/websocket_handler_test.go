package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dawaksahl-api/internal/delivery/http/middleware"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketHandler_StreamsUserEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	hub := service.NewRealtimeHub(client, log)
	userID := uuid.New()

	h := NewWebSocketHandler(hub, []string{"*"}, log)
	withUser := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.WithClaims(r.Context(), userID, "patient@example.com", entity.RoleIDPatient, "jti")
		h.Serve(w, r.WithContext(ctx))
	})
	server := httptest.NewServer(withUser)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The subscription is confirmed before the upgrade, so this publish cannot be missed
	require.NoError(t, hub.Publish(t.Context(), userID, service.EventTyping, map[string]string{"conversation_id": "c1"}))
	require.NoError(t, hub.Publish(t.Context(), uuid.New(), service.EventTyping, map[string]string{"conversation_id": "other"}))

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var event service.RealtimeEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, service.EventTyping, event.Type)
	assert.JSONEq(t, `{"conversation_id":"c1"}`, string(event.Data))
}

func TestWebSocketHandler_RequiresUser(t *testing.T) {
	h := NewWebSocketHandler(nil, []string{"*"}, logrus.New())

	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chat/ws", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.dawaksahl.com"})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://app.dawaksahl.com")
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(r))
}
