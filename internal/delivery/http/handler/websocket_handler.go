package handler

import (
	"context"
	"net/http"
	"time"

	"dawaksahl-api/internal/delivery/http/middleware"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsReadLimit  = 4096
)

// RealtimeSubscriber opens the pub/sub channel carrying a user's realtime events
type RealtimeSubscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (*redis.PubSub, error)
}

// WebSocketHandler streams a user's realtime events. Clients only receive; anything they
// send besides control frames is discarded.
type WebSocketHandler struct {
	hub      RealtimeSubscriber
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewWebSocketHandler(hub RealtimeSubscriber, allowedOrigins []string, log *logrus.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, i18n.MsgUnauthorized)
		return
	}

	// Subscribe before upgrading so a Redis outage is still a plain HTTP error
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := h.hub.Subscribe(ctx, userID)
	if err != nil {
		h.log.Warnf("Failed to subscribe realtime channel: %+v", err)
		response.InternalServerError(w)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already answered the client
		h.log.Debugf("WebSocket upgrade failed: %+v", err)
		return
	}
	defer conn.Close()

	h.log.WithField("user_id", userID).Debug("WebSocket connected")

	go h.readPump(conn, cancel)
	h.writePump(ctx, conn, sub.Channel())

	h.log.WithField("user_id", userID).Debug("WebSocket disconnected")
}

// readPump keeps the read deadline moving on pongs and cancels ctx when the client goes away
func (h *WebSocketHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debugf("WebSocket read error: %+v", err)
			}
			return
		}
	}
}

func (h *WebSocketHandler) writePump(ctx context.Context, conn *websocket.Conn, events <-chan *redis.Message) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
