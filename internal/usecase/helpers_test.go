package usecase

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"

	"dawaksahl-api/internal/delivery/http/middleware"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return openGorm(t, sqlDB), mock
}

func openGorm(t *testing.T, sqlDB *sql.DB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return db
}

// isLocking reports whether the query carries a FOR UPDATE clause
func isLocking(db *gorm.DB) bool {
	if db == nil || db.Statement == nil {
		return false
	}
	_, ok := db.Statement.Clauses["FOR"]
	return ok
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func asUser(userID uuid.UUID, roleID int) context.Context {
	return middleware.WithClaims(context.Background(), userID, "user@example.com", roleID, "token-id")
}

type publishedEvent struct {
	UserID    uuid.UUID
	EventType string
	Data      interface{}
}

type recordingRealtime struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (r *recordingRealtime) Publish(_ context.Context, userID uuid.UUID, eventType string, data interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{UserID: userID, EventType: eventType, Data: data})
	return nil
}

func (r *recordingRealtime) recipients(eventType string) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, e := range r.events {
		if e.EventType == eventType {
			ids = append(ids, e.UserID)
		}
	}
	return ids
}

// recordingNotifier stores nothing; it keeps the inputs and pushes for assertions
type recordingNotifier struct {
	created []service.NotificationInput
	pushed  []*entity.Notification
}

func (n *recordingNotifier) Create(_ context.Context, _ *gorm.DB, input service.NotificationInput) (*entity.Notification, error) {
	n.created = append(n.created, input)
	return &entity.Notification{ID: uuid.New(), UserID: input.UserID, Title: input.Title.EN}, nil
}

func (n *recordingNotifier) Push(_ context.Context, notifications ...*entity.Notification) {
	for _, notification := range notifications {
		if notification != nil {
			n.pushed = append(n.pushed, notification)
		}
	}
}

type recordingAudit struct {
	entries []service.AuditEntry
}

func (a *recordingAudit) Log(_ context.Context, _ *gorm.DB, entry service.AuditEntry) error {
	a.entries = append(a.entries, entry)
	return nil
}

func (a *recordingAudit) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	return a.Log(ctx, tx, service.AuditEntry{ActorID: userID, Action: action, EntityName: entityName, EntityID: entityID, NewValue: newValue})
}

func (a *recordingAudit) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return a.Log(ctx, tx, service.AuditEntry{ActorID: userID, Action: action, EntityName: entityName, EntityID: entityID, OldValue: oldValue, NewValue: newValue})
}

func (a *recordingAudit) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	return a.Log(ctx, tx, service.AuditEntry{ActorID: userID, Action: action, EntityName: entityName, EntityID: entityID, OldValue: oldValue})
}

func (a *recordingAudit) actions() []string {
	actions := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		actions = append(actions, e.Action)
	}
	return actions
}
