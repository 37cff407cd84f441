package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/infrastructure/messaging"
	"dawaksahl-api/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OutboxRecorder stores a domain event in the same transaction as the change it describes
type OutboxRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, aggregateType string, aggregateID uuid.UUID, eventType string, payload entity.JSON) error
}

type outboxRecorder struct {
	log        *logrus.Logger
	outboxRepo repository.OutboxRepository
}

func NewOutboxRecorder(log *logrus.Logger, outboxRepo repository.OutboxRepository) OutboxRecorder {
	return &outboxRecorder{log: log, outboxRepo: outboxRepo}
}

func (r *outboxRecorder) Record(ctx context.Context, tx *gorm.DB, aggregateType string, aggregateID uuid.UUID, eventType string, payload entity.JSON) error {
	event := &entity.OutboxEvent{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
	}

	if err := r.outboxRepo.Create(tx.WithContext(ctx), event); err != nil {
		r.log.Warnf("Failed to record outbox event %s: %+v", eventType, err)
		return err
	}
	return nil
}

// outboxMessage is the broker payload
type outboxMessage struct {
	ID            uuid.UUID   `json:"id"`
	AggregateType string      `json:"aggregate_type"`
	AggregateID   uuid.UUID   `json:"aggregate_id"`
	EventType     string      `json:"event_type"`
	OccurredAt    time.Time   `json:"occurred_at"`
	Payload       entity.JSON `json:"payload"`
}

// OutboxRelay polls unprocessed events and publishes them in creation order
type OutboxRelay struct {
	db         *gorm.DB
	log        *logrus.Logger
	outboxRepo repository.OutboxRepository
	publisher  messaging.Publisher
	metrics    *metrics.Metrics

	pollInterval time.Duration
	batchSize    int
	maxRetries   int

	stopChan chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopped  atomic.Bool
}

func NewOutboxRelay(db *gorm.DB, log *logrus.Logger, outboxRepo repository.OutboxRepository, publisher messaging.Publisher, m *metrics.Metrics, cfg config.OutboxConfig) *OutboxRelay {
	relay := &OutboxRelay{
		db:           db,
		log:          log,
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		metrics:      m,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		maxRetries:   cfg.MaxRetries,
		stopChan:     make(chan struct{}),
	}
	if relay.pollInterval <= 0 {
		relay.pollInterval = 2 * time.Second
	}
	if relay.batchSize <= 0 {
		relay.batchSize = 100
	}
	if relay.maxRetries <= 0 {
		relay.maxRetries = 5
	}
	return relay
}

// Start runs the poll loop in the background until Stop
func (r *OutboxRelay) Start() {
	if !r.started.CompareAndSwap(false, true) {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.log.Infof("Outbox relay started, polling every %v", r.pollInterval)

		ticker := time.NewTicker(r.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.stopChan:
				r.log.Info("Outbox relay stopping")
				return
			case <-ticker.C:
				if _, err := r.ProcessPending(context.Background()); err != nil {
					r.log.Warnf("Failed to process outbox events: %+v", err)
				}
			}
		}
	}()
}

// Stop waits for the current batch to finish. Safe to call multiple times.
func (r *OutboxRelay) Stop() {
	if r.stopped.CompareAndSwap(false, true) {
		close(r.stopChan)
		r.wg.Wait()
	}
}

// ProcessPending publishes one batch and returns how many events were published
func (r *OutboxRelay) ProcessPending(ctx context.Context) (int, error) {
	events, err := r.outboxRepo.FindPending(r.db.WithContext(ctx), r.batchSize, r.maxRetries)
	if err != nil {
		return 0, fmt.Errorf("find pending outbox events: %w", err)
	}

	published := 0
	for i := range events {
		event := &events[i]
		if err := r.publish(ctx, event); err != nil {
			r.log.Warnf("Failed to publish outbox event %s (%s): %+v", event.ID, event.EventType, err)
			r.metrics.OutboxPublished(false)
			if markErr := r.outboxRepo.MarkFailed(r.db.WithContext(ctx), event.ID, err.Error()); markErr != nil {
				r.log.Warnf("Failed to mark outbox event %s failed: %+v", event.ID, markErr)
			}
			continue
		}

		r.metrics.OutboxPublished(true)
		if err := r.outboxRepo.MarkProcessed(r.db.WithContext(ctx), event.ID, time.Now()); err != nil {
			return published, fmt.Errorf("mark outbox event %s processed: %w", event.ID, err)
		}
		published++
	}

	if published > 0 {
		r.log.Debugf("Outbox relay published %d event(s)", published)
	}
	return published, nil
}

func (r *OutboxRelay) publish(ctx context.Context, event *entity.OutboxEvent) error {
	body, err := json.Marshal(outboxMessage{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		OccurredAt:    event.CreatedAt,
		Payload:       event.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal outbox event: %w", err)
	}

	key := event.AggregateType + "-" + event.AggregateID.String()
	return r.publisher.Publish(ctx, key, event.EventType, body)
}

// PurgeProcessed drops events published more than a week ago
func (r *OutboxRelay) PurgeProcessed(ctx context.Context) (int64, error) {
	return r.outboxRepo.PurgeProcessed(r.db.WithContext(ctx), time.Now().Add(-7*24*time.Hour))
}
