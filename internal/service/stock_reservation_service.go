package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	domainRepo "dawaksahl-api/internal/domain/repository"
	"dawaksahl-api/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when any line of a reservation cannot be covered
var ErrInsufficientStock = errors.New("insufficient stock")

// reserveStockScript checks every key first and only then decrements, so a
// reservation over several items is all-or-nothing.
// Returns 1 on success, -1 when a quantity is short, -2 when a key is missing.
var reserveStockScript = redis.NewScript(`
	for i, key in ipairs(KEYS) do
		local current = redis.call('GET', key)
		if not current then
			return -2
		end
		if tonumber(current) < tonumber(ARGV[i]) then
			return -1
		end
	end
	for i, key in ipairs(KEYS) do
		redis.call('DECRBY', key, ARGV[i])
	end
	return 1
`)

// releaseStockScript gives quantities back. Missing keys are left alone; the next
// sync rebuilds them from the database.
var releaseStockScript = redis.NewScript(`
	for i, key in ipairs(KEYS) do
		if redis.call('EXISTS', key) == 1 then
			redis.call('INCRBY', key, ARGV[i])
		end
	end
	return 1
`)

const (
	RedisStockKeyPrefix = "inventory:stock:"

	// Stock keys expire so that drift heals on its own; any miss triggers a resync
	stockKeyTTL = 24 * time.Hour

	// Batch size for startup sync - process 500 records at a time
	syncBatchSize = 500

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// StockLine is one inventory item and quantity of a reservation
type StockLine struct {
	InventoryID uuid.UUID
	Quantity    int
}

// StockGate is the fast pre-check in front of the conditional database decrement
type StockGate interface {
	Reserve(ctx context.Context, lines []StockLine) error
	Release(ctx context.Context, lines []StockLine) error
	SyncItem(ctx context.Context, inventoryID uuid.UUID) error
	SetLevel(ctx context.Context, inventoryID uuid.UUID, quantity int) error
	Remove(ctx context.Context, inventoryID uuid.UUID) error
}

// StockSource reads authoritative quantities from the database
type StockSource interface {
	FindStockLevel(db *gorm.DB, id uuid.UUID) (*domainRepo.StockLevel, error)
	FindStockLevels(db *gorm.DB, offset, limit int) ([]domainRepo.StockLevel, error)
}

// StockReservationService mirrors inventory quantities into Redis and reserves stock
// with Lua scripts.
//
// Lock ordering: acquire the item mutex first, then touch DB and Redis. Reserve and
// Release take no mutex; the scripts are atomic inside Redis.
type StockReservationService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	source      StockSource
	metrics     *metrics.Metrics

	// Per-item mutex serializing resyncs and manual adjustments
	itemMu sync.Map // map[uuid.UUID]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewStockReservationService starts the mutex janitor. Call Stop() during shutdown.
func NewStockReservationService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, source StockSource, m *metrics.Metrics) *StockReservationService {
	svc := &StockReservationService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		source:      source,
		metrics:     m,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *StockReservationService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("StockReservationService stopped")
	}
}

// SyncOnStartup copies every inventory quantity into Redis, 500 rows per pipeline.
// Should be called before accepting traffic.
func (s *StockReservationService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting stock sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	offset := 0
	totalSynced := 0
	for {
		levels, err := s.source.FindStockLevels(s.db.WithContext(ctx), offset, syncBatchSize)
		if err != nil {
			s.log.Errorf("Failed to query stock at offset %d: %+v", offset, err)
			return fmt.Errorf("query stock at offset %d: %w", offset, err)
		}
		if len(levels) == 0 {
			break
		}

		// New pipeline per batch so memory does not accumulate across batches
		pipe := s.redisClient.TxPipeline()
		for _, level := range levels {
			pipe.Set(ctx, stockKey(level.ID), level.Quantity, stockKeyTTL)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(levels)
		if len(levels) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Stock sync completed: %d items synced in %v", totalSynced, time.Since(startTime))
	return nil
}

// SyncItem overwrites the Redis quantity of one item with the database value
func (s *StockReservationService) SyncItem(ctx context.Context, inventoryID uuid.UUID) error {
	mt := s.getItemMutex(inventoryID)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	level, err := s.source.FindStockLevel(s.db.WithContext(ctx), inventoryID)
	if err != nil {
		s.log.Warnf("Failed to query stock for item %s: %+v", inventoryID, err)
		return fmt.Errorf("query stock for item %s: %w", inventoryID, err)
	}
	if level == nil {
		return s.redisClient.Del(ctx, stockKey(inventoryID)).Err()
	}

	if err := s.redisClient.Set(ctx, stockKey(inventoryID), level.Quantity, stockKeyTTL).Err(); err != nil {
		s.log.Warnf("Failed to sync stock for item %s: %+v", inventoryID, err)
		return fmt.Errorf("redis sync for item %s: %w", inventoryID, err)
	}
	return nil
}

// SetLevel records a quantity just committed to the database
func (s *StockReservationService) SetLevel(ctx context.Context, inventoryID uuid.UUID, quantity int) error {
	mt := s.getItemMutex(inventoryID)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if err := s.redisClient.Set(ctx, stockKey(inventoryID), quantity, stockKeyTTL).Err(); err != nil {
		s.log.Warnf("Failed to set stock for item %s: %+v", inventoryID, err)
		return fmt.Errorf("set stock for item %s: %w", inventoryID, err)
	}
	return nil
}

// Remove deletes the stock key and drops the item mutex
func (s *StockReservationService) Remove(ctx context.Context, inventoryID uuid.UUID) error {
	mt := s.getItemMutex(inventoryID)
	mt.mu.Lock()
	defer func() {
		mt.mu.Unlock()
		s.itemMu.Delete(inventoryID)
	}()

	if err := s.redisClient.Del(ctx, stockKey(inventoryID)).Err(); err != nil {
		s.log.Warnf("Failed to delete stock key for item %s: %+v", inventoryID, err)
		return fmt.Errorf("delete stock key for item %s: %w", inventoryID, err)
	}
	return nil
}

// Reserve atomically takes all lines or none. Missing keys are synced from the
// database and the reservation is retried once.
func (s *StockReservationService) Reserve(ctx context.Context, lines []StockLine) error {
	lines = mergeLines(lines)
	if len(lines) == 0 {
		return nil
	}
	keys, args := scriptArgs(lines)

	for attempt := 0; attempt < 2; attempt++ {
		result, err := reserveStockScript.Run(ctx, s.redisClient, keys, args...).Int()
		if err != nil {
			s.log.Warnf("Failed Lua script Reserve: %+v", err)
			s.metrics.StockReservation("error")
			return fmt.Errorf("lua reserve stock: %w", err)
		}

		switch result {
		case 1:
			s.metrics.StockReservation("reserved")
			return nil
		case -1:
			s.metrics.StockReservation("insufficient")
			return ErrInsufficientStock
		}

		if attempt == 0 {
			for _, line := range lines {
				if err := s.SyncItem(ctx, line.InventoryID); err != nil {
					return err
				}
			}
		}
	}

	// Still missing after a sync: the item no longer exists
	s.metrics.StockReservation("insufficient")
	return ErrInsufficientStock
}

// Release returns previously reserved quantities, used to compensate a failed order
// and on cancellation
func (s *StockReservationService) Release(ctx context.Context, lines []StockLine) error {
	lines = mergeLines(lines)
	if len(lines) == 0 {
		return nil
	}
	keys, args := scriptArgs(lines)

	if err := releaseStockScript.Run(ctx, s.redisClient, keys, args...).Err(); err != nil {
		s.log.Warnf("Failed Lua script Release: %+v", err)
		return fmt.Errorf("lua release stock: %w", err)
	}
	s.metrics.StockReservation("released")
	return nil
}

func stockKey(inventoryID uuid.UUID) string {
	return RedisStockKeyPrefix + inventoryID.String()
}

// mergeLines sums duplicate items and drops non-positive quantities. The result is
// sorted for stable key order.
func mergeLines(lines []StockLine) []StockLine {
	totals := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if line.Quantity > 0 {
			totals[line.InventoryID] += line.Quantity
		}
	}

	merged := make([]StockLine, 0, len(totals))
	for id, qty := range totals {
		merged = append(merged, StockLine{InventoryID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].InventoryID.String() < merged[j].InventoryID.String()
	})
	return merged
}

func scriptArgs(lines []StockLine) ([]string, []interface{}) {
	keys := make([]string, len(lines))
	args := make([]interface{}, len(lines))
	for i, line := range lines {
		keys[i] = stockKey(line.InventoryID)
		args[i] = strconv.Itoa(line.Quantity)
	}
	return keys, args
}

// getItemMutex returns mutex for a specific inventory item
func (s *StockReservationService) getItemMutex(inventoryID uuid.UUID) *mutexWithTimestamp {
	mt, _ := s.itemMu.LoadOrStore(inventoryID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *StockReservationService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStaleMutexes removes mutexes unused since cutoff. lastUsed is checked while
// holding the lock so a concurrent user cannot slip in between.
func (s *StockReservationService) cleanupStaleMutexes(cutoff time.Time) int {
	cutoffUnix := cutoff.Unix()
	var cleaned int

	s.itemMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffUnix {
				s.itemMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
	return cleaned
}
