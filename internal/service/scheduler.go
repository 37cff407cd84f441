package service

import (
	"context"
	"fmt"
	"time"

	"dawaksahl-api/internal/infrastructure/metrics"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 5 * time.Minute

// JobFunc runs one maintenance pass and reports how many rows it touched
type JobFunc func(ctx context.Context) (int64, error)

// Scheduler runs maintenance jobs on cron specs without a seconds field
type Scheduler struct {
	cron    *cron.Cron
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewScheduler(log *logrus.Logger, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		log:     log,
		metrics: m,
	}
}

// Register adds a job; spec accepts descriptors such as "@every 15m" and "@daily"
func (s *Scheduler) Register(name, spec string, job JobFunc) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("register job %s: %w", name, err)
	}
	s.log.Infof("Scheduled job %s (%s)", name, spec)
	return nil
}

func (s *Scheduler) run(name string, job JobFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	affected, err := job(ctx)
	s.metrics.JobRun(name, err == nil)
	if err != nil {
		s.log.Warnf("Failed to run job %s: %+v", name, err)
		return
	}

	s.log.WithFields(logrus.Fields{
		"job":         name,
		"affected":    affected,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Job completed")
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out with jobs still running")
	}
}
