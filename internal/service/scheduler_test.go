package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dawaksahl-api/internal/infrastructure/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RegisterRejectsBadSpec(t *testing.T) {
	s := NewScheduler(newTestLogger(), metrics.New())
	err := s.Register("broken", "every now and then", func(ctx context.Context) (int64, error) { return 0, nil })
	assert.Error(t, err)

	require.NoError(t, s.Register("expire-orders", "@every 15m", func(ctx context.Context) (int64, error) { return 0, nil }))
	require.NoError(t, s.Register("purge-notifications", "@daily", func(ctx context.Context) (int64, error) { return 0, nil }))
}

func TestScheduler_RunGivesJobDeadline(t *testing.T) {
	s := NewScheduler(newTestLogger(), nil)

	var hadDeadline bool
	s.run("sample", func(ctx context.Context) (int64, error) {
		_, hadDeadline = ctx.Deadline()
		return 3, nil
	})
	assert.True(t, hadDeadline)

	// A failing job is logged, not propagated
	s.run("failing", func(ctx context.Context) (int64, error) { return 0, errors.New("db down") })
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(newTestLogger(), metrics.New())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
