package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_PairLifecycle(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewTokenStore(client, newTestLogger())
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.StorePair(ctx, userID, "a1", time.Hour, "r1", 24*time.Hour))
	assert.Equal(t, time.Hour, mr.TTL(AccessTokenKey(userID, "a1")))

	ok, err := store.IsAccessValid(ctx, userID, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	revoked, err := store.RevokeRefresh(ctx, userID, "r1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// second rotation attempt with the same token loses
	revoked, err = store.RevokeRefresh(ctx, userID, "r1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeAccess(ctx, userID, "a1"))
	ok, err = store.IsAccessValid(ctx, userID, "a1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_RevokeAllOnlyTouchesUser(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewTokenStore(client, newTestLogger())
	ctx := context.Background()
	userID, other := uuid.New(), uuid.New()

	for i := 0; i < 450; i++ {
		require.NoError(t, store.StorePair(ctx, userID, fmt.Sprintf("a%d", i), time.Hour, fmt.Sprintf("r%d", i), time.Hour))
	}
	require.NoError(t, store.StorePair(ctx, other, "a", time.Hour, "r", time.Hour))

	revoked, err := store.RevokeAll(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(900), revoked)
	left, err := client.Keys(ctx, "*:"+userID.String()+":*").Result()
	require.NoError(t, err)
	assert.Empty(t, left)

	ok, err := store.IsRefreshValid(ctx, userID, "r10")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.IsAccessValid(ctx, other, "a")
	require.NoError(t, err)
	assert.True(t, ok)
}
