package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	accessTokenPrefix  = "access_token"
	refreshTokenPrefix = "refresh_token"

	revokeScanCount = 200
)

// TokenStore whitelists issued tokens in Redis. A token is valid only while its key exists;
// the key TTL matches the token expiry.
type TokenStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewTokenStore(redisClient *redis.Client, log *logrus.Logger) *TokenStore {
	return &TokenStore{redisClient: redisClient, log: log}
}

func AccessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", accessTokenPrefix, userID.String(), tokenID)
}

func RefreshTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", refreshTokenPrefix, userID.String(), tokenID)
}

// StorePair whitelists an access/refresh pair in one round trip
func (s *TokenStore) StorePair(ctx context.Context, userID uuid.UUID, accessID string, accessTTL time.Duration, refreshID string, refreshTTL time.Duration) error {
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, AccessTokenKey(userID, accessID), "valid", accessTTL)
	pipe.Set(ctx, RefreshTokenKey(userID, refreshID), "valid", refreshTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *TokenStore) IsAccessValid(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	return s.exists(ctx, AccessTokenKey(userID, tokenID))
}

func (s *TokenStore) IsRefreshValid(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	return s.exists(ctx, RefreshTokenKey(userID, tokenID))
}

// RevokeRefresh deletes the refresh token and reports whether it was still whitelisted.
// Rotation relies on this to let only one concurrent refresh win.
func (s *TokenStore) RevokeRefresh(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	deleted, err := s.redisClient.Del(ctx, RefreshTokenKey(userID, tokenID)).Result()
	return deleted > 0, err
}

func (s *TokenStore) RevokeAccess(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return s.redisClient.Del(ctx, AccessTokenKey(userID, tokenID)).Err()
}

// RevokeAll deletes every access and refresh token of the user. SCAN keeps Redis responsive
// where KEYS would block on a large keyspace. Keys are collected before anything is deleted
// so the cursor walks an unchanged keyspace.
func (s *TokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	var keys []string
	for _, prefix := range []string{accessTokenPrefix, refreshTokenPrefix} {
		pattern := fmt.Sprintf("%s:%s:*", prefix, userID.String())
		iter := s.redisClient.Scan(ctx, 0, pattern, revokeScanCount).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return 0, err
		}
	}

	var revoked int64
	for start := 0; start < len(keys); start += revokeScanCount {
		end := min(start+revokeScanCount, len(keys))
		n, err := s.redisClient.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return revoked, err
		}
		revoked += n
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "revoked": revoked}).Info("Revoked user tokens")
	return revoked, nil
}

func (s *TokenStore) exists(ctx context.Context, key string) (bool, error) {
	n, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
