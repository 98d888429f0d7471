// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/postly/internal/platform/constants"
)

// NopRevocationStore never revokes anything. Logout then only clears the cookie.
type NopRevocationStore struct{}

// Revoke does nothing.
func (NopRevocationStore) Revoke(context.Context, string, time.Time) error { return nil }

// IsRevoked always reports false.
func (NopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// # Redis

// RedisRevocationStore keeps revoked token IDs in Redis until the token would expire.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a Redis-backed [RevocationStore].
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

/*
Revoke marks tokenID as logged out until the given expiry.

Tokens that already expired are not stored; verification rejects them anyway.
*/
func (store *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	timeToLive := time.Until(until)
	if timeToLive <= 0 {
		return nil
	}

	if err := store.client.Set(ctx, constants.RedisPrefixRevokedSession+tokenID, "1", timeToLive).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	return nil
}

// IsRevoked reports whether tokenID was logged out.
func (store *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := store.client.Exists(ctx, constants.RedisPrefixRevokedSession+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis_session_lookup_failed: %w", err)
	}

	return count > 0, nil
}
