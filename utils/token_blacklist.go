package utils

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "jwt:blacklist:"

// TokenBlacklist remembers revoked token IDs until they would have expired anyway.
// It prefers Redis and falls back to process memory when no client is configured.
type TokenBlacklist struct {
	rc *redis.Client

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewTokenBlacklist creates a blacklist backed by rc, or by memory when rc is nil.
func NewTokenBlacklist(rc *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rc: rc, revoked: map[string]time.Time{}}
}

// Revoke blacklists the token ID until expiresAt.
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if b.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return b.rc.Set(ctx, blacklistPrefix+tokenID, "1", ttl).Err()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.cleanupLocked()
	b.revoked[tokenID] = expiresAt
	return nil
}

// IsRevoked reports whether the token ID was revoked before its natural expiration.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) bool {
	if b.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		n, err := b.rc.Exists(ctx, blacklistPrefix+tokenID).Result()
		if err != nil {
			// fail open so a Redis outage does not lock every API client out
			Sugar.Warnf("token blacklist lookup failed err=%v", err)
			return false
		}
		return n > 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	expiresAt, ok := b.revoked[tokenID]
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		delete(b.revoked, tokenID)
		return false
	}
	return true
}

func (b *TokenBlacklist) cleanupLocked() {
	now := time.Now()
	for id, exp := range b.revoked {
		if now.After(exp) {
			delete(b.revoked, id)
		}
	}
}
