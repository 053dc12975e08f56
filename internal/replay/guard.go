// Package replay remembers accepted webhook signatures so that a request
// which verifies correctly is processed at most once within a window.
//
// A guard is consulted only after a signature has verified; it never
// influences the verdict of the signature package itself.
package replay

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"webhook-verifier/internal/common/errors"
	"webhook-verifier/internal/redis"
)

// Guard records signature keys.
type Guard interface {
	// Seen marks key as used for ttl and reports whether it was already marked.
	Seen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Key derives a storage key from a provider and the signature it sent. The
// signature is hashed so raw MACs never reach the store.
func Key(provider, signature string) string {
	sum := sha256.Sum256([]byte(signature))
	return "replay:" + provider + ":" + hex.EncodeToString(sum[:])
}

// store is the subset of the redis client the guard needs.
type store interface {
	SetOnce(ctx context.Context, key string, expiration time.Duration) (bool, error)
}

// RedisGuard keeps keys in Redis using SET NX with an expiry.
type RedisGuard struct {
	store store
}

// NewRedisGuard creates a guard backed by client.
func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{store: client}
}

// Seen implements Guard.
func (g *RedisGuard) Seen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, errors.ValidationError("replay ttl must be positive")
	}

	created, err := g.store.SetOnce(ctx, key, ttl)
	if err != nil {
		return false, errors.ConnectionError("replay store unavailable", err)
	}
	return !created, nil
}
