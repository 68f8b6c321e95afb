package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenRepository records revoked JWT ids until they would have expired anyway.
// Without redis it falls back to process memory.
type TokenRepository struct {
	Redis *redis.Client

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenRepository(rdb *redis.Client) *TokenRepository {
	return &TokenRepository{Redis: rdb, revoked: make(map[string]time.Time)}
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("football:token:revoked:%s", tokenID)
}

func (r *TokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if r.Redis != nil {
		return r.Redis.Set(ctx, revokedKey(tokenID), 1, ttl).Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r.Redis != nil {
		n, err := r.Redis.Exists(ctx, revokedKey(tokenID)).Result()
		return n > 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	expires, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expires) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
