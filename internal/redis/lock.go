package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireBuildLock attempts to acquire the itinerary build lock for a trip.
// Returns true if the lock was acquired, false if another build holds it.
func (s *LockStore) AcquireBuildLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:build:%s", tripID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseBuildLock releases the build lock for a trip.
func (s *LockStore) ReleaseBuildLock(ctx context.Context, tripID string) error {
	key := fmt.Sprintf("lock:build:%s", tripID)

	return s.client.Del(ctx, key).Err()
}
