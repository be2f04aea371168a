package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed build locking.
type LockStoreInterface interface {
	AcquireBuildLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error)
	ReleaseBuildLock(ctx context.Context, tripID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface = (*LockStore)(nil)
)
