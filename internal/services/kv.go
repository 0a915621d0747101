package services

import (
	"context"
	"time"
)

// KV is the cache surface the services depend on. *cache.Cache satisfies
// it; tests use an in-memory map. A Get miss means the same thing whether
// the entry expired, never existed, or the cache is down.
type KV interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Available() bool
}
