package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Connect parses a Redis URL and returns a client, or nil when the URL is
// empty or invalid. A nil client is a valid input to New: every cache
// operation then degrades to a miss / no-op, and callers recompute from
// the source of truth.
func Connect(url string, log *logrus.Logger) *redis.Client {
	if url == "" {
		log.Warn("REDIS_URL not set – caching disabled")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warnf("invalid REDIS_URL, caching disabled: %v", err)
		return nil
	}
	return redis.NewClient(opts)
}

// Cache is a namespaced key-value cache with per-entry TTL. Values are
// stored as JSON blobs. Cache entries are soft state: a miss is treated
// identically whether caused by expiry, absence, or an unreachable server.
type Cache struct {
	rdb       *redis.Client
	namespace string
	log       *logrus.Logger
}

func New(rdb *redis.Client, namespace string, log *logrus.Logger) *Cache {
	return &Cache{rdb: rdb, namespace: namespace, log: log}
}

func (c *Cache) key(key string) string {
	return fmt.Sprintf("%s:%s", c.namespace, key)
}

// Available reports whether a cache server is configured at all.
func (c *Cache) Available() bool {
	return c.rdb != nil
}

// Get unmarshals the cached value into dest and reports whether it was a
// hit. Errors are logged and reported as misses.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debugf("cache get %s: %v", c.key(key), err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warnf("cache get %s: bad payload: %v", c.key(key), err)
		return false
	}
	return true
}

// Set stores value under key for ttl. Failures are logged, not returned:
// losing a cache write never loses correctness.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("cache set %s: marshal: %v", c.key(key), err)
		return
	}
	if err := c.rdb.Set(ctx, c.key(key), payload, ttl).Err(); err != nil {
		c.log.Debugf("cache set %s: %v", c.key(key), err)
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(key)).Err(); err != nil {
		c.log.Debugf("cache delete %s: %v", c.key(key), err)
	}
}
