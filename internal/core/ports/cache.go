package ports

import (
	"context"
	"time"
)

// Cache is a key-value store with best-effort TTL expiry plus a topic
// publish facility. It backs the SLA deduplication markers and the tracking
// read cache. Losing a key early only causes a duplicate alert or a cache
// miss; callers never depend on a key surviving its full TTL.
type Cache interface {
	// Get retrieves the value stored under key.
	// Returns a not-found error when the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// SetWithTTL stores value under key, expiring after ttl.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Exists reports whether key is present and unexpired.
	Exists(ctx context.Context, key string) (bool, error)

	// Publish broadcasts payload to live subscribers of topic.
	Publish(ctx context.Context, topic, payload string) error
}
