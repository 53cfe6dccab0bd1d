// Package cache provides an in-process implementation of the cache port. It
// backs the SLA deduplication markers and the tracking read cache. Entries
// live in one process; a restart drops them, which at worst causes one
// duplicate alert or a cache miss.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"parcelhub/internal/pkg/errs"
)

const janitorInterval = time.Minute

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a TTL key-value store with topic publish fan-out. All
// methods are safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	subs    map[string]map[int]chan string
	nextSub int
	done    chan struct{}
	closed  sync.Once
}

// NewMemoryCache creates an empty cache and starts the expiry janitor.
// Callers own the cache lifecycle and must Close it on shutdown.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]entry),
		subs:    make(map[string]map[int]chan string),
		done:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get retrieves the value stored under key. Expired entries are purged on
// access, so a hit is always within its TTL.
func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", errs.NewObjectNotFoundError("cache key", key)
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", errs.NewObjectNotFoundError("cache key", key)
	}

	return e.value, nil
}

// SetWithTTL stores value under key, expiring after ttl.
func (c *MemoryCache) SetWithTTL(_ context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}
	if ttl <= 0 {
		return errs.NewValueIsRequiredError("ttl")
	}

	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()

	return nil
}

// Exists reports whether key is present and unexpired.
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Publish broadcasts payload to live subscribers of topic. Slow subscribers
// are skipped rather than blocking the publisher.
func (c *MemoryCache) Publish(_ context.Context, topic, payload string) error {
	if topic == "" {
		return errs.NewValueIsRequiredError("topic")
	}

	c.mu.RLock()
	channels := make([]chan string, 0, len(c.subs[topic]))
	for _, ch := range c.subs[topic] {
		channels = append(channels, ch)
	}
	c.mu.RUnlock()

	for _, ch := range channels {
		select {
		case ch <- payload:
		default:
		}
	}

	return nil
}

// Subscribe registers a listener on topic and returns its delivery channel
// plus a cancel function. The channel is buffered; messages published while
// the buffer is full are dropped for that subscriber.
func (c *MemoryCache) Subscribe(topic string) (<-chan string, func()) {
	ch := make(chan string, 16)

	c.mu.Lock()
	if c.subs[topic] == nil {
		c.subs[topic] = make(map[int]chan string)
	}
	id := c.nextSub
	c.nextSub++
	c.subs[topic][id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if subs, ok := c.subs[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(c.subs, topic)
			}
		}
		c.mu.Unlock()
	}

	return ch, cancel
}

// Close stops the expiry janitor. The cache remains usable; entries simply
// stop being swept in the background.
func (c *MemoryCache) Close() {
	c.closed.Do(func() { close(c.done) })
}

func (c *MemoryCache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.sweep(now)
		}
	}
}

func (c *MemoryCache) sweep(now time.Time) {
	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
