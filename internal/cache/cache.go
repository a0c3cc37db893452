// Package cache memoizes generated assistant replies so repeated
// questions with identical context skip the hosted-model round trip.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/1adityakadam/financial-calculators/internal/session"
)

// DefaultTTL bounds how long a generated reply is reused.
const DefaultTTL = 15 * time.Minute

type entry struct {
	response string
	storedAt time.Time
}

// Cache is a TTL-bounded response cache safe for concurrent use.
type Cache struct {
	entries sync.Map
	ttl     time.Duration
}

// New returns a cache with the given TTL; ttl <= 0 uses DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl}
}

// Key derives a cache key from a prompt and the conversation so far.
func Key(systemPrompt string, messages []session.Message) string {
	h := sha256.New()
	h.Write([]byte(systemPrompt))
	for _, msg := range messages {
		h.Write([]byte(msg.Role))
		h.Write([]byte(msg.Content))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get returns the cached reply for key, if present and fresh.
func (c *Cache) Get(key string) (string, bool) {
	val, ok := c.entries.Load(key)
	if !ok {
		return "", false
	}
	e := val.(entry)
	if time.Since(e.storedAt) > c.ttl {
		c.entries.Delete(key)
		return "", false
	}
	return e.response, true
}

// Put stores a reply under key.
func (c *Cache) Put(key, response string) {
	c.entries.Store(key, entry{response: response, storedAt: time.Now()})
}
