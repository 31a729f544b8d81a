// Package cache provides the TTL-based in-memory store for computed wrapped
// summaries. Caching lives entirely in the orchestration layer; the
// analytics engine itself is stateless and never sees this package.
package cache

import (
	"fmt"
	"sync"
	"time"

	"sound-rewind/internal/domain"
)

// EngineVersion is baked into every cache key so that a deploy with changed
// scoring semantics can never serve a summary computed by older code.
const EngineVersion = 3

// Key builds the cache key for one account's summary.
func Key(accountID string) string {
	return fmt.Sprintf("wrapped:%s:v%d", accountID, EngineVersion)
}

type entry struct {
	summary   *domain.WrappedSummary
	expiresAt time.Time
}

// SummaryCache is a TTL cache of wrapped summaries keyed by account and
// engine version. Safe for concurrent use.
type SummaryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// New creates a SummaryCache with the specified TTL.
func New(ttl time.Duration) *SummaryCache {
	return &SummaryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the cached summary for an account and true when present and
// not expired.
func (c *SummaryCache) Get(accountID string) (*domain.WrappedSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[Key(accountID)]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.summary, true
}

// Set stores a summary under the account's versioned key with the default TTL.
func (c *SummaryCache) Set(accountID string, summary *domain.WrappedSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[Key(accountID)] = entry{
		summary:   summary,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the cached summary for an account, if any.
func (c *SummaryCache) Invalidate(accountID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, Key(accountID))
}

// Cleanup removes expired entries.
func (c *SummaryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries in the cache (including expired ones).
func (c *SummaryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
