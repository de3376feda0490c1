package auth

import (
	"sync"
	"time"
)

// TokenCache holds at most one authorization per client instance. The partner
// issues one token per client id, so a single slot is the whole cache.
type TokenCache struct {
	mu          sync.Mutex
	current     Authorization
	hasToken    bool
	renewMargin time.Duration

	now func() time.Time
}

// NewTokenCache builds a cache judging validity against the given clock. A
// nil clock means wall time.
func NewTokenCache(renewMargin time.Duration, now func() time.Time) *TokenCache {
	if now == nil {
		now = time.Now
	}
	return &TokenCache{
		renewMargin: renewMargin,
		now:         now,
	}
}

// Get returns the cached authorization when it is still presentable. The
// second return is false when the slot is empty or inside the renew margin.
func (c *TokenCache) Get() (Authorization, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasToken || !c.current.Valid(c.now(), c.renewMargin) {
		return Authorization{}, false
	}
	return c.current, true
}

// Set replaces the cached authorization.
func (c *TokenCache) Set(authorization Authorization) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = authorization
	c.hasToken = true
}

// Clear drops the cached authorization.
func (c *TokenCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Authorization{}
	c.hasToken = false
}
