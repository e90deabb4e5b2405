// Package mem provides an in-memory TTL page cache.
package mem

import (
	"sync"
	"time"

	"github.com/fwojciec/offerscan"
)

// DefaultTTL is how long cached pages stay valid. Short enough that a
// rescan after a site update sees fresh content.
const DefaultTTL = 15 * time.Minute

// Ensure PageCache implements offerscan.PageCache at compile time.
var _ offerscan.PageCache = (*PageCache)(nil)

// PageCache is a URL-keyed in-memory cache with per-entry expiry.
// It is safe for concurrent use.
type PageCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	page      *offerscan.Page
	expiresAt time.Time
}

// CacheOption configures a PageCache.
type CacheOption func(*PageCache)

// WithTTL sets the entry lifetime. Defaults to DefaultTTL.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *PageCache) {
		c.ttl = ttl
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *PageCache) {
		c.now = now
	}
}

// NewPageCache creates a new PageCache.
func NewPageCache(opts ...CacheOption) *PageCache {
	c := &PageCache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached page for a URL, or false on miss or expiry.
func (c *PageCache) Get(url string) (*offerscan.Page, bool) {
	c.mu.RLock()
	e, ok := c.entries[url]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Recheck under the write lock; a concurrent Put may have
		// refreshed the entry.
		if cur, ok := c.entries[url]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, url)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.page, true
}

// Put stores a page under its URL for the cache's TTL.
func (c *PageCache) Put(url string, page *offerscan.Page) {
	if page == nil {
		return
	}
	c.mu.Lock()
	c.entries[url] = entry{page: page, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Len returns the number of entries, including any not yet swept.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
