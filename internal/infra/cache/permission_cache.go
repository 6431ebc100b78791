package cache

import (
	"sync"
	"time"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/google/uuid"
)

// entry holds a resolved permission snapshot for one user.
type entry struct {
	perms      rbac.PermissionSet
	slugs      []string
	expiryTime time.Time
}

// PermissionCache memoizes resolved effective permissions per user.
// Because merge is pure and idempotent, caching is an optimization
// only; correctness never depends on it. Writes to roles or
// assignments must call Invalidate for the affected users (or Purge).
type PermissionCache struct {
	mu    sync.RWMutex
	cache map[uuid.UUID]entry
	ttl   time.Duration
}

func NewPermissionCache(ttl time.Duration) *PermissionCache {
	return &PermissionCache{
		cache: make(map[uuid.UUID]entry),
		ttl:   ttl,
	}
}

// Get returns the cached snapshot if present and not expired.
func (c *PermissionCache) Get(userID uuid.UUID) (rbac.PermissionSet, []string, bool) {
	c.mu.RLock()
	e, found := c.cache[userID]
	c.mu.RUnlock()

	if found && time.Now().Before(e.expiryTime) {
		return e.perms, e.slugs, true
	}
	return rbac.Empty(), nil, false
}

func (c *PermissionCache) Set(userID uuid.UUID, perms rbac.PermissionSet, slugs []string) {
	c.mu.Lock()
	c.cache[userID] = entry{
		perms:      perms,
		slugs:      slugs,
		expiryTime: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate drops one user's snapshot, for role assignment changes.
func (c *PermissionCache) Invalidate(userID uuid.UUID) {
	c.mu.Lock()
	delete(c.cache, userID)
	c.mu.Unlock()
}

// Purge drops every snapshot, for role permission edits that may
// affect any number of users.
func (c *PermissionCache) Purge() {
	c.mu.Lock()
	c.cache = make(map[uuid.UUID]entry)
	c.mu.Unlock()
}

// Sweep removes expired entries.
func (c *PermissionCache) Sweep() {
	now := time.Now()
	c.mu.Lock()
	for userID, e := range c.cache {
		if now.After(e.expiryTime) {
			delete(c.cache, userID)
		}
	}
	c.mu.Unlock()
}
