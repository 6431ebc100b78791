package cache

import (
	"testing"
	"time"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPermissionCache_GetSet(t *testing.T) {
	c := NewPermissionCache(time.Minute)
	userID := uuid.New()
	perms := rbac.PermissionSet{Navigation: true}

	_, _, found := c.Get(userID)
	assert.False(t, found)

	c.Set(userID, perms, []string{"redakteur"})

	gotPerms, gotSlugs, found := c.Get(userID)
	assert.True(t, found)
	assert.Equal(t, perms, gotPerms)
	assert.Equal(t, []string{"redakteur"}, gotSlugs)
}

func TestPermissionCache_Expiry(t *testing.T) {
	c := NewPermissionCache(-time.Second) // entries are born expired
	userID := uuid.New()

	c.Set(userID, rbac.PermissionSet{Tags: true}, nil)

	_, _, found := c.Get(userID)
	assert.False(t, found)

	c.Sweep()
	c.mu.RLock()
	assert.Empty(t, c.cache)
	c.mu.RUnlock()
}

func TestPermissionCache_Invalidate(t *testing.T) {
	c := NewPermissionCache(time.Minute)
	a, b := uuid.New(), uuid.New()

	c.Set(a, rbac.PermissionSet{Tags: true}, nil)
	c.Set(b, rbac.PermissionSet{Messages: true}, nil)

	c.Invalidate(a)
	_, _, found := c.Get(a)
	assert.False(t, found)
	_, _, found = c.Get(b)
	assert.True(t, found)

	c.Purge()
	_, _, found = c.Get(b)
	assert.False(t, found)
}
