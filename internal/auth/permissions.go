package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/finnbusse/grabbe-cms/internal/infra/cache"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/labstack/echo/v4"
)

// PermissionMiddleware gates routes on the granular permission model.
// It resolves the authenticated user's effective permissions (through
// the optional cache), applies rbac.Guard and stores the resolved
// snapshot in the request context for the handler.
type PermissionMiddleware struct {
	resolver *rbac.Resolver
	cache    *cache.PermissionCache
}

// NewPermissionMiddleware wires the resolver; cache may be nil to
// disable memoization.
func NewPermissionMiddleware(resolver *rbac.Resolver, permCache *cache.PermissionCache) *PermissionMiddleware {
	return &PermissionMiddleware{
		resolver: resolver,
		cache:    permCache,
	}
}

// RequireCapability denies with 403 unless the user's effective
// permissions grant the capability. Resolution failures deny: a user
// whose roles cannot be fetched has no permissions.
func (m *PermissionMiddleware) RequireCapability(capability rbac.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			perms, _, err := m.resolve(c)
			if err != nil {
				return respondError(c, http.StatusForbidden, msgPermissionCheckFailed)
			}

			if err := rbac.Guard(perms, capability); err != nil {
				var denied *rbac.AccessDeniedError
				if errors.As(err, &denied) {
					c.Logger().Warnf("access denied: user lacks capability %q", denied.Capability)
					return respondError(c, http.StatusForbidden, fmt.Sprintf(msgMissingCapabilityFmt, denied.Capability))
				}
				return respondError(c, http.StatusForbidden, msgPermissionCheckFailed)
			}

			return next(c)
		}
	}
}

// LoadPermissions resolves the caller's permission snapshot into the
// request context without gating on any capability. A failed resolution
// leaves the all-deny default in place and lets the request continue.
func (m *PermissionMiddleware) LoadPermissions() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, _, err := m.resolve(c); err != nil {
				c.Logger().Warnf("permission resolution failed: %v", err)
			}
			return next(c)
		}
	}
}

// RequireAdministrator gates routes on the administrator role slug,
// bypassing the granular permission set.
func (m *PermissionMiddleware) RequireAdministrator() echo.MiddlewareFunc {
	return m.requireSlugs(msgAdministratorOnly, rbac.IsAdministrator)
}

// RequireAdministratorOrSchulleitung gates routes on either leadership
// slug.
func (m *PermissionMiddleware) RequireAdministratorOrSchulleitung() echo.MiddlewareFunc {
	return m.requireSlugs(msgLeadershipOnly, rbac.IsAdministratorOrSchulleitung)
}

func (m *PermissionMiddleware) requireSlugs(denyMessage string, allowed func([]string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, slugs, err := m.resolve(c)
			if err != nil {
				return respondError(c, http.StatusForbidden, msgPermissionCheckFailed)
			}

			if !allowed(slugs) {
				return respondError(c, http.StatusForbidden, denyMessage)
			}

			return next(c)
		}
	}
}

// resolve loads the user's permission snapshot and stores it in the
// request context so handlers can read scopes and slugs without a
// second fetch.
func (m *PermissionMiddleware) resolve(c echo.Context) (rbac.PermissionSet, []string, error) {
	userID, err := GetUserID(c)
	if err != nil {
		return rbac.Empty(), nil, err
	}

	if m.cache != nil {
		if perms, slugs, found := m.cache.Get(userID); found {
			c.Set(ContextKeyPermissions, perms)
			c.Set(ContextKeyRoleSlugs, slugs)
			return perms, slugs, nil
		}
	}

	ctx := c.Request().Context()
	perms, err := m.resolver.EffectivePermissions(ctx, userID)
	if err != nil {
		return rbac.Empty(), nil, err
	}
	slugs, err := m.resolver.RoleSlugs(ctx, userID)
	if err != nil {
		return rbac.Empty(), nil, err
	}

	if m.cache != nil {
		m.cache.Set(userID, perms, slugs)
	}

	c.Set(ContextKeyPermissions, perms)
	c.Set(ContextKeyRoleSlugs, slugs)
	return perms, slugs, nil
}

// GetPermissions returns the permission snapshot stored by the
// middleware; absence yields the all-deny default.
func GetPermissions(c echo.Context) rbac.PermissionSet {
	if perms, ok := c.Get(ContextKeyPermissions).(rbac.PermissionSet); ok {
		return perms
	}
	return rbac.Empty()
}

// GetRoleSlugs returns the role slugs stored by the middleware.
func GetRoleSlugs(c echo.Context) []string {
	if slugs, ok := c.Get(ContextKeyRoleSlugs).([]string); ok {
		return slugs
	}
	return nil
}
