package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/infra/cache"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/finnbusse/grabbe-cms/internal/repository"
)

type UserRoleHandler struct {
	userRoleRepo repository.UserRoleRepository
	roleRepo     repository.RoleRepository
	permCache    *cache.PermissionCache
	auditLogger  *audit.Logger
}

func NewUserRoleHandler(
	userRoleRepo repository.UserRoleRepository,
	roleRepo repository.RoleRepository,
	permCache *cache.PermissionCache,
	auditLogger *audit.Logger,
) *UserRoleHandler {
	return &UserRoleHandler{
		userRoleRepo: userRoleRepo,
		roleRepo:     roleRepo,
		permCache:    permCache,
		auditLogger:  auditLogger,
	}
}

type SetUserRolesRequest struct {
	RoleIDs []uuid.UUID `json:"role_ids"`
}

// SetUserRoles replaces the target user's role assignments. The route
// is limited to administrator or schulleitung; on top of that, only an
// administrator may hand out the administrator or schulleitung roles
// themselves. A schulleitung actor attempting that is denied before
// anything is written.
func (h *UserRoleHandler) SetUserRoles(c echo.Context) error {
	targetUserID, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	var req SetUserRolesRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if !rbac.IsAdministrator(auth.GetRoleSlugs(c)) && len(req.RoleIDs) > 0 {
		slugs, err := h.roleRepo.SlugsByIDs(c.Request().Context(), req.RoleIDs)
		if err != nil {
			c.Logger().Errorf("Failed to resolve role slugs for assignment to user %s: %v", targetUserID, err)
			return respondError(c, http.StatusInternalServerError, msgResolveRoleSlugsFail)
		}
		for _, slug := range slugs {
			if rbac.IsRestrictedSlug(slug) {
				if h.auditLogger != nil {
					h.auditLogger.LogFromContext(c, audit.ResourceAssignment, &targetUserID, audit.ActionAssign, audit.StatusDenied, map[string]any{
						"restricted_slug": slug,
					})
				}
				return respondError(c, http.StatusForbidden, msgRestrictedRoleDenied)
			}
		}
	}

	if err := h.userRoleRepo.SetUserRoles(c.Request().Context(), targetUserID, req.RoleIDs); err != nil {
		c.Logger().Errorf("Failed to set roles for user %s: %v", targetUserID, err)
		return respondError(c, http.StatusInternalServerError, msgSetUserRolesFail)
	}

	// The target's next request must see the new assignment set.
	if h.permCache != nil {
		h.permCache.Invalidate(targetUserID)
	}

	if h.auditLogger != nil {
		roleIDs := make([]string, len(req.RoleIDs))
		for i, id := range req.RoleIDs {
			roleIDs[i] = id.String()
		}
		h.auditLogger.LogFromContext(c, audit.ResourceAssignment, &targetUserID, audit.ActionAssign, audit.StatusSuccess, map[string]any{
			"role_ids": roleIDs,
		})
	}

	return respondMessage(c, http.StatusOK, msgUserRolesUpdated)
}

// ListUserRoles returns the target user's current role assignments.
func (h *UserRoleHandler) ListUserRoles(c echo.Context) error {
	targetUserID, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	assigned, err := h.userRoleRepo.RolesForUser(c.Request().Context(), targetUserID)
	if err != nil {
		c.Logger().Errorf("Failed to list roles for user %s: %v", targetUserID, err)
		return respondError(c, http.StatusInternalServerError, msgListRolesFail)
	}

	type assignedRoleResponse struct {
		RoleID uuid.UUID `json:"role_id"`
		Slug   string    `json:"slug"`
	}

	out := make([]assignedRoleResponse, len(assigned))
	for i, a := range assigned {
		out[i] = assignedRoleResponse{RoleID: a.RoleID, Slug: a.Slug}
	}

	return c.JSON(http.StatusOK, out)
}
