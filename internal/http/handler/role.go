package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/domain/role"
	"github.com/finnbusse/grabbe-cms/internal/infra/cache"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/finnbusse/grabbe-cms/internal/repository"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
	"github.com/finnbusse/grabbe-cms/pkg/validator"
)

var slugInvalidChars = regexp.MustCompile("[^a-z0-9-]")

// normalizeSlug lowercases the slug and replaces every character
// outside [a-z0-9-] with a dash.
func normalizeSlug(slug string) string {
	return slugInvalidChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(slug)), "-")
}

type RoleHandler struct {
	roleRepo    repository.RoleRepository
	permCache   *cache.PermissionCache
	auditLogger *audit.Logger
}

func NewRoleHandler(roleRepo repository.RoleRepository, permCache *cache.PermissionCache, auditLogger *audit.Logger) *RoleHandler {
	return &RoleHandler{
		roleRepo:    roleRepo,
		permCache:   permCache,
		auditLogger: auditLogger,
	}
}

type CreateRoleRequest struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Permissions json.RawMessage `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        string          `json:"name"`
	Permissions json.RawMessage `json:"permissions"`
}

func (h *RoleHandler) ListRoles(c echo.Context) error {
	roles, err := h.roleRepo.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list roles: %v", err)
		return respondError(c, http.StatusInternalServerError, msgListRolesFail)
	}

	return c.JSON(http.StatusOK, roles)
}

// GetRole looks up a role by UUID, falling back to a slug lookup when
// the path parameter does not parse as a UUID.
func (h *RoleHandler) GetRole(c echo.Context) error {
	param := c.Param(paramID)

	var (
		r   *role.Role
		err error
	)
	if roleID, parseErr := uuid.Parse(param); parseErr == nil {
		r, err = h.roleRepo.GetByID(c.Request().Context(), roleID)
	} else {
		r, err = h.roleRepo.GetBySlug(c.Request().Context(), normalizeSlug(param))
	}
	if err != nil {
		return respondError(c, http.StatusNotFound, msgRoleNotFound)
	}

	return c.JSON(http.StatusOK, r)
}

func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req CreateRoleRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	slug := normalizeSlug(req.Slug)
	if slug == "" {
		return respondError(c, http.StatusBadRequest, msgRoleSlugRequired)
	}

	// Stored permission documents are never trusted as-is; whatever the
	// client sent is coerced into the closed shape before persisting.
	perms := rbac.CoerceJSON(req.Permissions)

	r, err := h.roleRepo.Create(c.Request().Context(), role.CreateRoleInput{
		Name:        req.Name,
		Slug:        slug,
		Permissions: perms,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateSlug) {
			return respondError(c, http.StatusConflict, msgSlugAlreadyExists)
		}
		c.Logger().Errorf("Failed to create role %s: %v", slug, err)
		return respondError(c, http.StatusInternalServerError, msgCreateRoleFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceRole, &r.ID, audit.ActionCreate, audit.StatusSuccess, map[string]any{
			"slug": r.Slug,
			"name": r.Name,
		})
	}

	return c.JSON(http.StatusCreated, r)
}

func (h *RoleHandler) UpdateRole(c echo.Context) error {
	roleID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidRoleID)
	}

	var req UpdateRoleRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	perms := rbac.CoerceJSON(req.Permissions)

	err = h.roleRepo.Update(c.Request().Context(), roleID, role.UpdateRoleInput{
		Name:        req.Name,
		Permissions: perms,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSystemRole):
			if h.auditLogger != nil {
				h.auditLogger.LogFromContext(c, audit.ResourceRole, &roleID, audit.ActionUpdate, audit.StatusDenied, nil)
			}
			return respondError(c, http.StatusForbidden, msgSystemRoleImmutable)
		case errors.Is(err, apperrors.ErrNotFound):
			return respondError(c, http.StatusNotFound, msgRoleNotFound)
		}
		c.Logger().Errorf("Failed to update role %s: %v", roleID, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateRoleFail)
	}

	// Edited permissions must take effect on the next request of every
	// user holding this role.
	if h.permCache != nil {
		h.permCache.Purge()
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceRole, &roleID, audit.ActionUpdate, audit.StatusSuccess, nil)
	}

	updated, err := h.roleRepo.GetByID(c.Request().Context(), roleID)
	if err != nil {
		return respondMessage(c, http.StatusOK, msgRoleUpdated)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *RoleHandler) DeleteRole(c echo.Context) error {
	roleID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidRoleID)
	}

	err = h.roleRepo.Delete(c.Request().Context(), roleID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSystemRole):
			if h.auditLogger != nil {
				h.auditLogger.LogFromContext(c, audit.ResourceRole, &roleID, audit.ActionDelete, audit.StatusDenied, nil)
			}
			return respondError(c, http.StatusForbidden, msgSystemRoleImmutable)
		case errors.Is(err, apperrors.ErrNotFound):
			return respondError(c, http.StatusNotFound, msgRoleNotFound)
		}
		c.Logger().Errorf("Failed to delete role %s: %v", roleID, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteRoleFail)
	}

	if h.permCache != nil {
		h.permCache.Purge()
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceRole, &roleID, audit.ActionDelete, audit.StatusSuccess, nil)
	}

	return respondMessage(c, http.StatusOK, msgRoleDeleted)
}
