package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/domain/user"
	"github.com/finnbusse/grabbe-cms/internal/infra/cache"
	"github.com/finnbusse/grabbe-cms/internal/repository"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
	"github.com/finnbusse/grabbe-cms/pkg/validator"
)

type UserHandler struct {
	userRepo    repository.UserRepository
	permCache   *cache.PermissionCache
	auditLogger *audit.Logger
}

func NewUserHandler(userRepo repository.UserRepository, permCache *cache.PermissionCache, auditLogger *audit.Logger) *UserHandler {
	return &UserHandler{
		userRepo:    userRepo,
		permCache:   permCache,
		auditLogger: auditLogger,
	}
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list users: %v", err)
		return respondError(c, http.StatusInternalServerError, msgListUsersFail)
	}

	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}

	return c.JSON(http.StatusOK, out)
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CreateUser needs the fine-grained users.create flag, which is not one
// of the route-level capabilities; the handler reads the resolved
// snapshot directly.
func (h *UserHandler) CreateUser(c echo.Context) error {
	if !auth.GetPermissions(c).Users.Create {
		return respondError(c, http.StatusForbidden, "missing capability: users.create")
	}

	var req CreateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Password(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	u, err := h.userRepo.Create(c.Request().Context(), user.CreateUserInput{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		c.Logger().Errorf("Failed to create user %s: %v", req.Email, err)
		return respondError(c, http.StatusInternalServerError, msgCreateUserFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceUser, &u.ID, audit.ActionCreate, audit.StatusSuccess, nil)
	}

	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	if !auth.GetPermissions(c).Users.Delete {
		return respondError(c, http.StatusForbidden, "missing capability: users.delete")
	}

	userID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	if err := h.userRepo.Delete(c.Request().Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgUserNotFound)
		}
		c.Logger().Errorf("Failed to delete user %s: %v", userID, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteUserFail)
	}

	if h.permCache != nil {
		h.permCache.Invalidate(userID)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceUser, &userID, audit.ActionDelete, audit.StatusSuccess, nil)
	}

	return respondMessage(c, http.StatusOK, msgUserDeleted)
}
