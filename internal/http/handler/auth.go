package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/repository"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant, this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

type AuthHandler struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

func NewAuthHandler(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		auth.VerifyPassword(dummyBcryptHash, "")
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	u, err := h.userRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "user not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking email existence.
		auth.VerifyPassword(dummyBcryptHash, req.Password)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.jwtService.Generate(u.ID, u.Email)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
	})
}

type MeResponse struct {
	UserID      string      `json:"user_id"`
	Permissions interface{} `json:"permissions"`
	RoleSlugs   []string    `json:"role_slugs"`
}

// Me returns the caller's effective permissions and role slugs so the
// admin UI can decide which areas to render. The permission snapshot
// is stored in the context by the permission middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	slugs := auth.GetRoleSlugs(c)
	if slugs == nil {
		slugs = []string{}
	}

	return c.JSON(http.StatusOK, MeResponse{
		UserID:      userID.String(),
		Permissions: auth.GetPermissions(c),
		RoleSlugs:   slugs,
	})
}
