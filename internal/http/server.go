package http

import (
	"context"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/config"
	"github.com/finnbusse/grabbe-cms/internal/http/handler"
	"github.com/finnbusse/grabbe-cms/internal/http/middleware"
	"github.com/finnbusse/grabbe-cms/internal/infra/cache"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/finnbusse/grabbe-cms/internal/repository"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config         *config.Config
	UserRepo       repository.UserRepository
	RoleRepo       repository.RoleRepository
	UserRoleRepo   repository.UserRoleRepository
	PostRepo       repository.PostRepository
	EventRepo      repository.EventRepository
	DocumentRepo   repository.DocumentRepository
	SettingRepo    repository.SettingRepository
	Storage        handler.StorageOperations
	JWTService     *auth.JWTService
	AuthMiddleware *auth.Middleware
	Permissions    *auth.PermissionMiddleware
	PermCache      *cache.PermissionCache
	AuditLogger    *audit.Logger
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Set custom HTTP error handler
	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	// Global rate limiting
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for auth endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.JWTService)
	roleHandler := handler.NewRoleHandler(deps.RoleRepo, deps.PermCache, deps.AuditLogger)
	userRoleHandler := handler.NewUserRoleHandler(deps.UserRoleRepo, deps.RoleRepo, deps.PermCache, deps.AuditLogger)
	userHandler := handler.NewUserHandler(deps.UserRepo, deps.PermCache, deps.AuditLogger)
	postHandler := handler.NewPostHandler(deps.PostRepo, deps.AuditLogger)
	eventHandler := handler.NewEventHandler(deps.EventRepo, deps.AuditLogger)
	documentHandler := handler.NewDocumentHandler(deps.DocumentRepo, deps.Storage, deps.AuditLogger)
	settingHandler := handler.NewSettingHandler(deps.SettingRepo, deps.AuditLogger)

	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)

	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireJWT())

	api.GET("/auth/me", authHandler.Me, deps.Permissions.LoadPermissions())

	// Role management: reading needs roles.view, every mutation is
	// administrator only.
	api.GET("/roles", roleHandler.ListRoles, deps.Permissions.RequireCapability(rbac.CapabilityRolesView))
	api.GET("/roles/:id", roleHandler.GetRole, deps.Permissions.RequireCapability(rbac.CapabilityRolesView))
	api.POST("/roles", roleHandler.CreateRole, strictRateLimiter.Middleware(), deps.Permissions.RequireAdministrator())
	api.PUT("/roles/:id", roleHandler.UpdateRole, strictRateLimiter.Middleware(), deps.Permissions.RequireAdministrator())
	api.DELETE("/roles/:id", roleHandler.DeleteRole, strictRateLimiter.Middleware(), deps.Permissions.RequireAdministrator())

	// Role assignment: administrator or schulleitung; the handler adds
	// the restricted-slug rule on top.
	api.GET("/users/:user_id/roles", userRoleHandler.ListUserRoles, deps.Permissions.RequireCapability(rbac.CapabilityUsersView))
	api.PUT("/users/:user_id/roles", userRoleHandler.SetUserRoles, strictRateLimiter.Middleware(), deps.Permissions.RequireAdministratorOrSchulleitung())

	api.GET("/users", userHandler.ListUsers, deps.Permissions.RequireCapability(rbac.CapabilityUsersView))
	api.POST("/users", userHandler.CreateUser, deps.Permissions.RequireCapability(rbac.CapabilityUsers))
	api.DELETE("/users/:id", userHandler.DeleteUser, deps.Permissions.RequireCapability(rbac.CapabilityUsers))

	api.GET("/posts", postHandler.ListPosts, deps.Permissions.RequireCapability(rbac.CapabilityPosts))
	api.GET("/posts/:id", postHandler.GetPost, deps.Permissions.RequireCapability(rbac.CapabilityPosts))
	api.POST("/posts", postHandler.CreatePost, deps.Permissions.RequireCapability(rbac.CapabilityPostsCreate))
	api.PUT("/posts/:id", postHandler.UpdatePost, deps.Permissions.RequireCapability(rbac.CapabilityPosts))
	api.PUT("/posts/:id/published", postHandler.SetPublished, deps.Permissions.RequireCapability(rbac.CapabilityPosts))
	api.DELETE("/posts/:id", postHandler.DeletePost, deps.Permissions.RequireCapability(rbac.CapabilityPosts))

	api.GET("/events", eventHandler.ListEvents, deps.Permissions.RequireCapability(rbac.CapabilityEvents))
	api.GET("/events/:id", eventHandler.GetEvent, deps.Permissions.RequireCapability(rbac.CapabilityEvents))
	api.POST("/events", eventHandler.CreateEvent, deps.Permissions.RequireCapability(rbac.CapabilityEventsCreate))
	api.PUT("/events/:id", eventHandler.UpdateEvent, deps.Permissions.RequireCapability(rbac.CapabilityEvents))
	api.PUT("/events/:id/published", eventHandler.SetPublished, deps.Permissions.RequireCapability(rbac.CapabilityEvents))
	api.DELETE("/events/:id", eventHandler.DeleteEvent, deps.Permissions.RequireCapability(rbac.CapabilityEvents))

	api.GET("/documents", documentHandler.ListDocuments, deps.Permissions.RequireCapability(rbac.CapabilityDocuments))
	api.POST("/documents", documentHandler.UploadDocument, deps.Permissions.RequireCapability(rbac.CapabilityDocumentsUpload))
	api.GET("/documents/:id/download-url", documentHandler.DownloadDocument, deps.Permissions.RequireCapability(rbac.CapabilityDocuments))
	api.DELETE("/documents/:id", documentHandler.DeleteDocument, deps.Permissions.RequireCapability(rbac.CapabilityDocuments))

	// The settings capability is refined per section inside the handler.
	api.GET("/settings/:section", settingHandler.ListSection, deps.Permissions.RequireCapability(rbac.CapabilitySettings))
	api.PUT("/settings/:section", settingHandler.SaveSetting, deps.Permissions.RequireCapability(rbac.CapabilitySettings))

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
