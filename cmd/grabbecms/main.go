package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/config"
	cmshttp "github.com/finnbusse/grabbe-cms/internal/http"
	"github.com/finnbusse/grabbe-cms/internal/infra/cache"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/finnbusse/grabbe-cms/internal/repository/postgres"
	"github.com/finnbusse/grabbe-cms/internal/storage/s3"
)

const cacheSweepInterval = 5 * time.Minute

func main() {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	storage, err := s3.NewClient(&cfg.AWS, cfg.App.UploadURLExpiry)
	if err != nil {
		log.Fatalf("Failed to initialize S3 client: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	userRoleRepo := postgres.NewUserRoleRepository(db)
	postRepo := postgres.NewPostRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)
	settingRepo := postgres.NewSettingRepository(db)

	resolver := rbac.NewResolver(userRoleRepo)
	permCache := cache.NewPermissionCache(cfg.App.PermissionCacheTTL)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	authMiddleware := auth.NewMiddleware(jwtService)
	permissions := auth.NewPermissionMiddleware(resolver, permCache)
	auditLogger := audit.NewLogger(db.Pool)

	server := cmshttp.NewServer(&cmshttp.ServerDependencies{
		Config:         cfg,
		UserRepo:       userRepo,
		RoleRepo:       roleRepo,
		UserRoleRepo:   userRoleRepo,
		PostRepo:       postRepo,
		EventRepo:      eventRepo,
		DocumentRepo:   documentRepo,
		SettingRepo:    settingRepo,
		Storage:        storage,
		JWTService:     jwtService,
		AuthMiddleware: authMiddleware,
		Permissions:    permissions,
		PermCache:      permCache,
		AuditLogger:    auditLogger,
	})

	// Drop expired permission snapshots in the background
	go func() {
		ticker := time.NewTicker(cacheSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			permCache.Sweep()
		}
	}()

	go func() {
		log.Printf("Starting grabbe-cms on :%s", cfg.Server.Port)
		if err := server.Start(":" + cfg.Server.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped cleanly")
}
