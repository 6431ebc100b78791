//go:build ignore

// Sets up the database schema and seeds the three system roles.
// Run with: go run scripts/setup_db.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/finnbusse/grabbe-cms/internal/config"
	"github.com/finnbusse/grabbe-cms/internal/rbac/presets"
	"github.com/finnbusse/grabbe-cms/internal/repository/postgres"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("Connected to database")

	if _, err := db.Pool.Exec(ctx, postgres.Schema); err != nil {
		log.Fatalf("Failed to execute schema: %v", err)
	}
	fmt.Println("Schema executed successfully")

	// Seed the system roles. Permissions are refreshed on every run so
	// preset changes reach existing installations; is_system stays
	// locked at TRUE.
	for _, sr := range presets.SystemRoles() {
		permsJSON, err := json.Marshal(sr.Permissions)
		if err != nil {
			log.Fatalf("Failed to marshal permissions for %s: %v", sr.Slug, err)
		}

		_, err = db.Pool.Exec(ctx, `
			INSERT INTO cms_roles (id, name, slug, is_system, permissions)
			VALUES ($1, $2, $3, TRUE, $4)
			ON CONFLICT (slug) DO UPDATE
			SET name = EXCLUDED.name, permissions = EXCLUDED.permissions, is_system = TRUE
		`, uuid.New(), sr.Name, sr.Slug, permsJSON)
		if err != nil {
			log.Fatalf("Failed to seed role %s: %v", sr.Slug, err)
		}
		fmt.Printf("Seeded system role %s\n", sr.Slug)
	}

	fmt.Println("Database setup complete")
}
