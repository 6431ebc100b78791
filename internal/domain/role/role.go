package role

import (
	"time"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/google/uuid"
)

// Role is a named permission set identified by its unique slug. System
// roles are seeded at installation and immutable through the management
// API: they may be read and merged, never edited or deleted.
type Role struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	IsSystem    bool               `json:"is_system"`
	Permissions rbac.PermissionSet `json:"permissions"`
	CreatedAt   time.Time          `json:"created_at"`
}

type CreateRoleInput struct {
	Name        string
	Slug        string
	Permissions rbac.PermissionSet
}

type UpdateRoleInput struct {
	Name        string
	Permissions rbac.PermissionSet
}

// Assignment links a user to one of their roles.
type Assignment struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	RoleID uuid.UUID `json:"role_id"`
}
