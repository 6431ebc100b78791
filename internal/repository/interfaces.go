package repository

import (
	"context"

	"github.com/finnbusse/grabbe-cms/internal/domain/document"
	"github.com/finnbusse/grabbe-cms/internal/domain/event"
	"github.com/finnbusse/grabbe-cms/internal/domain/post"
	"github.com/finnbusse/grabbe-cms/internal/domain/role"
	"github.com/finnbusse/grabbe-cms/internal/domain/setting"
	"github.com/finnbusse/grabbe-cms/internal/domain/user"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/google/uuid"
)

// Repository interfaces consumed by handlers and middleware. Concrete
// implementations live in the postgres subpackage; handler tests
// substitute in-memory fakes.

type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*role.Role, error)
	GetBySlug(ctx context.Context, slug string) (*role.Role, error)
	// List returns all roles, system roles first, then by name.
	List(ctx context.Context) ([]*role.Role, error)
	Create(ctx context.Context, input role.CreateRoleInput) (*role.Role, error)
	// Update and Delete reject system roles with ErrSystemRole.
	Update(ctx context.Context, id uuid.UUID, input role.UpdateRoleInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SlugsByIDs resolves role IDs to their slugs, for the restricted
	// assignment rule.
	SlugsByIDs(ctx context.Context, ids []uuid.UUID) ([]string, error)
}

type UserRoleRepository interface {
	// RolesForUser satisfies rbac.RoleSource.
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]rbac.AssignedRole, error)
	// SetUserRoles replaces the user's full assignment set in one
	// transaction (delete-all then insert).
	SetUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*user.User, error)
}

type PostRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	List(ctx context.Context, includeUnpublished bool) ([]*post.Post, error)
	Create(ctx context.Context, input post.CreatePostInput) (*post.Post, error)
	Update(ctx context.Context, id uuid.UUID, input post.UpdatePostInput) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
	List(ctx context.Context, includeUnpublished bool) ([]*event.Event, error)
	Create(ctx context.Context, input event.CreateEventInput) (*event.Event, error)
	Update(ctx context.Context, id uuid.UUID, input event.UpdateEventInput) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DocumentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*document.Document, error)
	List(ctx context.Context) ([]*document.Document, error)
	Create(ctx context.Context, input document.CreateDocumentInput) (*document.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingRepository interface {
	ListBySection(ctx context.Context, section setting.Section) ([]*setting.Setting, error)
	Upsert(ctx context.Context, s setting.Setting) error
}
