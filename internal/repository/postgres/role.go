package postgres

import (
	"context"
	"encoding/json"

	"github.com/finnbusse/grabbe-cms/internal/domain/role"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoleRepository struct {
	db *DB
}

func NewRoleRepository(db *DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*role.Role, error) {
	query := `
		SELECT id, name, slug, is_system, permissions, created_at
		FROM cms_roles
		WHERE id = $1
	`
	return r.scanRole(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *RoleRepository) GetBySlug(ctx context.Context, slug string) (*role.Role, error) {
	query := `
		SELECT id, name, slug, is_system, permissions, created_at
		FROM cms_roles
		WHERE slug = $1
	`
	return r.scanRole(r.db.Pool.QueryRow(ctx, query, slug))
}

func (r *RoleRepository) List(ctx context.Context) ([]*role.Role, error) {
	query := `
		SELECT id, name, slug, is_system, permissions, created_at
		FROM cms_roles
		ORDER BY is_system DESC, name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*role.Role
	for rows.Next() {
		rl, err := r.scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, rl)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) Create(ctx context.Context, input role.CreateRoleInput) (*role.Role, error) {
	permissions, err := json.Marshal(input.Permissions)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO cms_roles (name, slug, is_system, permissions)
		VALUES ($1, $2, FALSE, $3)
		RETURNING id, name, slug, is_system, permissions, created_at
	`

	created, err := r.scanRole(r.db.Pool.QueryRow(ctx, query, input.Name, input.Slug, permissions))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.DuplicateSlug(errSlugTaken)
		}
		return nil, err
	}
	return created, nil
}

func (r *RoleRepository) Update(ctx context.Context, id uuid.UUID, input role.UpdateRoleInput) error {
	if err := r.requireCustomRole(ctx, id); err != nil {
		return err
	}

	permissions, err := json.Marshal(input.Permissions)
	if err != nil {
		return err
	}

	// The is_system guard repeats in SQL so a concurrent flip cannot
	// slip past the pre-check.
	query := `
		UPDATE cms_roles
		SET name = $2, permissions = $3
		WHERE id = $1 AND is_system = FALSE
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, input.Name, permissions)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errRoleNotFound)
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.requireCustomRole(ctx, id); err != nil {
		return err
	}

	query := `DELETE FROM cms_roles WHERE id = $1 AND is_system = FALSE`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errRoleNotFound)
	}
	return nil
}

func (r *RoleRepository) SlugsByIDs(ctx context.Context, ids []uuid.UUID) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT slug FROM cms_roles WHERE id = ANY($1)`

	rows, err := r.db.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func (r *RoleRepository) requireCustomRole(ctx context.Context, id uuid.UUID) error {
	var isSystem bool
	err := r.db.Pool.QueryRow(ctx, `SELECT is_system FROM cms_roles WHERE id = $1`, id).Scan(&isSystem)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NotFound(errRoleNotFound)
		}
		return err
	}
	if isSystem {
		return apperrors.SystemRole(errSystemRoleFrozen)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *RoleRepository) scanRole(row rowScanner) (*role.Role, error) {
	rl := &role.Role{}
	var rawPermissions []byte

	err := row.Scan(
		&rl.ID,
		&rl.Name,
		&rl.Slug,
		&rl.IsSystem,
		&rawPermissions,
		&rl.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errRoleNotFound)
		}
		return nil, err
	}

	// The stored document is untrusted; coercion is the boundary.
	rl.Permissions = rbac.CoerceJSON(rawPermissions)
	return rl, nil
}
