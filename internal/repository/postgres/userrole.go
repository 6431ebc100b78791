package postgres

import (
	"context"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/google/uuid"
)

// UserRoleRepository manages the user ↔ role assignment table. Its
// RolesForUser method satisfies rbac.RoleSource.
type UserRoleRepository struct {
	db *DB
}

func NewUserRoleRepository(db *DB) *UserRoleRepository {
	return &UserRoleRepository{db: db}
}

func (r *UserRoleRepository) RolesForUser(ctx context.Context, userID uuid.UUID) ([]rbac.AssignedRole, error) {
	query := `
		SELECT cr.id, cr.slug, cr.permissions
		FROM user_roles ur
		JOIN cms_roles cr ON cr.id = ur.role_id
		WHERE ur.user_id = $1
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assigned []rbac.AssignedRole
	for rows.Next() {
		var ar rbac.AssignedRole
		if err := rows.Scan(&ar.RoleID, &ar.Slug, &ar.Permissions); err != nil {
			return nil, err
		}
		assigned = append(assigned, ar)
	}
	return assigned, rows.Err()
}

// SetUserRoles replaces the user's full assignment set: delete-all then
// insert, inside one transaction so a failed write never leaves a user
// with partial assignments.
func (r *UserRoleRepository) SetUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}

	for _, roleID := range roleIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`,
			userID, roleID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
