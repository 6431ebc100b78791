package rbac

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// AssignedRole is one role held by a user, as fetched from storage.
// Permissions is the raw stored document; the store is trusted for
// existence, never for shape.
type AssignedRole struct {
	RoleID      uuid.UUID
	Slug        string
	Permissions json.RawMessage
}

// RoleSource loads a user's role assignments. Implemented by the
// postgres user-role repository; tests substitute fakes.
type RoleSource interface {
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]AssignedRole, error)
}

// Resolver computes a user's effective permissions by coercing each
// assigned role's stored document and folding the results with Merge.
// Results are computed per call and never persisted.
type Resolver struct {
	source RoleSource
}

func NewResolver(source RoleSource) *Resolver {
	return &Resolver{source: source}
}

// EffectivePermissions folds all of the user's roles into one set.
// Zero assignments and fetch failures both yield the all-deny default;
// the error is returned alongside so callers can log it, but the set is
// always safe to use as-is.
func (r *Resolver) EffectivePermissions(ctx context.Context, userID uuid.UUID) (PermissionSet, error) {
	assigned, err := r.source.RolesForUser(ctx, userID)
	if err != nil {
		return Empty(), err
	}

	merged := Empty()
	for _, ar := range assigned {
		merged = Merge(merged, CoerceJSON(ar.Permissions))
	}
	return merged, nil
}

// RoleSlugs projects the user's assignments onto their role slugs.
// Fetch failures yield an empty slice, so slug predicates fail closed.
func (r *Resolver) RoleSlugs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	assigned, err := r.source.RolesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(assigned))
	for _, ar := range assigned {
		if ar.Slug != "" {
			slugs = append(slugs, ar.Slug)
		}
	}
	return slugs, nil
}
