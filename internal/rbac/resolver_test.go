package rbac_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/google/uuid"
)

type fakeRoleSource struct {
	roles []rbac.AssignedRole
	err   error
}

func (f *fakeRoleSource) RolesForUser(ctx context.Context, userID uuid.UUID) ([]rbac.AssignedRole, error) {
	return f.roles, f.err
}

func TestResolverEmptyAssignments(t *testing.T) {
	resolver := rbac.NewResolver(&fakeRoleSource{})

	perms, err := resolver.EffectivePermissions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perms != rbac.Empty() {
		t.Errorf("zero assignments must yield deny-all, got %+v", perms)
	}
}

func TestResolverFailsClosedOnFetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	resolver := rbac.NewResolver(&fakeRoleSource{err: fetchErr})

	perms, err := resolver.EffectivePermissions(context.Background(), uuid.New())
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
	if perms != rbac.Empty() {
		t.Errorf("fetch failure must yield deny-all, got %+v", perms)
	}

	slugs, err := resolver.RoleSlugs(context.Background(), uuid.New())
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
	if len(slugs) != 0 {
		t.Errorf("fetch failure must yield no slugs, got %v", slugs)
	}
}

func TestResolverFoldsRoles(t *testing.T) {
	source := &fakeRoleSource{roles: []rbac.AssignedRole{
		{
			RoleID:      uuid.New(),
			Slug:        "redakteur",
			Permissions: json.RawMessage(`{"posts": {"create": true, "edit": "own"}}`),
		},
		{
			RoleID:      uuid.New(),
			Slug:        "moderator",
			Permissions: json.RawMessage(`{"posts": {"edit": "all", "publish": true}, "tags": true}`),
		},
		{
			RoleID:      uuid.New(),
			Slug:        "broken",
			Permissions: json.RawMessage(`"not an object"`),
		},
	}}
	resolver := rbac.NewResolver(source)

	perms, err := resolver.EffectivePermissions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !perms.Posts.Create || perms.Posts.Edit != rbac.ScopeAll || !perms.Posts.Publish {
		t.Errorf("posts = %+v, expected create+edit-all+publish", perms.Posts)
	}
	if !perms.Tags {
		t.Error("tags should be granted by the second role")
	}
	if perms.Users != (rbac.UserPermission{}) {
		t.Errorf("users must stay denied, got %+v", perms.Users)
	}
}

func TestResolverRoleSlugs(t *testing.T) {
	source := &fakeRoleSource{roles: []rbac.AssignedRole{
		{RoleID: uuid.New(), Slug: rbac.SlugAdministrator},
		{RoleID: uuid.New(), Slug: ""},
		{RoleID: uuid.New(), Slug: "redakteur"},
	}}
	resolver := rbac.NewResolver(source)

	slugs, err := resolver.RoleSlugs(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slugs) != 2 {
		t.Fatalf("slugs = %v, expected two non-empty entries", slugs)
	}
	if !rbac.IsAdministrator(slugs) {
		t.Error("IsAdministrator should be true")
	}
	if rbac.IsSchulleitung(slugs) {
		t.Error("IsSchulleitung should be false")
	}
	if !rbac.IsAdministratorOrSchulleitung(slugs) {
		t.Error("IsAdministratorOrSchulleitung should be true")
	}
}

func TestRestrictedSlugs(t *testing.T) {
	tests := []struct {
		slug     string
		expected bool
	}{
		{rbac.SlugAdministrator, true},
		{rbac.SlugSchulleitung, true},
		{"redakteur", false},
		{"Administrator", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := rbac.IsRestrictedSlug(tt.slug); got != tt.expected {
			t.Errorf("IsRestrictedSlug(%q) = %v, expected %v", tt.slug, got, tt.expected)
		}
	}
}
