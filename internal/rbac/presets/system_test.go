package presets_test

import (
	"testing"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/finnbusse/grabbe-cms/internal/rbac/presets"
)

func TestAdministratorPassesEveryCapability(t *testing.T) {
	admin := presets.Administrator()
	for _, capability := range rbac.Capabilities() {
		if !rbac.Check(admin, capability) {
			t.Errorf("administrator denied capability %q", capability)
		}
	}
}

func TestSchulleitungExclusions(t *testing.T) {
	sl := presets.Schulleitung()

	if rbac.Check(sl, rbac.CapabilityRoles) {
		t.Error("schulleitung must not see role management")
	}
	if rbac.Check(sl, rbac.CapabilityDiagnostics) {
		t.Error("schulleitung must not see diagnostics")
	}
	if !rbac.Check(sl, rbac.CapabilityUsers) || !sl.Users.AssignRoles {
		t.Error("schulleitung should manage users and assign roles")
	}
}

func TestRedakteurOwnScope(t *testing.T) {
	r := presets.Redakteur()

	if !r.Posts.Create || r.Posts.Edit != rbac.ScopeOwn || r.Posts.Delete != rbac.ScopeOwn {
		t.Errorf("posts = %+v, expected create with own-scoped edit/delete", r.Posts)
	}
	if r.Posts.Publish {
		t.Error("redakteur must not publish")
	}
	if rbac.Check(r, rbac.CapabilitySettings) || rbac.Check(r, rbac.CapabilityUsers) {
		t.Error("redakteur must not reach administration")
	}
}

func TestSystemRolesAdministratorFirst(t *testing.T) {
	roles := presets.SystemRoles()
	if len(roles) == 0 || roles[0].Slug != rbac.SlugAdministrator {
		t.Fatalf("system roles = %+v, expected administrator first", roles)
	}
	for _, sr := range roles {
		if sr.Name == "" || sr.Slug == "" {
			t.Errorf("system role %+v missing name or slug", sr)
		}
	}
}
