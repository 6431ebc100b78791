package rbac_test

import (
	"testing"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
)

func TestCheckCompositeCapabilities(t *testing.T) {
	tests := []struct {
		name       string
		perms      rbac.PermissionSet
		capability rbac.Capability
		expected   bool
	}{
		{
			"settings via basic",
			rbac.PermissionSet{Settings: rbac.SettingsPermission{Basic: true}},
			rbac.CapabilitySettings,
			true,
		},
		{
			"settings via seo only",
			rbac.PermissionSet{Settings: rbac.SettingsPermission{SEO: true}},
			rbac.CapabilitySettings,
			true,
		},
		{
			"settings denied",
			rbac.PermissionSet{},
			rbac.CapabilitySettings,
			false,
		},
		{
			"settings.basic not implied by seo",
			rbac.PermissionSet{Settings: rbac.SettingsPermission{SEO: true}},
			rbac.CapabilitySettingsBasic,
			false,
		},
		{
			"posts via create",
			rbac.PermissionSet{Posts: rbac.ContentPermission{Create: true}},
			rbac.CapabilityPosts,
			true,
		},
		{
			"posts via own edit",
			rbac.PermissionSet{Posts: rbac.ContentPermission{Edit: rbac.ScopeOwn}},
			rbac.CapabilityPosts,
			true,
		},
		{
			"posts.create not implied by edit",
			rbac.PermissionSet{Posts: rbac.ContentPermission{Edit: rbac.ScopeAll}},
			rbac.CapabilityPostsCreate,
			false,
		},
		{
			"documents via delete scope",
			rbac.PermissionSet{Documents: rbac.DocumentPermission{Delete: rbac.ScopeOwn}},
			rbac.CapabilityDocuments,
			true,
		},
		{
			"documents.upload denied without upload",
			rbac.PermissionSet{Documents: rbac.DocumentPermission{Delete: rbac.ScopeAll}},
			rbac.CapabilityDocumentsUpload,
			false,
		},
		{
			"users alias of users.view",
			rbac.PermissionSet{Users: rbac.UserPermission{View: true}},
			rbac.CapabilityUsers,
			true,
		},
		{
			"roles alias of roles.view",
			rbac.PermissionSet{Roles: rbac.RolePermission{View: true}},
			rbac.CapabilityRoles,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rbac.Check(tt.perms, tt.capability); got != tt.expected {
				t.Errorf("Check(%q) = %v, expected %v", tt.capability, got, tt.expected)
			}
		})
	}
}

func TestCheckUnknownCapabilityDenies(t *testing.T) {
	full := rbac.PermissionSet{
		Settings: rbac.SettingsPermission{Basic: true, Advanced: true, SEO: true},
		Roles:    rbac.RolePermission{View: true, Create: true, Edit: true, Delete: true},
	}

	for _, capability := range []rbac.Capability{"", "posts.editOwn", "superadmin", "settings.seo "} {
		if rbac.Check(full, capability) {
			t.Errorf("Check(%q) = true, unknown capabilities must deny", capability)
		}
	}
}

func TestCheckDeniesEverythingOnEmptySet(t *testing.T) {
	for _, capability := range rbac.Capabilities() {
		if rbac.Check(rbac.Empty(), capability) {
			t.Errorf("Check(Empty(), %q) = true, expected deny", capability)
		}
	}
}

// Edit-all and edit-own are distinct questions: Own satisfies the own
// check but not the all check, All satisfies both.
func TestScopeOrderingForOwnership(t *testing.T) {
	tests := []struct {
		name      string
		scope     rbac.Scope
		allowsOwn bool
		allowsAll bool
	}{
		{"none", rbac.ScopeNone, false, false},
		{"own", rbac.ScopeOwn, true, false},
		{"all", rbac.ScopeAll, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.AllowsOwn(); got != tt.allowsOwn {
				t.Errorf("AllowsOwn() = %v, expected %v", got, tt.allowsOwn)
			}
			if got := tt.scope.AllowsAll(); got != tt.allowsAll {
				t.Errorf("AllowsAll() = %v, expected %v", got, tt.allowsAll)
			}
			if got := tt.scope.Allows(); got != (tt.allowsOwn || tt.allowsAll) {
				t.Errorf("Allows() = %v, inconsistent with own/all", got)
			}
		})
	}
}
