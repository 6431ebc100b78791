// Package presets holds the known-good permission sets for the
// system roles seeded at installation. System roles are immutable
// through the management API, so these are the single source of truth
// for what they grant.
package presets

import "github.com/finnbusse/grabbe-cms/internal/rbac"

// System role display names.
const (
	NameAdministrator = "Administrator"
	NameSchulleitung  = "Schulleitung"
	NameRedakteur     = "Redakteur"
)

// Administrator returns the full-access permission set. Every
// capability known to rbac.Check must pass against it.
func Administrator() rbac.PermissionSet {
	return rbac.PermissionSet{
		Posts:         fullContent(),
		Events:        fullContent(),
		Pages:         rbac.PagePermission{Edit: true},
		Documents:     rbac.DocumentPermission{Upload: true, Delete: rbac.ScopeAll},
		Settings:      rbac.SettingsPermission{Basic: true, Advanced: true, SEO: true},
		Navigation:    true,
		PageStructure: true,
		PageEditor:    true,
		Tags:          true,
		Messages:      true,
		Enrollments:   true,
		Diagnostics:   true,
		Users:         rbac.UserPermission{View: true, Create: true, Delete: true, AssignRoles: true},
		Roles:         rbac.RolePermission{View: true, Create: true, Edit: true, Delete: true},
	}
}

// Schulleitung grants everything an administrator has except role
// management and diagnostics.
func Schulleitung() rbac.PermissionSet {
	p := Administrator()
	p.Roles = rbac.RolePermission{}
	p.Diagnostics = false
	return p
}

// Redakteur is the baseline editorial role: create content, edit and
// delete only own content, no publishing and no administration.
func Redakteur() rbac.PermissionSet {
	return rbac.PermissionSet{
		Posts: rbac.ContentPermission{
			Create: true,
			Edit:   rbac.ScopeOwn,
			Delete: rbac.ScopeOwn,
		},
		Events: rbac.ContentPermission{
			Create: true,
			Edit:   rbac.ScopeOwn,
			Delete: rbac.ScopeOwn,
		},
		Documents: rbac.DocumentPermission{Upload: true, Delete: rbac.ScopeOwn},
		Tags:      true,
	}
}

// SystemRole pairs a seedable system role with its permission set.
type SystemRole struct {
	Name        string
	Slug        string
	Permissions rbac.PermissionSet
}

// SystemRoles lists the roles seeded at installation, administrator
// first.
func SystemRoles() []SystemRole {
	return []SystemRole{
		{Name: NameAdministrator, Slug: rbac.SlugAdministrator, Permissions: Administrator()},
		{Name: NameSchulleitung, Slug: rbac.SlugSchulleitung, Permissions: Schulleitung()},
		{Name: NameRedakteur, Slug: "redakteur", Permissions: Redakteur()},
	}
}

func fullContent() rbac.ContentPermission {
	return rbac.ContentPermission{
		Create:  true,
		Edit:    rbac.ScopeAll,
		Delete:  rbac.ScopeAll,
		Publish: true,
	}
}
