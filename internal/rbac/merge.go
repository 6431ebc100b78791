package rbac

// Merge combines two permission sets with OR logic: the more permissive
// value wins for every field, scopes join under None < Own < All. Merge
// is pure, commutative, associative and idempotent, and Empty() is its
// identity, so folding any number of role sets in any order yields the
// same effective set.
func Merge(a, b PermissionSet) PermissionSet {
	return PermissionSet{
		Posts:  mergeContent(a.Posts, b.Posts),
		Events: mergeContent(a.Events, b.Events),
		Pages:  PagePermission{Edit: a.Pages.Edit || b.Pages.Edit},
		Documents: DocumentPermission{
			Upload: a.Documents.Upload || b.Documents.Upload,
			Delete: maxScope(a.Documents.Delete, b.Documents.Delete),
		},
		Settings: SettingsPermission{
			Basic:    a.Settings.Basic || b.Settings.Basic,
			Advanced: a.Settings.Advanced || b.Settings.Advanced,
			SEO:      a.Settings.SEO || b.Settings.SEO,
		},
		Navigation:    a.Navigation || b.Navigation,
		PageStructure: a.PageStructure || b.PageStructure,
		PageEditor:    a.PageEditor || b.PageEditor,
		Tags:          a.Tags || b.Tags,
		Messages:      a.Messages || b.Messages,
		Enrollments:   a.Enrollments || b.Enrollments,
		Diagnostics:   a.Diagnostics || b.Diagnostics,
		Users: UserPermission{
			View:        a.Users.View || b.Users.View,
			Create:      a.Users.Create || b.Users.Create,
			Delete:      a.Users.Delete || b.Users.Delete,
			AssignRoles: a.Users.AssignRoles || b.Users.AssignRoles,
		},
		Roles: RolePermission{
			View:   a.Roles.View || b.Roles.View,
			Create: a.Roles.Create || b.Roles.Create,
			Edit:   a.Roles.Edit || b.Roles.Edit,
			Delete: a.Roles.Delete || b.Roles.Delete,
		},
	}
}

func mergeContent(a, b ContentPermission) ContentPermission {
	return ContentPermission{
		Create:  a.Create || b.Create,
		Edit:    maxScope(a.Edit, b.Edit),
		Delete:  maxScope(a.Delete, b.Delete),
		Publish: a.Publish || b.Publish,
	}
}

// MergeAll folds any number of permission sets starting from Empty().
// Zero sets yield the all-deny default: a user with no role assignments
// has no access.
func MergeAll(sets []PermissionSet) PermissionSet {
	merged := Empty()
	for _, s := range sets {
		merged = Merge(merged, s)
	}
	return merged
}
