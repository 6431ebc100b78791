// Package rbac implements the CMS permission model: the typed
// permission set stored per role, coercion of untrusted stored JSON
// into that shape, the OR/lattice merge that folds a user's roles into
// one effective set, and the capability checks gating every protected
// action. Everything here is pure and safe for concurrent use; the only
// I/O lives behind the RoleSource interface consumed by Resolver.
package rbac

// ContentPermission covers one manageable content kind (posts, events).
type ContentPermission struct {
	Create  bool  `json:"create"`
	Edit    Scope `json:"edit"`
	Delete  Scope `json:"delete"`
	Publish bool  `json:"publish"`
}

// PagePermission gates editing of fixed site pages.
type PagePermission struct {
	Edit bool `json:"edit"`
}

// DocumentPermission covers uploaded documents.
type DocumentPermission struct {
	Upload bool  `json:"upload"`
	Delete Scope `json:"delete"`
}

// SettingsPermission holds independent booleans; there is no ordering
// between the three settings areas.
type SettingsPermission struct {
	Basic    bool `json:"basic"`
	Advanced bool `json:"advanced"`
	SEO      bool `json:"seo"`
}

// UserPermission covers account management in the admin area.
type UserPermission struct {
	View        bool `json:"view"`
	Create      bool `json:"create"`
	Delete      bool `json:"delete"`
	AssignRoles bool `json:"assignRoles"`
}

// RolePermission covers role management itself.
type RolePermission struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// PermissionSet is the capability set stored per role and computed per
// user. It is a plain value type with no interior pointers: assignment
// copies the whole set, so callers can never alias each other's state.
// The zero value denies everything.
type PermissionSet struct {
	Posts         ContentPermission  `json:"posts"`
	Events        ContentPermission  `json:"events"`
	Pages         PagePermission     `json:"pages"`
	Documents     DocumentPermission `json:"documents"`
	Settings      SettingsPermission `json:"settings"`
	Navigation    bool               `json:"navigation"`
	PageStructure bool               `json:"pageStructure"`
	PageEditor    bool               `json:"pageEditor"`
	Tags          bool               `json:"tags"`
	Messages      bool               `json:"messages"`
	Enrollments   bool               `json:"enrollments"`
	Diagnostics   bool               `json:"diagnostics"`
	Users         UserPermission     `json:"users"`
	Roles         RolePermission     `json:"roles"`
}

// Empty returns the all-deny permission set. It is the identity element
// of Merge and the fail-closed fallback everywhere a stored document
// cannot be trusted.
func Empty() PermissionSet {
	return PermissionSet{}
}
