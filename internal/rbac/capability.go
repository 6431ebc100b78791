package rbac

// Capability names a protected CMS area or action. The set is closed:
// Check maps every listed capability to a boolean expression over a
// PermissionSet and denies anything it does not recognize.
type Capability string

const (
	CapabilitySettings         Capability = "settings"
	CapabilitySettingsBasic    Capability = "settings.basic"
	CapabilitySettingsAdvanced Capability = "settings.advanced"
	CapabilityNavigation       Capability = "navigation"
	CapabilityPageStructure    Capability = "pageStructure"
	CapabilityPageEditor       Capability = "pageEditor"
	CapabilityUsers            Capability = "users"
	CapabilityUsersView        Capability = "users.view"
	CapabilityTags             Capability = "tags"
	CapabilityMessages         Capability = "messages"
	CapabilityEnrollments      Capability = "enrollments"
	CapabilityDiagnostics      Capability = "diagnostics"
	CapabilityRoles            Capability = "roles"
	CapabilityRolesView        Capability = "roles.view"
	CapabilityPosts            Capability = "posts"
	CapabilityPostsCreate      Capability = "posts.create"
	CapabilityEvents           Capability = "events"
	CapabilityEventsCreate     Capability = "events.create"
	CapabilityDocuments        Capability = "documents"
	CapabilityDocumentsUpload  Capability = "documents.upload"
)

// Capabilities returns every capability Check understands, in a stable
// order. Used by the admin UI and by exhaustiveness tests.
func Capabilities() []Capability {
	return []Capability{
		CapabilitySettings,
		CapabilitySettingsBasic,
		CapabilitySettingsAdvanced,
		CapabilityNavigation,
		CapabilityPageStructure,
		CapabilityPageEditor,
		CapabilityUsers,
		CapabilityUsersView,
		CapabilityTags,
		CapabilityMessages,
		CapabilityEnrollments,
		CapabilityDiagnostics,
		CapabilityRoles,
		CapabilityRolesView,
		CapabilityPosts,
		CapabilityPostsCreate,
		CapabilityEvents,
		CapabilityEventsCreate,
		CapabilityDocuments,
		CapabilityDocumentsUpload,
	}
}

// Check reports whether the permission set grants the capability.
// Composite capabilities ("settings", "posts") are unions of their
// narrower checks. Unknown capabilities return false; a check must
// never panic, since a panic on the authorization path is a hazard of
// its own.
func Check(perms PermissionSet, capability Capability) bool {
	switch capability {
	case CapabilitySettings:
		return perms.Settings.Basic || perms.Settings.Advanced || perms.Settings.SEO
	case CapabilitySettingsBasic:
		return perms.Settings.Basic
	case CapabilitySettingsAdvanced:
		return perms.Settings.Advanced
	case CapabilityNavigation:
		return perms.Navigation
	case CapabilityPageStructure:
		return perms.PageStructure
	case CapabilityPageEditor:
		return perms.PageEditor
	case CapabilityUsers, CapabilityUsersView:
		return perms.Users.View
	case CapabilityTags:
		return perms.Tags
	case CapabilityMessages:
		return perms.Messages
	case CapabilityEnrollments:
		return perms.Enrollments
	case CapabilityDiagnostics:
		return perms.Diagnostics
	case CapabilityRoles, CapabilityRolesView:
		return perms.Roles.View
	case CapabilityPosts:
		return perms.Posts.Create || perms.Posts.Edit.Allows()
	case CapabilityPostsCreate:
		return perms.Posts.Create
	case CapabilityEvents:
		return perms.Events.Create || perms.Events.Edit.Allows()
	case CapabilityEventsCreate:
		return perms.Events.Create
	case CapabilityDocuments:
		return perms.Documents.Upload || perms.Documents.Delete.Allows()
	case CapabilityDocumentsUpload:
		return perms.Documents.Upload
	default:
		return false
	}
}
