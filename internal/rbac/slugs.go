package rbac

// Well-known system role slugs. These identify roles by name for the
// coarse checks that bypass the granular permission set, e.g. "only an
// administrator may assign the administrator role".
const (
	SlugAdministrator = "administrator"
	SlugSchulleitung  = "schulleitung"
)

// IsRestrictedSlug reports whether a role may only be assigned by an
// administrator.
func IsRestrictedSlug(slug string) bool {
	return slug == SlugAdministrator || slug == SlugSchulleitung
}

func hasSlug(slugs []string, want string) bool {
	for _, s := range slugs {
		if s == want {
			return true
		}
	}
	return false
}

func IsAdministrator(slugs []string) bool {
	return hasSlug(slugs, SlugAdministrator)
}

func IsSchulleitung(slugs []string) bool {
	return hasSlug(slugs, SlugSchulleitung)
}

func IsAdministratorOrSchulleitung(slugs []string) bool {
	return IsAdministrator(slugs) || IsSchulleitung(slugs)
}
