package rbac

import "encoding/json"

// Coerce converts an arbitrary decoded JSON value into a well-formed
// PermissionSet. It is total: nil, wrong-typed, partially shaped and
// garbage inputs all resolve field-by-field to the deny default, never
// to an error. Booleans require the literal true (truthy strings or
// numbers do not grant), scopes require the literal strings "own" or
// "all", and unknown fields are ignored. This is the single
// sanitization boundary between stored permission documents and every
// authorization decision downstream.
func Coerce(raw any) PermissionSet {
	p := asObject(raw)

	return PermissionSet{
		Posts:         coerceContent(p["posts"]),
		Events:        coerceContent(p["events"]),
		Pages:         PagePermission{Edit: coerceBool(asObject(p["pages"])["edit"])},
		Documents:     coerceDocuments(p["documents"]),
		Settings:      coerceSettings(p["settings"]),
		Navigation:    coerceBool(p["navigation"]),
		PageStructure: coerceBool(p["pageStructure"]),
		PageEditor:    coerceBool(p["pageEditor"]),
		Tags:          coerceBool(p["tags"]),
		Messages:      coerceBool(p["messages"]),
		Enrollments:   coerceBool(p["enrollments"]),
		Diagnostics:   coerceBool(p["diagnostics"]),
		Users:         coerceUsers(p["users"]),
		Roles:         coerceRoles(p["roles"]),
	}
}

// CoerceJSON decodes a stored permission document and coerces it.
// Malformed JSON yields the all-deny set.
func CoerceJSON(data []byte) PermissionSet {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Empty()
	}
	return Coerce(raw)
}

func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func coerceBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func coerceContent(v any) ContentPermission {
	m := asObject(v)
	return ContentPermission{
		Create:  coerceBool(m["create"]),
		Edit:    ParseScope(m["edit"]),
		Delete:  ParseScope(m["delete"]),
		Publish: coerceBool(m["publish"]),
	}
}

func coerceDocuments(v any) DocumentPermission {
	m := asObject(v)
	return DocumentPermission{
		Upload: coerceBool(m["upload"]),
		Delete: ParseScope(m["delete"]),
	}
}

func coerceSettings(v any) SettingsPermission {
	m := asObject(v)
	return SettingsPermission{
		Basic:    coerceBool(m["basic"]),
		Advanced: coerceBool(m["advanced"]),
		SEO:      coerceBool(m["seo"]),
	}
}

func coerceUsers(v any) UserPermission {
	m := asObject(v)
	return UserPermission{
		View:        coerceBool(m["view"]),
		Create:      coerceBool(m["create"]),
		Delete:      coerceBool(m["delete"]),
		AssignRoles: coerceBool(m["assignRoles"]),
	}
}

func coerceRoles(v any) RolePermission {
	m := asObject(v)
	return RolePermission{
		View:   coerceBool(m["view"]),
		Create: coerceBool(m["create"]),
		Edit:   coerceBool(m["edit"]),
		Delete: coerceBool(m["delete"]),
	}
}
