package rbac_test

import (
	"encoding/json"
	"testing"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
)

func TestCoerceTotality(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"nil input", nil},
		{"empty object", map[string]any{}},
		{"string input", "administrator"},
		{"number input", float64(42)},
		{"bool input", true},
		{"array input", []any{"posts", "events"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rbac.Coerce(tt.raw)
			if got != rbac.Empty() {
				t.Errorf("Coerce(%v) = %+v, expected all-deny default", tt.raw, got)
			}
		})
	}
}

func TestCoerceStrictBooleans(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"literal true", true, true},
		{"literal false", false, false},
		{"truthy string", "yes", false},
		{"string true", "true", false},
		{"number one", float64(1), false},
		{"nil", nil, false},
		{"object", map[string]any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rbac.Coerce(map[string]any{
				"posts": map[string]any{"create": tt.value},
			})
			if got.Posts.Create != tt.expected {
				t.Errorf("posts.create = %v for input %v, expected %v", got.Posts.Create, tt.value, tt.expected)
			}
		})
	}
}

func TestCoerceScopes(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected rbac.Scope
	}{
		{"all literal", "all", rbac.ScopeAll},
		{"own literal", "own", rbac.ScopeOwn},
		{"false literal", false, rbac.ScopeNone},
		{"true literal", true, rbac.ScopeNone},
		{"unknown string", "superadmin", rbac.ScopeNone},
		{"uppercase", "ALL", rbac.ScopeNone},
		{"nil", nil, rbac.ScopeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rbac.Coerce(map[string]any{
				"posts": map[string]any{"edit": tt.value},
			})
			if got.Posts.Edit != tt.expected {
				t.Errorf("posts.edit = %v for input %v, expected %v", got.Posts.Edit, tt.value, tt.expected)
			}
		})
	}
}

func TestCoerceMalformedNestedObjects(t *testing.T) {
	// A corrupted document must fail closed field-by-field, never error.
	got := rbac.CoerceJSON([]byte(`{"posts": "not-an-object", "unknownField": 123}`))

	if got.Posts != (rbac.ContentPermission{}) {
		t.Errorf("posts = %+v, expected fully denied", got.Posts)
	}
	if got != rbac.Empty() {
		t.Errorf("coerced set = %+v, expected all-deny default", got)
	}
}

func TestCoerceJSONInvalidDocument(t *testing.T) {
	if got := rbac.CoerceJSON([]byte(`{invalid`)); got != rbac.Empty() {
		t.Errorf("CoerceJSON on invalid JSON = %+v, expected all-deny default", got)
	}
	if got := rbac.CoerceJSON(nil); got != rbac.Empty() {
		t.Errorf("CoerceJSON(nil) = %+v, expected all-deny default", got)
	}
}

func TestCoercePartialDocument(t *testing.T) {
	got := rbac.CoerceJSON([]byte(`{
		"posts": {"create": true, "edit": "own"},
		"settings": {"advanced": true},
		"navigation": true
	}`))

	if !got.Posts.Create || got.Posts.Edit != rbac.ScopeOwn {
		t.Errorf("posts = %+v, expected create=true edit=own", got.Posts)
	}
	if got.Posts.Delete != rbac.ScopeNone || got.Posts.Publish {
		t.Errorf("absent posts fields must deny, got %+v", got.Posts)
	}
	if !got.Settings.Advanced || got.Settings.Basic || got.Settings.SEO {
		t.Errorf("settings = %+v, expected only advanced", got.Settings)
	}
	if !got.Navigation {
		t.Error("navigation should be granted")
	}
	if got.Users != (rbac.UserPermission{}) {
		t.Errorf("absent users block must deny, got %+v", got.Users)
	}
}

// Re-coercing a serialized, already-coerced set must be a no-op: the
// coercion is a stable projector onto well-formed sets.
func TestCoerceStableUnderRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte(`null`),
		[]byte(`{}`),
		[]byte(`{"posts": {"create": "yes", "edit": "all", "delete": "own", "publish": true}}`),
		[]byte(`{"documents": {"upload": true, "delete": "all"}, "tags": true, "roles": {"view": true}}`),
		[]byte(`{"posts": 7, "events": {"edit": "OWN"}, "settings": {"basic": true, "seo": 1}}`),
	}

	for _, input := range inputs {
		first := rbac.CoerceJSON(input)

		data, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("marshal coerced set: %v", err)
		}

		second := rbac.CoerceJSON(data)
		if second != first {
			t.Errorf("coerce(marshal(coerce(%s))) = %+v, expected %+v", input, second, first)
		}
	}
}
