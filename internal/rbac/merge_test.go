package rbac_test

import (
	"testing"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
)

// sampleSets covers the interesting shapes: empty, boolean-only grants,
// scoped grants at both levels, and the full administrator set.
func sampleSets() []rbac.PermissionSet {
	editor := rbac.Coerce(map[string]any{
		"posts":  map[string]any{"create": true, "edit": "own"},
		"events": map[string]any{"edit": "all", "publish": true},
		"tags":   true,
	})
	manager := rbac.Coerce(map[string]any{
		"posts":     map[string]any{"delete": "all"},
		"documents": map[string]any{"upload": true, "delete": "own"},
		"settings":  map[string]any{"basic": true, "seo": true},
		"users":     map[string]any{"view": true, "assignRoles": true},
	})
	full := rbac.Coerce(map[string]any{
		"posts":         map[string]any{"create": true, "edit": "all", "delete": "all", "publish": true},
		"events":        map[string]any{"create": true, "edit": "all", "delete": "all", "publish": true},
		"pages":         map[string]any{"edit": true},
		"documents":     map[string]any{"upload": true, "delete": "all"},
		"settings":      map[string]any{"basic": true, "advanced": true, "seo": true},
		"navigation":    true,
		"pageStructure": true,
		"pageEditor":    true,
		"tags":          true,
		"messages":      true,
		"enrollments":   true,
		"diagnostics":   true,
		"users":         map[string]any{"view": true, "create": true, "delete": true, "assignRoles": true},
		"roles":         map[string]any{"view": true, "create": true, "edit": true, "delete": true},
	})
	return []rbac.PermissionSet{rbac.Empty(), editor, manager, full}
}

func TestMergeIdempotent(t *testing.T) {
	for _, x := range sampleSets() {
		if got := rbac.Merge(x, x); got != x {
			t.Errorf("merge(x, x) = %+v, expected %+v", got, x)
		}
	}
}

func TestMergeCommutative(t *testing.T) {
	sets := sampleSets()
	for _, x := range sets {
		for _, y := range sets {
			if rbac.Merge(x, y) != rbac.Merge(y, x) {
				t.Errorf("merge(x, y) != merge(y, x) for x=%+v y=%+v", x, y)
			}
		}
	}
}

func TestMergeAssociative(t *testing.T) {
	sets := sampleSets()
	for _, x := range sets {
		for _, y := range sets {
			for _, z := range sets {
				left := rbac.Merge(rbac.Merge(x, y), z)
				right := rbac.Merge(x, rbac.Merge(y, z))
				if left != right {
					t.Errorf("associativity broken for x=%+v y=%+v z=%+v", x, y, z)
				}
			}
		}
	}
}

func TestMergeIdentity(t *testing.T) {
	for _, x := range sampleSets() {
		if got := rbac.Merge(x, rbac.Empty()); got != x {
			t.Errorf("merge(x, Empty()) = %+v, expected %+v", got, x)
		}
		if got := rbac.Merge(rbac.Empty(), x); got != x {
			t.Errorf("merge(Empty(), x) = %+v, expected %+v", got, x)
		}
	}
}

// Merging can only ever add capabilities, never remove them.
func TestMergeMonotonic(t *testing.T) {
	sets := sampleSets()
	for _, x := range sets {
		for _, y := range sets {
			merged := rbac.Merge(x, y)
			for _, capability := range rbac.Capabilities() {
				if rbac.Check(x, capability) && !rbac.Check(merged, capability) {
					t.Errorf("merge removed capability %q (x=%+v, y=%+v)", capability, x, y)
				}
			}
		}
	}
}

func TestMergeScopeOrdering(t *testing.T) {
	tests := []struct {
		name     string
		a, b     rbac.Scope
		expected rbac.Scope
	}{
		{"none + none", rbac.ScopeNone, rbac.ScopeNone, rbac.ScopeNone},
		{"none + own", rbac.ScopeNone, rbac.ScopeOwn, rbac.ScopeOwn},
		{"own + none", rbac.ScopeOwn, rbac.ScopeNone, rbac.ScopeOwn},
		{"own + own", rbac.ScopeOwn, rbac.ScopeOwn, rbac.ScopeOwn},
		{"own + all", rbac.ScopeOwn, rbac.ScopeAll, rbac.ScopeAll},
		{"all + none", rbac.ScopeAll, rbac.ScopeNone, rbac.ScopeAll},
		{"all + all", rbac.ScopeAll, rbac.ScopeAll, rbac.ScopeAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := rbac.PermissionSet{Posts: rbac.ContentPermission{Edit: tt.a}}
			b := rbac.PermissionSet{Posts: rbac.ContentPermission{Edit: tt.b}}
			if got := rbac.Merge(a, b).Posts.Edit; got != tt.expected {
				t.Errorf("merge(%v, %v).posts.edit = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

// The two-role scenario: a creator role and a moderator role combine
// into the union of both.
func TestMergeTwoRoleScenario(t *testing.T) {
	roleA := rbac.Coerce(map[string]any{
		"posts": map[string]any{"create": true, "edit": "own", "delete": false, "publish": false},
	})
	roleB := rbac.Coerce(map[string]any{
		"posts": map[string]any{"create": false, "edit": "all", "delete": "own", "publish": true},
	})

	merged := rbac.Merge(roleA, roleB)
	expected := rbac.ContentPermission{
		Create:  true,
		Edit:    rbac.ScopeAll,
		Delete:  rbac.ScopeOwn,
		Publish: true,
	}
	if merged.Posts != expected {
		t.Errorf("merged posts = %+v, expected %+v", merged.Posts, expected)
	}
	if merged.Events != (rbac.ContentPermission{}) {
		t.Errorf("events must stay denied, got %+v", merged.Events)
	}
}

func TestMergeAll(t *testing.T) {
	if got := rbac.MergeAll(nil); got != rbac.Empty() {
		t.Errorf("MergeAll(nil) = %+v, expected all-deny default", got)
	}

	sets := sampleSets()
	folded := rbac.MergeAll(sets)
	pairwise := rbac.Empty()
	for _, s := range sets {
		pairwise = rbac.Merge(pairwise, s)
	}
	if folded != pairwise {
		t.Errorf("MergeAll = %+v, expected %+v", folded, pairwise)
	}
}
