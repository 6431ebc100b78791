package rbac

import "encoding/json"

// Scope describes how far an ownership-scoped action (edit, delete)
// reaches: not at all, own content only, or any content. The three
// states form a total order: ScopeNone < ScopeOwn < ScopeAll.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAll
)

const (
	scopeLiteralOwn = "own"
	scopeLiteralAll = "all"
)

func (s Scope) String() string {
	switch s {
	case ScopeOwn:
		return scopeLiteralOwn
	case ScopeAll:
		return scopeLiteralAll
	default:
		return "none"
	}
}

// Allows reports whether the scope grants the action at all.
func (s Scope) Allows() bool {
	return s != ScopeNone
}

// AllowsOwn reports whether the scope covers the actor's own content.
// A scope of ScopeAll implies ScopeOwn.
func (s Scope) AllowsOwn() bool {
	return s == ScopeOwn || s == ScopeAll
}

// AllowsAll reports whether the scope covers content owned by anyone.
func (s Scope) AllowsAll() bool {
	return s == ScopeAll
}

// ParseScope maps the stored wire values to a Scope. Only the exact
// literals "own" and "all" grant anything; every other value, of any
// type, is ScopeNone.
func ParseScope(v any) Scope {
	str, ok := v.(string)
	if !ok {
		return ScopeNone
	}
	switch str {
	case scopeLiteralAll:
		return ScopeAll
	case scopeLiteralOwn:
		return ScopeOwn
	default:
		return ScopeNone
	}
}

// maxScope is the join under ScopeNone < ScopeOwn < ScopeAll.
func maxScope(a, b Scope) Scope {
	if b > a {
		return b
	}
	return a
}

// MarshalJSON writes the stored wire shape: false, "own" or "all".
func (s Scope) MarshalJSON() ([]byte, error) {
	switch s {
	case ScopeOwn, ScopeAll:
		return json.Marshal(s.String())
	default:
		return json.Marshal(false)
	}
}

// UnmarshalJSON never fails: unrecognized values decode to ScopeNone,
// matching the coercion contract for stored permission documents.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ScopeNone
		return nil
	}
	*s = ParseScope(v)
	return nil
}
