package rbac

import (
	"errors"
	"fmt"
)

// ErrAccessDenied is the sentinel wrapped by every guard failure, for
// use with errors.Is().
var ErrAccessDenied = errors.New("access denied")

// AccessDeniedError carries the capability a guard refused, so the
// caller can log or surface what was attempted.
type AccessDeniedError struct {
	Capability Capability
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: missing capability %q", e.Capability)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// Guard is the only component that turns a deny into control flow: it
// returns nil when the permission set grants the capability and an
// *AccessDeniedError otherwise. Everything below it stays pure.
func Guard(perms PermissionSet, capability Capability) error {
	if Check(perms, capability) {
		return nil
	}
	return &AccessDeniedError{Capability: capability}
}
