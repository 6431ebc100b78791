package rbac_test

import (
	"errors"
	"testing"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
)

func TestGuardAllows(t *testing.T) {
	perms := rbac.PermissionSet{Navigation: true}
	if err := rbac.Guard(perms, rbac.CapabilityNavigation); err != nil {
		t.Errorf("Guard on granted capability returned %v, expected nil", err)
	}
}

func TestGuardDenies(t *testing.T) {
	err := rbac.Guard(rbac.Empty(), rbac.CapabilitySettings)
	if err == nil {
		t.Fatal("Guard on denied capability returned nil")
	}

	if !errors.Is(err, rbac.ErrAccessDenied) {
		t.Errorf("guard error should wrap ErrAccessDenied, got %v", err)
	}

	var denied *rbac.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("guard error should be *AccessDeniedError, got %T", err)
	}
	if denied.Capability != rbac.CapabilitySettings {
		t.Errorf("denied capability = %q, expected %q", denied.Capability, rbac.CapabilitySettings)
	}
}

func TestGuardUnknownCapability(t *testing.T) {
	err := rbac.Guard(rbac.Empty(), "no.such.capability")
	if !errors.Is(err, rbac.ErrAccessDenied) {
		t.Errorf("guard on unknown capability must deny, got %v", err)
	}
}
