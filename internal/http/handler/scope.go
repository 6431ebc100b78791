package handler

import (
	"github.com/google/uuid"

	"github.com/finnbusse/grabbe-cms/internal/rbac"
)

// scopeAllows applies an own/all scope to a concrete resource: "all"
// covers everything, "own" only entries the caller authored.
func scopeAllows(scope rbac.Scope, ownerID, userID uuid.UUID) bool {
	if scope.AllowsAll() {
		return true
	}
	return scope.AllowsOwn() && ownerID == userID
}
