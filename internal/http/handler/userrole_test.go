package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/domain/role"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
)

type fakeUserRoleRepo struct {
	assignments map[uuid.UUID][]uuid.UUID
	setCalls    int
}

func newFakeUserRoleRepo() *fakeUserRoleRepo {
	return &fakeUserRoleRepo{assignments: make(map[uuid.UUID][]uuid.UUID)}
}

func (f *fakeUserRoleRepo) RolesForUser(_ context.Context, userID uuid.UUID) ([]rbac.AssignedRole, error) {
	ids := f.assignments[userID]
	out := make([]rbac.AssignedRole, len(ids))
	for i, id := range ids {
		out[i] = rbac.AssignedRole{RoleID: id}
	}
	return out, nil
}

func (f *fakeUserRoleRepo) SetUserRoles(_ context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	f.setCalls++
	f.assignments[userID] = roleIDs
	return nil
}

func roleIDsBody(roleIDs []uuid.UUID) string {
	parts := make([]string, len(roleIDs))
	for i, id := range roleIDs {
		parts[i] = fmt.Sprintf("%q", id)
	}
	return `{"role_ids":[` + strings.Join(parts, ",") + `]}`
}

func TestUserRoleHandler_RestrictedAssignment(t *testing.T) {
	adminRole := &role.Role{ID: uuid.New(), Name: "Administrator", Slug: rbac.SlugAdministrator, IsSystem: true}
	leadRole := &role.Role{ID: uuid.New(), Name: "Schulleitung", Slug: rbac.SlugSchulleitung, IsSystem: true}
	editorRole := &role.Role{ID: uuid.New(), Name: "Redakteur", Slug: "redakteur", IsSystem: true}

	tests := []struct {
		name       string
		actorSlugs []string
		assign     []uuid.UUID
		wantCode   int
		wantStored bool
	}{
		{
			name:       "schulleitung assigning administrator is denied",
			actorSlugs: []string{rbac.SlugSchulleitung},
			assign:     []uuid.UUID{adminRole.ID},
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "schulleitung assigning schulleitung is denied",
			actorSlugs: []string{rbac.SlugSchulleitung},
			assign:     []uuid.UUID{leadRole.ID},
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "schulleitung mixing a restricted role in is denied",
			actorSlugs: []string{rbac.SlugSchulleitung},
			assign:     []uuid.UUID{editorRole.ID, adminRole.ID},
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "schulleitung assigning unrestricted role is allowed",
			actorSlugs: []string{rbac.SlugSchulleitung},
			assign:     []uuid.UUID{editorRole.ID},
			wantCode:   http.StatusOK,
			wantStored: true,
		},
		{
			name:       "administrator assigning administrator is allowed",
			actorSlugs: []string{rbac.SlugAdministrator},
			assign:     []uuid.UUID{adminRole.ID},
			wantCode:   http.StatusOK,
			wantStored: true,
		},
		{
			name:       "schulleitung clearing all roles is allowed",
			actorSlugs: []string{rbac.SlugSchulleitung},
			assign:     nil,
			wantCode:   http.StatusOK,
			wantStored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			roleRepo := newFakeRoleRepo(adminRole, leadRole, editorRole)
			userRoleRepo := newFakeUserRoleRepo()
			h := NewUserRoleHandler(userRoleRepo, roleRepo, nil, nil)

			targetUserID := uuid.New()
			c, rec := newJSONContext(e, http.MethodPut, "/api/users/"+targetUserID.String()+"/roles", roleIDsBody(tt.assign))
			c.SetParamNames(paramUserID)
			c.SetParamValues(targetUserID.String())
			c.Set(auth.ContextKeyRoleSlugs, tt.actorSlugs)

			require.NoError(t, h.SetUserRoles(c))
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantStored {
				assert.Equal(t, 1, userRoleRepo.setCalls)
				assert.Len(t, userRoleRepo.assignments[targetUserID], len(tt.assign))
				for i, id := range tt.assign {
					assert.Equal(t, id, userRoleRepo.assignments[targetUserID][i])
				}
			} else {
				assert.Zero(t, userRoleRepo.setCalls, "denied assignment must not write")
			}
		})
	}
}

func TestUserRoleHandler_InvalidUserID(t *testing.T) {
	e := echo.New()
	h := NewUserRoleHandler(newFakeUserRoleRepo(), newFakeRoleRepo(), nil, nil)

	c, rec := newJSONContext(e, http.MethodPut, "/api/users/not-a-uuid/roles", `{"role_ids":[]}`)
	c.SetParamNames(paramUserID)
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.SetUserRoles(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
