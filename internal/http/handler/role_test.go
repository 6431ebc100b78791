package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnbusse/grabbe-cms/internal/domain/role"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
)

type fakeRoleRepo struct {
	roles map[uuid.UUID]*role.Role
}

func newFakeRoleRepo(roles ...*role.Role) *fakeRoleRepo {
	repo := &fakeRoleRepo{roles: make(map[uuid.UUID]*role.Role)}
	for _, r := range roles {
		repo.roles[r.ID] = r
	}
	return repo
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id uuid.UUID) (*role.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, apperrors.NotFound("role not found")
	}
	return r, nil
}

func (f *fakeRoleRepo) GetBySlug(_ context.Context, slug string) (*role.Role, error) {
	for _, r := range f.roles {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("role not found")
}

func (f *fakeRoleRepo) List(_ context.Context) ([]*role.Role, error) {
	out := make([]*role.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoleRepo) Create(_ context.Context, input role.CreateRoleInput) (*role.Role, error) {
	for _, r := range f.roles {
		if r.Slug == input.Slug {
			return nil, apperrors.DuplicateSlug("role slug already exists")
		}
	}
	r := &role.Role{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        input.Slug,
		Permissions: input.Permissions,
	}
	f.roles[r.ID] = r
	return r, nil
}

func (f *fakeRoleRepo) Update(_ context.Context, id uuid.UUID, input role.UpdateRoleInput) error {
	r, ok := f.roles[id]
	if !ok {
		return apperrors.NotFound("role not found")
	}
	if r.IsSystem {
		return apperrors.SystemRole("system role is immutable")
	}
	r.Name = input.Name
	r.Permissions = input.Permissions
	return nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r, ok := f.roles[id]
	if !ok {
		return apperrors.NotFound("role not found")
	}
	if r.IsSystem {
		return apperrors.SystemRole("system role is immutable")
	}
	delete(f.roles, id)
	return nil
}

func (f *fakeRoleRepo) SlugsByIDs(_ context.Context, ids []uuid.UUID) ([]string, error) {
	var slugs []string
	for _, id := range ids {
		if r, ok := f.roles[id]; ok {
			slugs = append(slugs, r.Slug)
		}
	}
	return slugs, nil
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRoleHandler_UpdateSystemRoleRejected(t *testing.T) {
	e := echo.New()
	systemRole := &role.Role{
		ID:       uuid.New(),
		Name:     "Administrator",
		Slug:     rbac.SlugAdministrator,
		IsSystem: true,
	}
	repo := newFakeRoleRepo(systemRole)
	h := NewRoleHandler(repo, nil, nil)

	c, rec := newJSONContext(e, http.MethodPut, "/api/roles/"+systemRole.ID.String(),
		`{"name":"Renamed","permissions":{}}`)
	c.SetParamNames(paramID)
	c.SetParamValues(systemRole.ID.String())

	require.NoError(t, h.UpdateRole(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSystemRoleImmutable)

	// The stored role must be untouched
	stored, err := repo.GetByID(context.Background(), systemRole.ID)
	require.NoError(t, err)
	assert.Equal(t, "Administrator", stored.Name)
}

func TestRoleHandler_DeleteSystemRoleRejected(t *testing.T) {
	e := echo.New()
	systemRole := &role.Role{
		ID:       uuid.New(),
		Name:     "Schulleitung",
		Slug:     rbac.SlugSchulleitung,
		IsSystem: true,
	}
	repo := newFakeRoleRepo(systemRole)
	h := NewRoleHandler(repo, nil, nil)

	c, rec := newJSONContext(e, http.MethodDelete, "/api/roles/"+systemRole.ID.String(), "")
	c.SetParamNames(paramID)
	c.SetParamValues(systemRole.ID.String())

	require.NoError(t, h.DeleteRole(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err := repo.GetByID(context.Background(), systemRole.ID)
	assert.NoError(t, err, "system role must still exist")
}

func TestRoleHandler_DeleteCustomRole(t *testing.T) {
	e := echo.New()
	customRole := &role.Role{
		ID:   uuid.New(),
		Name: "Redaktion Sport",
		Slug: "redaktion-sport",
	}
	repo := newFakeRoleRepo(customRole)
	h := NewRoleHandler(repo, nil, nil)

	c, rec := newJSONContext(e, http.MethodDelete, "/api/roles/"+customRole.ID.String(), "")
	c.SetParamNames(paramID)
	c.SetParamValues(customRole.ID.String())

	require.NoError(t, h.DeleteRole(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := repo.GetByID(context.Background(), customRole.ID)
	assert.Error(t, err)
}

func TestRoleHandler_CreateNormalizesSlugAndCoercesPermissions(t *testing.T) {
	e := echo.New()
	repo := newFakeRoleRepo()
	h := NewRoleHandler(repo, nil, nil)

	// Slug carries uppercase and umlauts; permissions carry junk values
	// that coercion must drop.
	body := `{
		"name": "AG Leitung",
		"slug": "AG Leitung!",
		"permissions": {
			"posts": {"create": true, "edit": "superadmin"},
			"tags": "yes",
			"unknownArea": true
		}
	}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/roles", body)

	require.NoError(t, h.CreateRole(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	created, err := repo.GetBySlug(context.Background(), "ag-leitung-")
	require.NoError(t, err)
	assert.True(t, created.Permissions.Posts.Create)
	assert.Equal(t, rbac.ScopeNone, created.Permissions.Posts.Edit)
	assert.False(t, created.Permissions.Tags)
}

func TestRoleHandler_CreateDuplicateSlugConflicts(t *testing.T) {
	e := echo.New()
	existing := &role.Role{ID: uuid.New(), Name: "Redaktion", Slug: "redaktion"}
	repo := newFakeRoleRepo(existing)
	h := NewRoleHandler(repo, nil, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/roles",
		`{"name":"Redaktion 2","slug":"Redaktion","permissions":{}}`)

	require.NoError(t, h.CreateRole(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSlugAlreadyExists)
}
