package audit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnbusse/grabbe-cms/internal/auth"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestActorFromContext(t *testing.T) {
	userID := uuid.New()

	c := newTestContext(t)
	c.Set(auth.ContextKeyUserID, userID)

	actor := actorFromContext(c)
	require.NotNil(t, actor)
	assert.Equal(t, userID, *actor)
}

func TestActorFromContextUnauthenticated(t *testing.T) {
	assert.Nil(t, actorFromContext(newTestContext(t)))
}

func TestActorFromContextWrongType(t *testing.T) {
	c := newTestContext(t)
	c.Set(auth.ContextKeyUserID, "not-a-uuid")

	assert.Nil(t, actorFromContext(c))
}
