package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clubhub/internal/rbac"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, target string) echo.Context {
	t.Helper()
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireModuleGrantsAndScopes(t *testing.T) {
	gate := rbac.NewGate(nil, nil)
	c := newTestContext(t, "/trainings?clubId=club-99")
	c.Set("rbac", &rbac.Context{Email: "kim@fc.example", Role: rbac.RoleCoach, ClubID: "club-42"})

	err := RequireModule(gate, rbac.ModuleTraining)(okHandler)(c)
	require.NoError(t, err)

	assert.Equal(t, rbac.LevelFull, GetLevel(c))
	// Non-Super-Admin callers stay pinned to their own club regardless of
	// the clubId they asked for.
	assert.Equal(t, rbac.ClubScope("club-42"), GetScope(c))
}

func TestRequireModuleDenies(t *testing.T) {
	gate := rbac.NewGate(nil, nil)
	c := newTestContext(t, "/finance")
	c.Set("rbac", &rbac.Context{Email: "kim@fc.example", Role: rbac.RolePlayer, ClubID: "club-42"})

	err := RequireModule(gate, rbac.ModuleFinance)(okHandler)(c)

	var denied *rbac.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, rbac.ModuleFinance, denied.Module)
	assert.Equal(t, rbac.LevelNone, GetLevel(c), "nothing minted on the context for a denied request")
}

func TestRequireModuleWithoutContext(t *testing.T) {
	gate := rbac.NewGate(nil, nil)
	c := newTestContext(t, "/members")

	err := RequireModule(gate, rbac.ModuleMembers)(okHandler)(c)
	assert.Error(t, err)
}

func TestRequireModuleSuperAdminWildcard(t *testing.T) {
	gate := rbac.NewGate(nil, nil)
	c := newTestContext(t, "/members?clubId=all")
	c.Set("rbac", &rbac.Context{Email: "root@clubhub.io", Role: rbac.RoleSuperAdmin})

	err := RequireModule(gate, rbac.ModuleMembers)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, rbac.AllScope(), GetScope(c))
}

func TestRequireLevel(t *testing.T) {
	c := newTestContext(t, "/members/42")
	c.Set("permissionLevel", rbac.LevelLimited)

	err := RequireLevel(rbac.LevelFull)(okHandler)(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	c.Set("permissionLevel", rbac.LevelFull)
	assert.NoError(t, RequireLevel(rbac.LevelFull)(okHandler)(c))
}

func TestScopeAndLevelDefaults(t *testing.T) {
	c := newTestContext(t, "/members")

	// A route that skipped RequireModule leaks nothing.
	assert.Equal(t, rbac.EmptyScope(), GetScope(c))
	assert.Equal(t, rbac.LevelNone, GetLevel(c))
}
