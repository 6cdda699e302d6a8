package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clubhub/internal/rbac"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// memberDirectory serves a single member record and nothing else.
type memberDirectory struct {
	member *rbac.MemberRecord
}

func (d *memberDirectory) MemberByEmail(_ context.Context, email string) (*rbac.MemberRecord, error) {
	if d.member != nil && d.member.Email == email {
		return d.member, nil
	}
	return nil, nil
}

func (d *memberDirectory) MemberByLoginUser(context.Context, string) (*rbac.MemberRecord, error) {
	return nil, nil
}

func (d *memberDirectory) ClubByContactEmail(context.Context, string) (*rbac.ClubRecord, error) {
	return nil, nil
}

func (d *memberDirectory) ClubByLoginUser(context.Context, string) (*rbac.ClubRecord, error) {
	return nil, nil
}

func (d *memberDirectory) ProviderByEmail(context.Context, string) (*rbac.ProviderRecord, error) {
	return nil, nil
}

func signToken(t *testing.T, email, activeRole string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email:      email,
		ActiveRole: activeRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthMiddleware() *AuthMiddleware {
	dir := &memberDirectory{member: &rbac.MemberRecord{
		ID:     "m-1",
		Email:  "kim@fc.example",
		Roles:  []rbac.Role{rbac.RoleCoach, rbac.RolePlayer},
		ClubID: "club-42",
	}}
	return NewAuthMiddleware(testSecret, rbac.NewContextBuilder(dir, "root@clubhub.io"))
}

func runAuth(t *testing.T, m *AuthMiddleware, authorization, roleHeader string) (echo.Context, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if roleHeader != "" {
		req.Header.Set(HeaderActiveRole, roleHeader)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())
	return c, m.Middleware()(okHandler)(c)
}

func TestAuthMiddlewareResolvesContext(t *testing.T) {
	m := newAuthMiddleware()

	c, err := runAuth(t, m, "Bearer "+signToken(t, "kim@fc.example", ""), "")
	require.NoError(t, err)

	rc := GetRbacContext(c)
	require.NotNil(t, rc)
	assert.Equal(t, rbac.RoleCoach, rc.Role)
	assert.Equal(t, "kim@fc.example", GetEmail(c))
	assert.Equal(t, "club-42", GetClubID(c))
}

func TestAuthMiddlewareHeaderOverridesClaim(t *testing.T) {
	m := newAuthMiddleware()

	c, err := runAuth(t, m, "Bearer "+signToken(t, "kim@fc.example", "Coach"), "Player")
	require.NoError(t, err)
	assert.Equal(t, rbac.RolePlayer, GetRbacContext(c).Role)
}

func TestAuthMiddlewareIgnoresUnheldRole(t *testing.T) {
	m := newAuthMiddleware()

	// A pinned role outside the stored set falls back to the first held
	// role instead of escalating.
	c, err := runAuth(t, m, "Bearer "+signToken(t, "kim@fc.example", ""), "Club-Admin")
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleCoach, GetRbacContext(c).Role)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	m := newAuthMiddleware()

	cases := map[string]string{
		"missing header": "",
		"wrong shape":    "Token abc",
		"garbage token":  "Bearer not.a.jwt",
	}
	for name, header := range cases {
		_, err := runAuth(t, m, header, "")
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr, name)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code, name)
	}

	// A token signed with a different key is rejected even when well formed.
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "kim@fc.example"})
	forged, err := other.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = runAuth(t, m, "Bearer "+forged, "")
	assert.Error(t, err)
}

func TestAuthMiddlewareUnknownPrincipal(t *testing.T) {
	m := newAuthMiddleware()

	// Deleted accounts keep a valid token until expiry but resolve to an
	// unrecognized context, which every gate check then denies.
	c, err := runAuth(t, m, "Bearer "+signToken(t, "gone@fc.example", ""), "")
	require.NoError(t, err)
	assert.False(t, GetRbacContext(c).Recognized())
}
