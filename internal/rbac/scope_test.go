package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveScopeNilContext(t *testing.T) {
	assert.Equal(t, EmptyScope(), EffectiveScope(nil, "club-42"))
}

func TestEffectiveScopeSuperAdmin(t *testing.T) {
	rc := &Context{Email: testSuperAdmin, Role: RoleSuperAdmin}

	assert.Equal(t, AllScope(), EffectiveScope(rc, ""))
	assert.Equal(t, AllScope(), EffectiveScope(rc, ScopeWildcard))
	assert.Equal(t, ClubScope("club-42"), EffectiveScope(rc, "club-42"))
}

func TestEffectiveScopePinsToOwnClub(t *testing.T) {
	rc := &Context{Email: "kim@fc.example", Role: RolePlayer, ClubID: "club-42"}

	// The requested id is untrusted for non-Super-Admin roles.
	assert.Equal(t, ClubScope("club-42"), EffectiveScope(rc, "club-99"))
	assert.Equal(t, ClubScope("club-42"), EffectiveScope(rc, ScopeWildcard))
	assert.Equal(t, ClubScope("club-42"), EffectiveScope(rc, ""))
}

func TestEffectiveScopeClublessFailsClosed(t *testing.T) {
	rc := &Context{Email: "lost@fc.example", Role: RoleCoach}

	assert.Equal(t, EmptyScope(), EffectiveScope(rc, "club-42"))
}
