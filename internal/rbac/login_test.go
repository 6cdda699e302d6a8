package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmptyIdentifier(t *testing.T) {
	r := NewLoginResolver(&stubDirectory{}, testSuperAdmin)

	for _, id := range []string{"", "   "} {
		_, err := r.Resolve(context.Background(), id)
		assert.ErrorIs(t, err, ErrIdentifierNotFound)
	}
}

func TestResolveSuperAdmin(t *testing.T) {
	dir := &stubDirectory{}
	r := NewLoginResolver(dir, testSuperAdmin)

	target, err := r.Resolve(context.Background(), " Root@ClubHub.IO ")
	require.NoError(t, err)
	assert.True(t, target.SuperAdmin)
	assert.Equal(t, testSuperAdmin, target.Email)
	assert.Zero(t, dir.calls)
}

func TestResolveMemberEmail(t *testing.T) {
	dir := &stubDirectory{
		membersByEmail: map[string]*MemberRecord{
			"kim@fc.example": {ID: "m-1", Email: "Kim@FC.example"},
		},
	}
	r := NewLoginResolver(dir, testSuperAdmin)

	target, err := r.Resolve(context.Background(), "KIM@fc.example")
	require.NoError(t, err)
	assert.False(t, target.SuperAdmin)
	assert.Equal(t, "kim@fc.example", target.Email)
}

func TestResolveClubContactEmailRequiresLoginUserMatch(t *testing.T) {
	dir := &stubDirectory{
		clubsByEmail: map[string]*ClubRecord{
			"office@fc.example": {
				ID:            "club-42",
				ContactEmail:  "Office@FC.example",
				ClubLoginUser: "office@fc.example",
			},
			"press@fc.example": {
				ID:            "club-43",
				ContactEmail:  "press@fc.example",
				ClubLoginUser: "fc-awesome",
			},
		},
	}
	r := NewLoginResolver(dir, testSuperAdmin)

	target, err := r.Resolve(context.Background(), "office@fc.example")
	require.NoError(t, err)
	assert.Equal(t, "office@fc.example", target.Email)

	// A contact address that is not also the club's login username must
	// not open the club-admin account; it falls through to the typed
	// address itself.
	target, err = r.Resolve(context.Background(), "press@fc.example")
	require.NoError(t, err)
	assert.Equal(t, "press@fc.example", target.Email)
	assert.False(t, target.SuperAdmin)
}

func TestResolveUnknownEmailFallsThrough(t *testing.T) {
	r := NewLoginResolver(&stubDirectory{}, testSuperAdmin)

	// Externally invited accounts have no member or club record.
	target, err := r.Resolve(context.Background(), "referee@league.example")
	require.NoError(t, err)
	assert.Equal(t, "referee@league.example", target.Email)
}

func TestResolveBareUsername(t *testing.T) {
	dir := &stubDirectory{
		membersByUser: map[string]*MemberRecord{
			"kim42": {ID: "m-1", Email: "kim@fc.example"},
		},
		clubsByUser: map[string]*ClubRecord{
			"fc-awesome": {ID: "club-42", ContactEmail: "office@fc.example"},
			"kim42":      {ID: "club-43", ContactEmail: "other@fc.example"},
		},
	}
	r := NewLoginResolver(dir, testSuperAdmin)

	// Members win over clubs on a shared username.
	target, err := r.Resolve(context.Background(), "Kim42")
	require.NoError(t, err)
	assert.Equal(t, "kim@fc.example", target.Email)

	target, err = r.Resolve(context.Background(), "FC-Awesome")
	require.NoError(t, err)
	assert.Equal(t, "office@fc.example", target.Email)

	_, err = r.Resolve(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrIdentifierNotFound)
}

func TestResolveMissingEmail(t *testing.T) {
	dir := &stubDirectory{
		membersByUser: map[string]*MemberRecord{
			"kim42": {ID: "m-1"},
		},
		clubsByUser: map[string]*ClubRecord{
			"fc-awesome": {ID: "club-42"},
		},
	}
	r := NewLoginResolver(dir, testSuperAdmin)

	var missing *MissingEmailError

	_, err := r.Resolve(context.Background(), "kim42")
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "kim42", missing.Identifier)

	_, err = r.Resolve(context.Background(), "fc-awesome")
	assert.ErrorAs(t, err, &missing)
}

func TestIsEmailShaped(t *testing.T) {
	cases := map[string]bool{
		"kim@fc.example":   true,
		"a@b.c":            true,
		"admin@fcawesome":  false,
		"@fc.example":      false,
		"kim42":            false,
		"kim.fc":           false,
		"kim@fc.example.v": true,
	}
	for input, want := range cases {
		assert.Equal(t, want, isEmailShaped(input), "input %q", input)
	}
}
