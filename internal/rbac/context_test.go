package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDirectory serves canned records and counts lookups so tests can
// assert which branches fired.
type stubDirectory struct {
	membersByEmail map[string]*MemberRecord
	membersByUser  map[string]*MemberRecord
	clubsByEmail   map[string]*ClubRecord
	clubsByUser    map[string]*ClubRecord
	providers      map[string]*ProviderRecord

	memberErr   error
	clubErr     error
	providerErr error

	calls int
}

func (d *stubDirectory) MemberByEmail(_ context.Context, email string) (*MemberRecord, error) {
	d.calls++
	if d.memberErr != nil {
		return nil, d.memberErr
	}
	return d.membersByEmail[email], nil
}

func (d *stubDirectory) MemberByLoginUser(_ context.Context, user string) (*MemberRecord, error) {
	d.calls++
	if d.memberErr != nil {
		return nil, d.memberErr
	}
	return d.membersByUser[user], nil
}

func (d *stubDirectory) ClubByContactEmail(_ context.Context, email string) (*ClubRecord, error) {
	d.calls++
	if d.clubErr != nil {
		return nil, d.clubErr
	}
	return d.clubsByEmail[email], nil
}

func (d *stubDirectory) ClubByLoginUser(_ context.Context, user string) (*ClubRecord, error) {
	d.calls++
	if d.clubErr != nil {
		return nil, d.clubErr
	}
	return d.clubsByUser[user], nil
}

func (d *stubDirectory) ProviderByEmail(_ context.Context, email string) (*ProviderRecord, error) {
	d.calls++
	if d.providerErr != nil {
		return nil, d.providerErr
	}
	return d.providers[email], nil
}

const testSuperAdmin = "root@clubhub.io"

func TestBuildSuperAdminSkipsDirectory(t *testing.T) {
	dir := &stubDirectory{}
	b := NewContextBuilder(dir, testSuperAdmin)

	rc := b.Build(context.Background(), "  Root@ClubHub.IO ", RolePlayer)

	assert.Equal(t, RoleSuperAdmin, rc.Role)
	assert.Equal(t, testSuperAdmin, rc.Email)
	assert.Empty(t, rc.ClubID)
	assert.Zero(t, dir.calls, "the reserved address must not hit the directory")
}

func TestBuildMemberPinnedRole(t *testing.T) {
	dir := &stubDirectory{
		membersByEmail: map[string]*MemberRecord{
			"kim@fc.example": {
				ID:     "m-1",
				Email:  "kim@fc.example",
				Roles:  []Role{RoleCoach, RolePlayer},
				ClubID: "club-42",
			},
		},
	}
	b := NewContextBuilder(dir, testSuperAdmin)

	rc := b.Build(context.Background(), "KIM@fc.example", RolePlayer)
	assert.Equal(t, RolePlayer, rc.Role)
	assert.Equal(t, "club-42", rc.ClubID)

	// A pinned role the member does not hold falls back to the first
	// stored role.
	rc = b.Build(context.Background(), "kim@fc.example", RoleClubAdmin)
	assert.Equal(t, RoleCoach, rc.Role)

	rc = b.Build(context.Background(), "kim@fc.example", RoleNone)
	assert.Equal(t, RoleCoach, rc.Role)
}

func TestBuildMemberWithoutRoles(t *testing.T) {
	dir := &stubDirectory{
		membersByEmail: map[string]*MemberRecord{
			"empty@fc.example": {ID: "m-2", Email: "empty@fc.example", ClubID: "club-42"},
		},
	}
	b := NewContextBuilder(dir, testSuperAdmin)

	rc := b.Build(context.Background(), "empty@fc.example", RolePlayer)
	assert.Equal(t, RoleNone, rc.Role)
	assert.False(t, rc.Recognized())
}

func TestBuildClubAdmin(t *testing.T) {
	dir := &stubDirectory{
		clubsByEmail: map[string]*ClubRecord{
			"office@fc.example": {ID: "club-42", ContactEmail: "office@fc.example"},
		},
	}
	b := NewContextBuilder(dir, testSuperAdmin)

	rc := b.Build(context.Background(), "office@fc.example", RoleNone)
	assert.Equal(t, RoleClubAdmin, rc.Role)
	assert.Equal(t, "club-42", rc.ClubID)
}

func TestBuildProvider(t *testing.T) {
	dir := &stubDirectory{
		providers: map[string]*ProviderRecord{
			"sales@travel.example": {ID: "p-1", Email: "sales@travel.example", Type: ProviderTypeTravel},
		},
	}
	b := NewContextBuilder(dir, testSuperAdmin)

	rc := b.Build(context.Background(), "sales@travel.example", RoleNone)
	assert.Equal(t, ProviderRole(ProviderTypeTravel), rc.Role)
	assert.Empty(t, rc.ClubID, "providers are not tenant accounts")
}

func TestBuildMemberWinsOverClub(t *testing.T) {
	dir := &stubDirectory{
		membersByEmail: map[string]*MemberRecord{
			"shared@fc.example": {ID: "m-3", Email: "shared@fc.example", Roles: []Role{RoleManager}, ClubID: "club-7"},
		},
		clubsByEmail: map[string]*ClubRecord{
			"shared@fc.example": {ID: "club-7", ContactEmail: "shared@fc.example"},
		},
	}
	b := NewContextBuilder(dir, testSuperAdmin)

	rc := b.Build(context.Background(), "shared@fc.example", RoleNone)
	assert.Equal(t, RoleManager, rc.Role)
}

func TestBuildUnknownPrincipal(t *testing.T) {
	b := NewContextBuilder(&stubDirectory{}, testSuperAdmin)

	rc := b.Build(context.Background(), "nobody@nowhere.example", RolePlayer)
	require.NotNil(t, rc)
	assert.Equal(t, RoleNone, rc.Role)
	assert.False(t, rc.Recognized())
}

func TestBuildLookupErrorsDegradeToNoMatch(t *testing.T) {
	dir := &stubDirectory{
		memberErr: errors.New("connection refused"),
		providers: map[string]*ProviderRecord{
			"sales@camp.example": {ID: "p-2", Email: "sales@camp.example", Type: ProviderTypeCamp},
		},
	}
	b := NewContextBuilder(dir, testSuperAdmin)

	// The broken member collection must not stop resolution from
	// reaching the provider branch, and must never widen access.
	rc := b.Build(context.Background(), "sales@camp.example", RoleNone)
	assert.Equal(t, ProviderRole(ProviderTypeCamp), rc.Role)

	dir.clubErr = errors.New("connection refused")
	dir.providerErr = errors.New("connection refused")
	rc = b.Build(context.Background(), "sales@camp.example", RoleNone)
	assert.Equal(t, RoleNone, rc.Role)
}

func TestPickActiveRole(t *testing.T) {
	held := []Role{RoleCoach, RolePlayer, RoleParent}

	assert.Equal(t, RolePlayer, pickActiveRole(held, RolePlayer))
	assert.Equal(t, RoleCoach, pickActiveRole(held, RoleSponsor))
	assert.Equal(t, RoleCoach, pickActiveRole(held, RoleNone))
	assert.Equal(t, RoleNone, pickActiveRole(nil, RolePlayer))
}
