package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest(t *testing.T) {
	v := NewValidator()
	require.NotNil(t, v)

	assert.NoError(t, v.Validate(&LoginRequest{Identifier: "kim@fc.example", Password: "secret"}))
	assert.NoError(t, v.Validate(&LoginRequest{Identifier: "fc-awesome", Password: "secret"}))
	assert.Error(t, v.Validate(&LoginRequest{Password: "secret"}))
	assert.Error(t, v.Validate(&LoginRequest{Identifier: "kim@fc.example"}))
}

func TestActiveRoleRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&ActiveRoleRequest{Role: "Coach"}))
	assert.NoError(t, v.Validate(&ActiveRoleRequest{Role: "Reise-Anbieter"}))
	assert.Error(t, v.Validate(&ActiveRoleRequest{Role: "Intruder"}))
	assert.Error(t, v.Validate(&ActiveRoleRequest{}))
}

func TestMemberInviteRequest(t *testing.T) {
	v := NewValidator()
	tomorrow := time.Now().Add(24 * time.Hour)

	assert.NoError(t, v.Validate(&MemberInviteRequest{
		Email:     "kim@fc.example",
		Name:      "Kim",
		Roles:     []string{"Player", "Coach"},
		ExpiresAt: tomorrow,
	}))

	// Every role in the set is checked, not just the first.
	assert.Error(t, v.Validate(&MemberInviteRequest{
		Email:     "kim@fc.example",
		Name:      "Kim",
		Roles:     []string{"Player", "Intruder"},
		ExpiresAt: tomorrow,
	}))

	assert.Error(t, v.Validate(&MemberInviteRequest{
		Email:     "not-an-email",
		Name:      "Kim",
		Roles:     []string{"Player"},
		ExpiresAt: tomorrow,
	}))

	assert.Error(t, v.Validate(&MemberInviteRequest{
		Email:     "kim@fc.example",
		Name:      "Kim",
		Roles:     []string{},
		ExpiresAt: tomorrow,
	}))
}

func TestMatrixOverrideRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&MatrixOverrideRequest{Role: "Player", Module: "newsletter", Level: "limited"}))
	assert.Error(t, v.Validate(&MatrixOverrideRequest{Role: "Player", Module: "bogus", Level: "limited"}))
	assert.Error(t, v.Validate(&MatrixOverrideRequest{Role: "Player", Module: "newsletter", Level: "supreme"}))
	assert.Error(t, v.Validate(&MatrixOverrideRequest{Role: "Nobody", Module: "newsletter", Level: "full"}))
}

func TestSMTPSettingsRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&SMTPSettingsRequest{
		Host:     "smtp.example.org",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "noreply@fc.example",
	}))

	assert.Error(t, v.Validate(&SMTPSettingsRequest{
		Host:     "smtp.example.org",
		Port:     70000,
		Username: "mailer",
		Password: "secret",
		From:     "noreply@fc.example",
	}))

	assert.Error(t, v.Validate(&SMTPSettingsRequest{
		Host:     "smtp.example.org",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "not-an-email",
	}))
}

func TestStatusTags(t *testing.T) {
	v := NewValidator()

	type subject struct {
		Invite     string `json:"invite" validate:"omitempty,invite_status"`
		Newsletter string `json:"newsletter" validate:"omitempty,newsletter_status"`
		Lead       string `json:"lead" validate:"omitempty,lead_status"`
		Contract   string `json:"contract" validate:"omitempty,contract_status"`
	}

	assert.NoError(t, v.Validate(&subject{Invite: "PENDING", Newsletter: "SCHEDULED", Lead: "WON", Contract: "ACTIVE"}))
	assert.Error(t, v.Validate(&subject{Invite: "EXPIRED"}))
	assert.Error(t, v.Validate(&subject{Newsletter: "QUEUED"}))
	assert.Error(t, v.Validate(&subject{Lead: "COLD"}))
	assert.Error(t, v.Validate(&subject{Contract: "VOID"}))
}

func TestValidationErrorsMessage(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&LoginRequest{})
	require.Error(t, err)

	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "identifier")
	assert.Contains(t, ve.Error(), "password")
}
