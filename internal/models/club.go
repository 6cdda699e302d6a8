package models

import (
	"time"

	"clubhub/internal/events"
	"clubhub/internal/rbac"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Club is the tenant. Every business record carries its ClubID; the rbac
// scope resolver decides which ClubID a query may filter by.
type Club struct {
	Base
	Name          string         `gorm:"not null" json:"name" validate:"required,min=2"`
	ContactEmail  string         `gorm:"uniqueIndex;not null" json:"contactEmail" validate:"required,email"`
	ClubLoginUser string         `gorm:"uniqueIndex" json:"clubLoginUser"`
	Password      string         `gorm:"not null" json:"-"`
	LogoPath      string         `json:"logoPath,omitempty"`
	Settings      datatypes.JSON `gorm:"type:jsonb" json:"settings,omitempty"`
	Members       []Member       `gorm:"foreignKey:ClubID;references:ID" json:"members,omitempty"`
	Invites       []MemberInvite `gorm:"foreignKey:ClubID;references:ID;constraint:OnDelete:CASCADE" json:"invites,omitempty"`
}

func (c *Club) AfterCreate(tx *gorm.DB) error {
	events.Emit("club.created", c)
	return nil
}

// Member is a person account inside a club. Roles is an ordered JSON array;
// the first entry is the default active role when no preference is pinned.
type Member struct {
	Base
	Email         string         `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password      string         `gorm:"not null" json:"-"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Roles         datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"roles"`
	ClubID        string         `gorm:"type:uuid;not null;index" json:"clubId" validate:"required,uuid"`
	Club          *Club          `json:"club,omitempty"`
	ClubLoginUser string         `gorm:"index" json:"clubLoginUser,omitempty"`
	Teams         []Team         `gorm:"many2many:member_teams" json:"teams,omitempty"`
}

// RoleList decodes the stored role set, keeping order.
func (m *Member) RoleList() []rbac.Role {
	return rbac.DecodeRoles(m.Roles)
}

// SetRoles replaces the stored role set.
func (m *Member) SetRoles(roles []rbac.Role) error {
	raw, err := rbac.EncodeRoles(roles)
	if err != nil {
		return err
	}
	m.Roles = raw
	return nil
}

// Provider is an external vendor account (travel, camps, equipment). Its
// role is derived from Type at resolution time, never stored.
type Provider struct {
	Base
	Name     string `gorm:"not null" json:"name" validate:"required,min=2"`
	Email    string `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"not null" json:"-"`
	Type     string `gorm:"not null" json:"type" validate:"required,provider_type"`
}

// MemberInvite lets a club pull a person in under a preset role set.
type MemberInvite struct {
	Base
	Email     string         `gorm:"not null" json:"email" validate:"required,email"`
	Name      string         `gorm:"not null" json:"name" validate:"required,min=2"`
	ClubID    string         `gorm:"type:uuid;not null" json:"clubId" validate:"required,uuid"`
	Club      *Club          `json:"club,omitempty"`
	InviterID string         `gorm:"type:uuid;not null" json:"inviterId" validate:"required,uuid"`
	Inviter   *Member        `json:"inviter,omitempty"`
	Roles     datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"roles"`
	Code      string         `gorm:"not null" json:"code" validate:"required,min=4"`
	Status    InviteStatus   `gorm:"not null;default:'PENDING'" json:"status" validate:"required,invite_status"`
	ExpiresAt time.Time      `gorm:"not null" json:"expiresAt" validate:"required,gt"`
}

type PasswordReset struct {
	Base
	Member    *Member   `json:"member,omitempty"`
	MemberID  string    `gorm:"type:uuid;not null" json:"memberId"`
	Code      string    `gorm:"not null" json:"code"`
	Used      bool      `gorm:"default:false" json:"used"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthSession records an issued token pair. Keyed by email, not member id,
// because club-admin and provider principals have no member row.
type AuthSession struct {
	Base
	Email     string    `gorm:"not null;index" json:"email"`
	Token     string    `gorm:"not null" json:"token"`
	Refresh   string    `gorm:"not null" json:"refresh"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
