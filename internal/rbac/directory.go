package rbac

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// MemberRecord is the slice of a member account the resolution core needs.
// Roles keep the stored order; the first entry is the default active role.
type MemberRecord struct {
	ID            string
	Email         string
	Roles         []Role
	ClubID        string
	ClubLoginUser string
}

// ClubRecord identifies a club-admin account.
type ClubRecord struct {
	ID            string
	ContactEmail  string
	ClubLoginUser string
}

// ProviderRecord identifies an external provider account.
type ProviderRecord struct {
	ID    string
	Email string
	Type  string
}

// Directory is the read-only lookup seam over the member, club and provider
// collections. Implementations return (nil, nil) when nothing matches; at
// most one record matches any lookup. All matches are case-insensitive.
type Directory interface {
	MemberByEmail(ctx context.Context, email string) (*MemberRecord, error)
	MemberByLoginUser(ctx context.Context, user string) (*MemberRecord, error)
	ClubByContactEmail(ctx context.Context, email string) (*ClubRecord, error)
	ClubByLoginUser(ctx context.Context, user string) (*ClubRecord, error)
	ProviderByEmail(ctx context.Context, email string) (*ProviderRecord, error)
}

// directoryMember mirrors the members table columns the directory reads.
// Roles is the raw JSON array as stored; decoding happens in the mapper.
type directoryMember struct {
	ID            string
	Email         string
	Roles         []byte `gorm:"type:jsonb"`
	ClubID        string
	ClubLoginUser string
}

func (directoryMember) TableName() string { return "members" }

type directoryClub struct {
	ID            string
	ContactEmail  string
	ClubLoginUser string
}

func (directoryClub) TableName() string { return "clubs" }

type directoryProvider struct {
	ID    string
	Email string
	Type  string
}

func (directoryProvider) TableName() string { return "providers" }

// GormDirectory reads the three collections through gorm. First-match
// semantics come from First; soft-deleted rows are excluded the same way the
// services layer excludes them.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) MemberByEmail(ctx context.Context, email string) (*MemberRecord, error) {
	return d.member(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

func (d *GormDirectory) MemberByLoginUser(ctx context.Context, user string) (*MemberRecord, error) {
	return d.member(ctx, "LOWER(club_login_user) = ?", strings.ToLower(user))
}

func (d *GormDirectory) member(ctx context.Context, cond string, arg string) (*MemberRecord, error) {
	var row directoryMember
	err := d.db.WithContext(ctx).
		Where(cond, arg).
		Where("is_deleted = ?", false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &MemberRecord{
		ID:            row.ID,
		Email:         row.Email,
		Roles:         DecodeRoles(row.Roles),
		ClubID:        row.ClubID,
		ClubLoginUser: row.ClubLoginUser,
	}, nil
}

func (d *GormDirectory) ClubByContactEmail(ctx context.Context, email string) (*ClubRecord, error) {
	return d.club(ctx, "LOWER(contact_email) = ?", strings.ToLower(email))
}

func (d *GormDirectory) ClubByLoginUser(ctx context.Context, user string) (*ClubRecord, error) {
	return d.club(ctx, "LOWER(club_login_user) = ?", strings.ToLower(user))
}

func (d *GormDirectory) club(ctx context.Context, cond string, arg string) (*ClubRecord, error) {
	var row directoryClub
	err := d.db.WithContext(ctx).
		Where(cond, arg).
		Where("is_deleted = ?", false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ClubRecord{ID: row.ID, ContactEmail: row.ContactEmail, ClubLoginUser: row.ClubLoginUser}, nil
}

func (d *GormDirectory) ProviderByEmail(ctx context.Context, email string) (*ProviderRecord, error) {
	var row directoryProvider
	err := d.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Where("is_deleted = ?", false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ProviderRecord{ID: row.ID, Email: row.Email, Type: row.Type}, nil
}
