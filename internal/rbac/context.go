package rbac

import (
	"context"
	"strings"

	"clubhub/internal/utils/logger"
)

// Context is the resolved identity of one request: who, acting as what, for
// which club. It is rebuilt from directory records on every request and must
// never be cached across requests; Role is RoleNone for an unrecognized
// principal and ClubID is empty for club-less accounts.
type Context struct {
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	ClubID string `json:"clubId"`
}

// Recognized reports whether the principal resolved to any account.
func (c *Context) Recognized() bool {
	return c.Role != RoleNone
}

// ContextBuilder turns an authenticated email into a Context. The lookup
// order is fixed: reserved super-admin address, member, club-admin,
// provider, unrecognized. A member and a club sharing an email resolve to
// the member because member accounts are the more specific identity.
type ContextBuilder struct {
	dir             Directory
	superAdminEmail string
	log             *logger.Logger
}

func NewContextBuilder(dir Directory, superAdminEmail string) *ContextBuilder {
	return &ContextBuilder{
		dir:             dir,
		superAdminEmail: strings.ToLower(strings.TrimSpace(superAdminEmail)),
		log:             logger.New("rbac"),
	}
}

// Build resolves the context for an authenticated email. activeRole is the
// caller's pinned role preference; it is client input and only honored when
// it is still present in the member's stored role set, otherwise the first
// stored role wins. Lookup errors degrade to "no match" so a broken backing
// collection can never widen access. Build always returns a context.
func (b *ContextBuilder) Build(ctx context.Context, email string, activeRole Role) *Context {
	normalized := strings.ToLower(strings.TrimSpace(email))

	// The reserved super-admin address is not backed by any record.
	if b.superAdminEmail != "" && normalized == b.superAdminEmail {
		return &Context{Email: normalized, Role: RoleSuperAdmin}
	}

	member, err := b.dir.MemberByEmail(ctx, normalized)
	if err != nil {
		b.log.Warn("member lookup failed for %s: %v", normalized, err)
	}
	if member != nil {
		return &Context{
			Email:  normalized,
			Role:   pickActiveRole(member.Roles, activeRole),
			ClubID: member.ClubID,
		}
	}

	club, err := b.dir.ClubByContactEmail(ctx, normalized)
	if err != nil {
		b.log.Warn("club lookup failed for %s: %v", normalized, err)
	}
	if club != nil {
		return &Context{Email: normalized, Role: RoleClubAdmin, ClubID: club.ID}
	}

	provider, err := b.dir.ProviderByEmail(ctx, normalized)
	if err != nil {
		b.log.Warn("provider lookup failed for %s: %v", normalized, err)
	}
	if provider != nil {
		return &Context{Email: normalized, Role: ProviderRole(provider.Type)}
	}

	return &Context{Email: normalized, Role: RoleNone}
}

// pickActiveRole honors the pinned role only while the member still holds
// it; the stored set is the source of truth, not the client.
func pickActiveRole(held []Role, pinned Role) Role {
	if len(held) == 0 {
		return RoleNone
	}
	if pinned != RoleNone {
		for _, r := range held {
			if r == pinned {
				return pinned
			}
		}
	}
	return held[0]
}
