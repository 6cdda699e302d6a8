package rbac

import (
	"context"
	"strings"

	"clubhub/internal/utils/logger"
)

// LoginTarget is the canonical account email the identity provider should
// authenticate for a typed login identifier.
type LoginTarget struct {
	Email      string
	SuperAdmin bool
}

// LoginResolver maps the free-form string a human types at login (an email,
// a club-style username, or the reserved super-admin address) to the
// canonical account email. Matching is case-insensitive throughout.
type LoginResolver struct {
	dir             Directory
	superAdminEmail string
	log             *logger.Logger
}

func NewLoginResolver(dir Directory, superAdminEmail string) *LoginResolver {
	return &LoginResolver{
		dir:             dir,
		superAdminEmail: strings.ToLower(strings.TrimSpace(superAdminEmail)),
		log:             logger.New("rbac"),
	}
}

// Resolve resolves identifier to a login target. Email-shaped identifiers
// try member email, then club contact email, then fall back to the
// identifier itself (externally invited roles log in with their own
// address). Bare usernames try member then club login users. Errors are
// ErrIdentifierNotFound or *MissingEmailError only; lookup failures count
// as "no match" for the branch they occur in.
func (r *LoginResolver) Resolve(ctx context.Context, identifier string) (*LoginTarget, error) {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return nil, ErrIdentifierNotFound
	}

	if r.superAdminEmail != "" && id == r.superAdminEmail {
		return &LoginTarget{Email: id, SuperAdmin: true}, nil
	}

	if isEmailShaped(id) {
		member, err := r.dir.MemberByEmail(ctx, id)
		if err != nil {
			r.log.Warn("member lookup failed for %s: %v", id, err)
		}
		if member != nil {
			if member.Email == "" {
				return nil, &MissingEmailError{Identifier: identifier}
			}
			return &LoginTarget{Email: strings.ToLower(member.Email)}, nil
		}

		// A club's public contact address only opens the club-admin
		// account when it is also registered as the club's login
		// username. Knowing the contact address alone is not enough.
		club, err := r.dir.ClubByContactEmail(ctx, id)
		if err != nil {
			r.log.Warn("club lookup failed for %s: %v", id, err)
		}
		if club != nil && strings.EqualFold(club.ClubLoginUser, id) {
			if club.ContactEmail == "" {
				return nil, &MissingEmailError{Identifier: identifier}
			}
			return &LoginTarget{Email: strings.ToLower(club.ContactEmail)}, nil
		}

		// Externally invited accounts (sponsors, referees, providers)
		// authenticate with the address they typed.
		return &LoginTarget{Email: id}, nil
	}

	member, err := r.dir.MemberByLoginUser(ctx, id)
	if err != nil {
		r.log.Warn("member login-user lookup failed for %s: %v", id, err)
	}
	if member != nil {
		if member.Email == "" {
			return nil, &MissingEmailError{Identifier: identifier}
		}
		return &LoginTarget{Email: strings.ToLower(member.Email)}, nil
	}

	club, err := r.dir.ClubByLoginUser(ctx, id)
	if err != nil {
		r.log.Warn("club login-user lookup failed for %s: %v", id, err)
	}
	if club != nil {
		if club.ContactEmail == "" {
			return nil, &MissingEmailError{Identifier: identifier}
		}
		return &LoginTarget{Email: strings.ToLower(club.ContactEmail)}, nil
	}

	return nil, ErrIdentifierNotFound
}

// isEmailShaped reports whether s looks like an email address: an "@" with
// a "." somewhere after it. "admin@fcawesome" is a club username, not an
// email.
func isEmailShaped(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 {
		return false
	}
	return strings.Contains(s[at:], ".")
}
