package rbac

import (
	"errors"

	"clubhub/internal/utils/logger"
)

// ScopeWildcard is the caller-supplied tenant id meaning "every club".
// Only Super-Admin may actually widen to it.
const ScopeWildcard = "all"

// ScopeKind is the shape of the tenant filter a query must apply.
type ScopeKind int

const (
	// ScopeAll applies no tenant filter.
	ScopeAll ScopeKind = iota
	// ScopeClub filters by one club id.
	ScopeClub
	// ScopeNone short-circuits to an empty result set.
	ScopeNone
)

// ScopeDecision tells a data-access flow how to constrain its query. ClubID
// is set only for ScopeClub.
type ScopeDecision struct {
	Kind   ScopeKind
	ClubID string
}

func AllScope() ScopeDecision { return ScopeDecision{Kind: ScopeAll} }

func ClubScope(id string) ScopeDecision { return ScopeDecision{Kind: ScopeClub, ClubID: id} }

func EmptyScope() ScopeDecision { return ScopeDecision{Kind: ScopeNone} }

var scopeLog = logger.New("rbac")

// errClublessContext marks the data-integrity case of a non-admin account
// with no club on record. Logged, never returned to callers.
var errClublessContext = errors.New("non-admin context without club id")

// EffectiveScope computes the tenant filter for a query. Super-Admin may
// request the wildcard or any concrete club; every other role is pinned to
// its own club no matter what it asked for. A non-Super-Admin context
// without a club id fails closed to an empty result: a member without a
// club should not exist, so it is logged as a data-integrity problem rather
// than surfaced as an error.
func EffectiveScope(rc *Context, requestedClubID string) ScopeDecision {
	if rc == nil {
		return EmptyScope()
	}

	if rc.Role == RoleSuperAdmin {
		if requestedClubID == "" || requestedClubID == ScopeWildcard {
			return AllScope()
		}
		return ClubScope(requestedClubID)
	}

	// The requested id is untrusted input for every other role.
	if rc.ClubID != "" {
		return ClubScope(rc.ClubID)
	}

	scopeLog.Error("scope violation prevented: %s acting as %q: %v",
		errClublessContext, rc.Email, rc.Role)
	return EmptyScope()
}
