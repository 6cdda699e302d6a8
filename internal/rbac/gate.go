package rbac

import (
	"time"

	"clubhub/internal/events"
	"clubhub/internal/utils/logger"
)

// EventAccessDenied is emitted on the event bus for every denied check. The
// bus runs handlers on their own goroutines, so emitting can never block or
// fail the request being denied.
const EventAccessDenied = "rbac.denied"

// Denial is the audit payload for a denied module check.
type Denial struct {
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
	ClubID string    `json:"clubId"`
	Module Module    `json:"module"`
	At     time.Time `json:"at"`
}

// Gate decides whether a resolved context may touch a module. It holds the
// default matrix plus the per-club merged matrices, built once at startup
// and read-only afterwards. Every data-access flow must pass through Assert
// before querying or mutating a collection; no flow is exempt.
type Gate struct {
	base    *Matrix
	perClub map[string]*Matrix
	log     *logger.Logger
}

// NewGate builds a gate over the default matrix. perClub maps club ids to
// matrices already merged with that tenant's overrides; pass nil when no
// tenant overrides exist.
func NewGate(base *Matrix, perClub map[string]*Matrix) *Gate {
	if base == nil {
		base = DefaultMatrix()
	}
	return &Gate{base: base, perClub: perClub, log: logger.New("rbac")}
}

func (g *Gate) matrixFor(clubID string) *Matrix {
	if m, ok := g.perClub[clubID]; ok && m != nil {
		return m
	}
	return g.base
}

// Check returns the level the context holds on module. A nil or
// unrecognized context resolves to LevelNone for every module.
func (g *Gate) Check(rc *Context, module Module) Level {
	if rc == nil || rc.Role == RoleNone {
		return LevelNone
	}
	return g.matrixFor(rc.ClubID).PermissionFor(rc.Role, module)
}

// NavigationSection is one sidebar section with the modules the context
// may see there.
type NavigationSection struct {
	Section Section          `json:"section"`
	Modules map[Module]Level `json:"modules"`
}

// Navigation returns the ordered sections the context's role sees, with the
// granted level per module. A section whose modules all resolve to none is
// dropped entirely, never rendered empty.
func (g *Gate) Navigation(rc *Context) []NavigationSection {
	if rc == nil || rc.Role == RoleNone {
		return nil
	}

	m := g.matrixFor(rc.ClubID)
	var out []NavigationSection
	for _, section := range m.SectionsFor(rc.Role) {
		mods := make(map[Module]Level)
		for _, mod := range ModulesIn(section) {
			if level := m.PermissionFor(rc.Role, mod); level.Allows() {
				mods[mod] = level
			}
		}
		if len(mods) > 0 {
			out = append(out, NavigationSection{Section: section, Modules: mods})
		}
	}
	return out
}

// Assert returns the granted level, or an *AccessDeniedError when the
// context holds no permission on the module. Denials are logged and pushed
// onto the audit bus; the audit path never blocks the caller.
func (g *Gate) Assert(rc *Context, module Module) (Level, error) {
	level := g.Check(rc, module)
	if level.Allows() {
		return level, nil
	}

	denied := &AccessDeniedError{Module: module}
	if rc != nil {
		denied.Email = rc.Email
		denied.Role = rc.Role
	}
	g.log.Warn("access denied: role=%q email=%s module=%s", denied.Role, denied.Email, module)

	denial := Denial{Email: denied.Email, Role: denied.Role, Module: module, At: time.Now().UTC()}
	if rc != nil {
		denial.ClubID = rc.ClubID
	}
	events.Emit(EventAccessDenied, denial)

	return LevelNone, denied
}
