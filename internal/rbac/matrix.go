package rbac

// Level is the degree of access a role has to a module.
type Level string

const (
	LevelFull    Level = "full"
	LevelLimited Level = "limited"
	LevelNone    Level = "none"
)

// rank orders levels by privilege: full > limited > none.
func (l Level) rank() int {
	switch l {
	case LevelFull:
		return 2
	case LevelLimited:
		return 1
	default:
		return 0
	}
}

// Allows reports whether the level grants any access at all.
func (l Level) Allows() bool {
	return l.rank() > 0
}

// AtLeast reports whether l grants at least as much access as other.
func (l Level) AtLeast(other Level) bool {
	return l.rank() >= other.rank()
}

// IsValidLevel reports whether l is one of the three defined levels.
func IsValidLevel(l Level) bool {
	return l == LevelFull || l == LevelLimited || l == LevelNone
}

// clubOnlyModules are deliberately withheld from Super-Admin even though the
// derivation rule grants everything else. Strategy boards are club-internal
// planning and stay invisible to platform operators.
var clubOnlyModules = map[Module]bool{
	ModuleStrategy: true,
}

// Matrix maps (role, module) to a permission level. Lookups are total: a
// role or module without an entry resolves to LevelNone, never to another
// row. The Super-Admin row is derived, not stored.
type Matrix struct {
	grants   map[Role]map[Module]Level
	sections map[Role][]Section
}

// PermissionFor resolves the level a role holds on a module. Unknown roles
// and missing cells resolve to LevelNone. Super-Admin short-circuits to
// LevelFull except for the club-only module set.
func (m *Matrix) PermissionFor(role Role, module Module) Level {
	if role == RoleSuperAdmin {
		if clubOnlyModules[module] {
			return LevelNone
		}
		return LevelFull
	}
	row, ok := m.grants[role]
	if !ok {
		return LevelNone
	}
	level, ok := row[module]
	if !ok {
		return LevelNone
	}
	return level
}

// SectionsFor returns the sections visible to a role, in display order. The
// slice is a copy; unknown roles get an empty slice.
func (m *Matrix) SectionsFor(role Role) []Section {
	order, ok := m.sections[role]
	if !ok {
		return []Section{}
	}
	out := make([]Section, len(order))
	copy(out, order)
	return out
}

// Override replaces one cell of the default matrix for a specific tenant.
type Override struct {
	Role   Role
	Module Module
	Level  Level
}

// Merged returns a new matrix with the overrides applied on top of m. Cells
// not named by an override keep their default; overrides can change or add
// cells but never remove one. Section order is kept from the default. The
// receiver is not modified.
func (m *Matrix) Merged(overrides []Override) *Matrix {
	grants := make(map[Role]map[Module]Level, len(m.grants))
	for role, row := range m.grants {
		copied := make(map[Module]Level, len(row))
		for module, level := range row {
			copied[module] = level
		}
		grants[role] = copied
	}
	for _, o := range overrides {
		if o.Role == RoleSuperAdmin || !IsValidLevel(o.Level) || !IsValidModule(o.Module) {
			continue
		}
		row, ok := grants[o.Role]
		if !ok {
			row = make(map[Module]Level)
			grants[o.Role] = row
		}
		row[o.Module] = o.Level
	}
	return &Matrix{grants: grants, sections: m.sections}
}

// DefaultMatrix returns the compiled-in permission matrix. It is built fresh
// per call so callers can merge tenant overrides without sharing state; the
// underlying literal is never mutated.
func DefaultMatrix() *Matrix {
	return &Matrix{grants: defaultGrants, sections: defaultSections}
}

var defaultGrants = map[Role]map[Module]Level{
	RoleClubAdmin: {
		ModuleClubs:      LevelLimited,
		ModuleMembers:    LevelFull,
		ModuleTeams:      LevelFull,
		ModuleMatch:      LevelFull,
		ModuleTraining:   LevelFull,
		ModuleScouting:   LevelFull,
		ModuleEvents:     LevelFull,
		ModuleHighlights: LevelFull,
		ModuleNewsletter: LevelFull,
		ModuleSponsoring: LevelFull,
		ModuleLeads:      LevelFull,
		ModuleFinance:    LevelFull,
		ModuleFacilities: LevelFull,
		ModuleDocuments:  LevelFull,
		ModuleStrategy:   LevelFull,
	},
	RoleManager: {
		ModuleClubs:      LevelLimited,
		ModuleMembers:    LevelFull,
		ModuleTeams:      LevelFull,
		ModuleMatch:      LevelFull,
		ModuleTraining:   LevelFull,
		ModuleScouting:   LevelLimited,
		ModuleEvents:     LevelFull,
		ModuleHighlights: LevelFull,
		ModuleNewsletter: LevelFull,
		ModuleSponsoring: LevelLimited,
		ModuleLeads:      LevelLimited,
		ModuleFinance:    LevelLimited,
		ModuleFacilities: LevelLimited,
		ModuleDocuments:  LevelFull,
		ModuleStrategy:   LevelLimited,
	},
	RoleCoach: {
		ModuleMembers:    LevelLimited,
		ModuleTeams:      LevelLimited,
		ModuleMatch:      LevelLimited,
		ModuleTraining:   LevelFull,
		ModuleScouting:   LevelLimited,
		ModuleEvents:     LevelLimited,
		ModuleHighlights: LevelLimited,
		ModuleDocuments:  LevelLimited,
	},
	RolePlayer: {
		ModuleTeams:      LevelLimited,
		ModuleMatch:      LevelLimited,
		ModuleTraining:   LevelLimited,
		ModuleEvents:     LevelLimited,
		ModuleHighlights: LevelLimited,
	},
	RoleParent: {
		ModuleMatch:    LevelLimited,
		ModuleTraining: LevelLimited,
		ModuleEvents:   LevelLimited,
	},
	RoleSponsor: {
		ModuleSponsoring: LevelLimited,
		ModuleEvents:     LevelLimited,
		ModuleHighlights: LevelLimited,
	},
	RoleReferee: {
		ModuleMatch:  LevelLimited,
		ModuleEvents: LevelLimited,
	},
	RoleFederation: {
		ModuleClubs: LevelLimited,
		ModuleMatch: LevelLimited,
	},
	RoleScouting: {
		ModuleMembers:  LevelLimited,
		ModuleTeams:    LevelLimited,
		ModuleMatch:    LevelLimited,
		ModuleScouting: LevelFull,
	},
	RoleSupplier: {
		ModuleLeads:  LevelLimited,
		ModuleEvents: LevelLimited,
	},
	RoleFan: {
		ModuleEvents:     LevelLimited,
		ModuleHighlights: LevelLimited,
		ModuleNewsletter: LevelLimited,
	},
	RoleBoard: {
		ModuleMembers:    LevelLimited,
		ModuleEvents:     LevelLimited,
		ModuleSponsoring: LevelFull,
		ModuleLeads:      LevelFull,
		ModuleFinance:    LevelFull,
		ModuleDocuments:  LevelFull,
		ModuleStrategy:   LevelFull,
	},
	RoleFacilityManager: {
		ModuleTraining:   LevelLimited,
		ModuleEvents:     LevelLimited,
		ModuleFacilities: LevelFull,
		ModuleDocuments:  LevelLimited,
	},
	ProviderRole(ProviderTypeTravel): {
		ModuleLeads:  LevelLimited,
		ModuleEvents: LevelLimited,
	},
	ProviderRole(ProviderTypeCamp): {
		ModuleLeads:  LevelLimited,
		ModuleEvents: LevelLimited,
	},
	ProviderRole(ProviderTypeEquipment): {
		ModuleLeads:  LevelLimited,
		ModuleEvents: LevelLimited,
	},
}

// defaultSections holds the navigable sections per role, in display order.
// A section may only appear when at least one of its modules is non-None
// for that role; the matrix test asserts this invariant. Super-Admin skips
// the planning section because Strategy is club-only.
var defaultSections = map[Role][]Section{
	RoleSuperAdmin: {
		SectionOrganization, SectionSport, SectionEngagement,
		SectionBusiness, SectionOperations,
	},
	RoleClubAdmin: {
		SectionOrganization, SectionSport, SectionEngagement,
		SectionBusiness, SectionOperations, SectionPlanning,
	},
	RoleManager: {
		SectionOrganization, SectionSport, SectionEngagement,
		SectionBusiness, SectionOperations, SectionPlanning,
	},
	RoleCoach: {
		SectionSport, SectionOrganization, SectionEngagement, SectionOperations,
	},
	RolePlayer: {
		SectionSport, SectionEngagement, SectionOrganization,
	},
	RoleParent: {
		SectionSport, SectionEngagement,
	},
	RoleSponsor: {
		SectionBusiness, SectionEngagement,
	},
	RoleReferee: {
		SectionSport, SectionEngagement,
	},
	RoleFederation: {
		SectionOrganization, SectionSport,
	},
	RoleScouting: {
		SectionSport, SectionOrganization,
	},
	RoleSupplier: {
		SectionBusiness, SectionEngagement,
	},
	RoleFan: {
		SectionEngagement,
	},
	RoleBoard: {
		SectionBusiness, SectionPlanning, SectionOperations,
		SectionOrganization, SectionEngagement,
	},
	RoleFacilityManager: {
		SectionOperations, SectionSport, SectionEngagement,
	},
	ProviderRole(ProviderTypeTravel):    {SectionBusiness, SectionEngagement},
	ProviderRole(ProviderTypeCamp):      {SectionBusiness, SectionEngagement},
	ProviderRole(ProviderTypeEquipment): {SectionBusiness, SectionEngagement},
}
