package rbac

// Module is a functional area of the platform and the unit of permission
// granting. Every module belongs to exactly one Section.
type Module string

const (
	ModuleClubs      Module = "clubs"
	ModuleMembers    Module = "members"
	ModuleTeams      Module = "teams"
	ModuleMatch      Module = "match"
	ModuleTraining   Module = "training"
	ModuleEvents     Module = "events"
	ModuleHighlights Module = "highlights"
	ModuleSponsoring Module = "sponsoring"
	ModuleNewsletter Module = "newsletter"
	ModuleLeads      Module = "leads"
	ModuleFinance    Module = "finance"
	ModuleFacilities Module = "facilities"
	ModuleDocuments  Module = "documents"
	ModuleScouting   Module = "scouting"
	ModuleStrategy   Module = "strategy"
)

// Section groups modules for navigation. SectionsFor returns them per role
// in display order.
type Section string

const (
	SectionOrganization Section = "organization"
	SectionSport        Section = "sport"
	SectionEngagement   Section = "engagement"
	SectionBusiness     Section = "business"
	SectionOperations   Section = "operations"
	SectionPlanning     Section = "planning"
)

// AllModules lists every module once. Iteration order is stable but carries
// no meaning; permissions are always keyed by module, never by position.
var AllModules = []Module{
	ModuleClubs, ModuleMembers, ModuleTeams,
	ModuleMatch, ModuleTraining, ModuleScouting,
	ModuleEvents, ModuleHighlights, ModuleNewsletter,
	ModuleSponsoring, ModuleLeads, ModuleFinance,
	ModuleFacilities, ModuleDocuments,
	ModuleStrategy,
}

var moduleSections = map[Module]Section{
	ModuleClubs:      SectionOrganization,
	ModuleMembers:    SectionOrganization,
	ModuleTeams:      SectionOrganization,
	ModuleMatch:      SectionSport,
	ModuleTraining:   SectionSport,
	ModuleScouting:   SectionSport,
	ModuleEvents:     SectionEngagement,
	ModuleHighlights: SectionEngagement,
	ModuleNewsletter: SectionEngagement,
	ModuleSponsoring: SectionBusiness,
	ModuleLeads:      SectionBusiness,
	ModuleFinance:    SectionBusiness,
	ModuleFacilities: SectionOperations,
	ModuleDocuments:  SectionOperations,
	ModuleStrategy:   SectionPlanning,
}

// SectionOf returns the section a module belongs to.
func SectionOf(m Module) Section {
	return moduleSections[m]
}

// ModulesIn returns the modules of a section, in AllModules order.
func ModulesIn(s Section) []Module {
	var out []Module
	for _, m := range AllModules {
		if moduleSections[m] == s {
			out = append(out, m)
		}
	}
	return out
}

// IsValidModule reports whether m is a known module.
func IsValidModule(m Module) bool {
	_, ok := moduleSections[m]
	return ok
}
