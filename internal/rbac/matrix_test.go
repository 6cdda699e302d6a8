package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelOrdering(t *testing.T) {
	assert.True(t, LevelFull.Allows())
	assert.True(t, LevelLimited.Allows())
	assert.False(t, LevelNone.Allows())
	assert.False(t, Level("").Allows())

	assert.True(t, LevelFull.AtLeast(LevelLimited))
	assert.True(t, LevelLimited.AtLeast(LevelLimited))
	assert.False(t, LevelLimited.AtLeast(LevelFull))
	assert.True(t, LevelNone.AtLeast(LevelNone))
}

func TestSuperAdminDerivation(t *testing.T) {
	m := DefaultMatrix()

	for _, module := range AllModules {
		level := m.PermissionFor(RoleSuperAdmin, module)
		if module == ModuleStrategy {
			assert.Equal(t, LevelNone, level, "strategy is club-internal")
		} else {
			assert.Equal(t, LevelFull, level, "module %s", module)
		}
	}
}

func TestPermissionForUnknowns(t *testing.T) {
	m := DefaultMatrix()

	assert.Equal(t, LevelNone, m.PermissionFor(Role("Intruder"), ModuleMembers))
	assert.Equal(t, LevelNone, m.PermissionFor(RoleNone, ModuleMembers))
	assert.Equal(t, LevelNone, m.PermissionFor(RolePlayer, Module("nonexistent")))
	assert.Equal(t, LevelNone, m.PermissionFor(RoleParent, ModuleFinance))
}

func TestSectionsOnlyListVisibleModules(t *testing.T) {
	m := DefaultMatrix()

	for role := range defaultSections {
		for _, section := range m.SectionsFor(role) {
			visible := false
			for _, module := range ModulesIn(section) {
				if m.PermissionFor(role, module).Allows() {
					visible = true
					break
				}
			}
			assert.True(t, visible, "role %s lists section %s without any accessible module", role, section)
		}
	}
}

func TestSectionsForReturnsCopy(t *testing.T) {
	m := DefaultMatrix()

	sections := m.SectionsFor(RolePlayer)
	require.NotEmpty(t, sections)
	sections[0] = Section("tampered")

	assert.NotEqual(t, Section("tampered"), m.SectionsFor(RolePlayer)[0])
	assert.Empty(t, m.SectionsFor(Role("Intruder")))
}

func TestMergedOverrides(t *testing.T) {
	base := DefaultMatrix()

	merged := base.Merged([]Override{
		{Role: RolePlayer, Module: ModuleNewsletter, Level: LevelLimited},
		{Role: RoleCoach, Module: ModuleTraining, Level: LevelLimited},
	})

	assert.Equal(t, LevelLimited, merged.PermissionFor(RolePlayer, ModuleNewsletter))
	assert.Equal(t, LevelLimited, merged.PermissionFor(RoleCoach, ModuleTraining))

	// The defaults are untouched.
	assert.Equal(t, LevelNone, base.PermissionFor(RolePlayer, ModuleNewsletter))
	assert.Equal(t, LevelFull, base.PermissionFor(RoleCoach, ModuleTraining))

	// Cells not named keep their default.
	assert.Equal(t, LevelLimited, merged.PermissionFor(RolePlayer, ModuleTeams))
}

func TestMergedSkipsInvalidOverrides(t *testing.T) {
	base := DefaultMatrix()

	merged := base.Merged([]Override{
		{Role: RoleSuperAdmin, Module: ModuleStrategy, Level: LevelFull},
		{Role: RolePlayer, Module: Module("bogus"), Level: LevelFull},
		{Role: RolePlayer, Module: ModuleTeams, Level: Level("supreme")},
	})

	// The Super-Admin row stays derived, never configurable.
	assert.Equal(t, LevelNone, merged.PermissionFor(RoleSuperAdmin, ModuleStrategy))
	assert.Equal(t, LevelLimited, merged.PermissionFor(RolePlayer, ModuleTeams))
}

func TestProviderRolesHaveRows(t *testing.T) {
	m := DefaultMatrix()

	for _, typ := range []string{ProviderTypeTravel, ProviderTypeCamp, ProviderTypeEquipment} {
		role := ProviderRole(typ)
		assert.True(t, IsValidRole(role))
		assert.Equal(t, LevelLimited, m.PermissionFor(role, ModuleLeads))
		assert.Equal(t, LevelNone, m.PermissionFor(role, ModuleFinance))
	}
	assert.Equal(t, Role("Reise-Anbieter"), ProviderRole(ProviderTypeTravel))
}
