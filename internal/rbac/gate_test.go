package rbac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhub/internal/events"
)

func TestGateCheck(t *testing.T) {
	g := NewGate(nil, nil)

	assert.Equal(t, LevelNone, g.Check(nil, ModuleMembers))
	assert.Equal(t, LevelNone, g.Check(&Context{Email: "nobody@x.example"}, ModuleMembers))

	rc := &Context{Email: "kim@fc.example", Role: RoleCoach, ClubID: "club-42"}
	assert.Equal(t, LevelFull, g.Check(rc, ModuleTraining))
	assert.Equal(t, LevelLimited, g.Check(rc, ModuleTeams))
	assert.Equal(t, LevelNone, g.Check(rc, ModuleFinance))
}

func TestGateAssertGrants(t *testing.T) {
	g := NewGate(nil, nil)
	rc := &Context{Email: "kim@fc.example", Role: RoleCoach, ClubID: "club-42"}

	level, err := g.Assert(rc, ModuleTraining)
	require.NoError(t, err)
	assert.Equal(t, LevelFull, level)
}

func TestGateAssertDeniesAndEmits(t *testing.T) {
	events.Reset()
	defer events.Reset()

	got := make(chan Denial, 1)
	events.On(EventAccessDenied, func(data interface{}) {
		if d, ok := data.(Denial); ok {
			got <- d
		}
	})

	g := NewGate(nil, nil)
	rc := &Context{Email: "kim@fc.example", Role: RolePlayer, ClubID: "club-42"}

	level, err := g.Assert(rc, ModuleFinance)
	assert.Equal(t, LevelNone, level)

	var denied *AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "kim@fc.example", denied.Email)
	assert.Equal(t, RolePlayer, denied.Role)
	assert.Equal(t, ModuleFinance, denied.Module)

	select {
	case d := <-got:
		assert.Equal(t, "kim@fc.example", d.Email)
		assert.Equal(t, RolePlayer, d.Role)
		assert.Equal(t, "club-42", d.ClubID)
		assert.Equal(t, ModuleFinance, d.Module)
		assert.False(t, d.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no denial emitted on the bus")
	}
}

func TestGatePerClubOverride(t *testing.T) {
	merged := DefaultMatrix().Merged([]Override{
		{Role: RolePlayer, Module: ModuleNewsletter, Level: LevelLimited},
	})
	g := NewGate(DefaultMatrix(), map[string]*Matrix{"club-42": merged})

	tenant := &Context{Email: "kim@fc.example", Role: RolePlayer, ClubID: "club-42"}
	other := &Context{Email: "lee@sv.example", Role: RolePlayer, ClubID: "club-99"}

	assert.Equal(t, LevelLimited, g.Check(tenant, ModuleNewsletter))
	assert.Equal(t, LevelNone, g.Check(other, ModuleNewsletter), "overrides stay inside their tenant")
}

func TestGateNavigation(t *testing.T) {
	g := NewGate(nil, nil)

	assert.Nil(t, g.Navigation(nil))
	assert.Nil(t, g.Navigation(&Context{Email: "nobody@x.example"}))

	nav := g.Navigation(&Context{Email: "kim@fc.example", Role: RolePlayer, ClubID: "club-42"})
	require.NotEmpty(t, nav)
	for _, section := range nav {
		require.NotEmpty(t, section.Modules, "section %s rendered empty", section.Section)
		for mod, level := range section.Modules {
			assert.True(t, level.Allows(), "module %s listed at none", mod)
		}
	}

	// Strategy is club-only, so the Super-Admin sidebar never shows the
	// planning section.
	for _, section := range g.Navigation(&Context{Email: testSuperAdmin, Role: RoleSuperAdmin}) {
		assert.NotEqual(t, SectionPlanning, section.Section)
		assert.NotContains(t, section.Modules, ModuleStrategy)
	}
}
