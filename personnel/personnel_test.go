package personnel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/org"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func smallConfig(laborers, teams int) *config.Config {
	cfg := config.Default()
	cfg.Population.LaborersPerTeam = laborers
	cfg.Population.TeamsPerShift = teams
	return cfg
}

func newOrg(t *testing.T, laborers, teams int) (*personnel.Registry, *org.Chart) {
	t.Helper()
	cfg := smallConfig(laborers, teams)
	rng := generic.NewRNG(cfg.Seed())
	gen := personnel.NewGenerator(cfg, rng, 30)
	reg := personnel.NewRegistry()
	chart := org.NewChart(teams, laborers)

	gen.Populate(reg, cfg.PopulationSize())
	require.NoError(t, personnel.AssignRoles(reg, chart))
	require.NoError(t, personnel.AssignShiftsAndTeams(reg, chart))
	require.NoError(t, personnel.RebuildRelations(reg, chart))
	return reg, chart
}

func countRole(reg *personnel.Registry, kind org.RoleKind) int {
	n := 0
	for _, p := range reg.Active() {
		if p.HasRole(kind) {
			n++
		}
	}
	return n
}

// =============================================================================
// GENERATOR TESTS
// =============================================================================

func TestGenerator_IDsFromSeed(t *testing.T) {
	// GIVEN: Seed 1234
	// WHEN: Creating three persons
	// THEN: IDs start at 10000 + 1234 and increase by one

	cfg := config.Default()
	gen := personnel.NewGenerator(cfg, generic.NewRNG(cfg.Seed()), 10)

	a, b, c := gen.New(0), gen.New(0), gen.New(3)
	assert.Equal(t, personnel.ID(11234), a.ID)
	assert.Equal(t, personnel.ID(11235), b.ID)
	assert.Equal(t, personnel.ID(11236), c.ID)
	assert.Equal(t, 3, c.HiredDay)
}

func TestFirstID_NegativeSeed(t *testing.T) {
	assert.Equal(t, personnel.ID(10000+1234), personnel.FirstID(-1234))
	assert.Equal(t, personnel.ID(10000), personnel.FirstID(90000))
}

func TestGenerator_TraitsAndAgeInRange(t *testing.T) {
	// GIVEN: A wide trait SD that often draws outside [0, 1]
	// WHEN: Creating many persons
	// THEN: Traits stay in [0, 1] and ages in [AgeMin, AgeMax]

	cfg := config.Default()
	cfg.Population.TraitSD = 0.5
	gen := personnel.NewGenerator(cfg, generic.NewRNG(7), 10)

	for i := 0; i < 500; i++ {
		p := gen.New(0)
		for _, v := range []float64{
			p.Traits.Health, p.Traits.Commitment, p.Traits.Perceptiveness, p.Traits.Dexterity,
			p.Traits.Sociality, p.Traits.Goodness, p.Traits.Strength, p.Traits.Openmindedness,
		} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		assert.GreaterOrEqual(t, p.Age, cfg.Population.AgeMin)
		assert.LessOrEqual(t, p.Age, cfg.Population.AgeMax)
		assert.Contains(t, []personnel.Workstyle{"A", "B", "C", "D", "E"}, p.Workstyle)
		assert.Equal(t, p.Base, p.Modified)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	cfg := config.Default()
	g1 := personnel.NewGenerator(cfg, generic.NewRNG(42), 10)
	g2 := personnel.NewGenerator(cfg, generic.NewRNG(42), 10)

	for i := 0; i < 20; i++ {
		a, b := g1.New(0), g2.New(0)
		assert.Equal(t, a.FullName(), b.FullName())
		assert.Equal(t, a.Traits, b.Traits)
		assert.Equal(t, a.Workstyle, b.Workstyle)
	}
}

func TestBaseProbabilities_NeutralTraits(t *testing.T) {
	// GIVEN: Every trait at 0.5
	// THEN: Base probabilities equal the base rates

	traits := personnel.Traits{
		Health: 0.5, Commitment: 0.5, Perceptiveness: 0.5, Dexterity: 0.5,
		Sociality: 0.5, Goodness: 0.5, Strength: 0.5, Openmindedness: 0.5,
	}
	rates := personnel.BaseRates{Presence: 0.96, Lapse: 0.025, Sabotage: 0.002, EfficacyLevel: 1}
	probs := personnel.BaseProbabilities(traits, rates, 0.5)

	assert.InDelta(t, 0.96, probs.Presence, 1e-9)
	assert.InDelta(t, 0.025, probs.Lapse, 1e-9)
	assert.InDelta(t, 0.002, probs.Sabotage, 1e-9)
	assert.InDelta(t, 1.0, probs.Efficacy, 1e-9)
}

func TestBaseProbabilities_GoodnessLowersSabotage(t *testing.T) {
	low := personnel.Traits{Goodness: 0.1, Commitment: 0.1}
	high := personnel.Traits{Goodness: 0.9, Commitment: 0.9}
	rates := personnel.BaseRates{Sabotage: 0.01}

	assert.Greater(t,
		personnel.BaseProbabilities(low, rates, 0.5).Sabotage,
		personnel.BaseProbabilities(high, rates, 0.5).Sabotage)
}

// =============================================================================
// ASSIGNMENT TESTS
// =============================================================================

func TestAssignment_MinimalPopulation(t *testing.T) {
	// GIVEN: L=1, T=1
	// WHEN: Building the org
	// THEN: 10 persons: 1 director, 3 managers, 3 leaders, 3 laborers

	reg, _ := newOrg(t, 1, 1)

	assert.Equal(t, 10, reg.Len())
	assert.Equal(t, 1, countRole(reg, org.RoleDirector))
	assert.Equal(t, 3, countRole(reg, org.RoleShiftManager))
	assert.Equal(t, 3, countRole(reg, org.RoleTeamLeader))
	assert.Equal(t, 3, countRole(reg, org.RoleLaborer))
}

func TestAssignment_ManagersRankedByCapacity(t *testing.T) {
	// GIVEN: A standard-sized org
	// THEN: Director has the highest MNGR_CAP; no leader or laborer beats a manager

	reg, _ := newOrg(t, 4, 2)

	var director *personnel.Person
	minManager := 2.0
	maxOther := -1.0
	for _, p := range reg.All() {
		switch {
		case p.HasRole(org.RoleDirector):
			director = p
		case p.HasRole(org.RoleShiftManager):
			minManager = min(minManager, p.MngrCap)
		default:
			maxOther = max(maxOther, p.MngrCap)
		}
	}
	require.NotNil(t, director)
	assert.GreaterOrEqual(t, director.MngrCap, minManager)
	assert.GreaterOrEqual(t, minManager, maxOther)
}

func TestAssignment_TeamsFilled(t *testing.T) {
	reg, chart := newOrg(t, 3, 2)

	for _, team := range chart.Teams {
		leaders, laborers := 0, 0
		for _, p := range reg.Active() {
			if p.Team != team {
				continue
			}
			assert.Equal(t, team.Shift, p.Shift)
			assert.Equal(t, team.Sphere, p.Sphere)
			if p.HasRole(org.RoleTeamLeader) {
				leaders++
			} else {
				laborers++
			}
		}
		assert.Equal(t, 1, leaders, team.Name)
		assert.Equal(t, 3, laborers, team.Name)
	}
}

func TestAssignRoles_WrongPopulation(t *testing.T) {
	// GIVEN: 9 persons for an L=1,T=1 chart (needs 10)
	// THEN: OrgIntegrityError wrapping ErrOrgIntegrity

	cfg := smallConfig(1, 1)
	gen := personnel.NewGenerator(cfg, generic.NewRNG(1), 5)
	reg := personnel.NewRegistry()
	gen.Populate(reg, 9)

	err := personnel.AssignRoles(reg, org.NewChart(1, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, personnel.ErrOrgIntegrity))

	var oie *personnel.OrgIntegrityError
	require.ErrorAs(t, err, &oie)
	assert.Equal(t, 10, oie.Expected)
	assert.Equal(t, 9, oie.Found)
}

func TestValidateOrg_MissingLeader(t *testing.T) {
	reg, chart := newOrg(t, 2, 1)
	for _, p := range reg.All() {
		if p.HasRole(org.RoleTeamLeader) {
			p.Separate(1)
			break
		}
	}
	err := personnel.ValidateOrg(reg, chart)
	assert.ErrorIs(t, err, generic.ErrOrgIntegrity)
}

// =============================================================================
// RELATIONS TESTS
// =============================================================================

func TestRelations_SupervisorChain(t *testing.T) {
	// GIVEN: A built org
	// THEN: Laborer -> leader (same team) -> manager (same shift) -> director -> none

	reg, _ := newOrg(t, 2, 2)

	for _, p := range reg.Active() {
		sup, ok := reg.SupervisorOf(p)
		switch {
		case p.HasRole(org.RoleDirector):
			assert.False(t, ok)
			assert.Equal(t, personnel.LinkNone, p.Supervisor.State)
		case p.HasRole(org.RoleShiftManager):
			require.True(t, ok)
			assert.True(t, sup.HasRole(org.RoleDirector))
		case p.HasRole(org.RoleTeamLeader):
			require.True(t, ok)
			assert.True(t, sup.HasRole(org.RoleShiftManager))
			assert.Equal(t, p.Shift, sup.Shift)
		case p.HasRole(org.RoleLaborer):
			require.True(t, ok)
			assert.True(t, sup.HasRole(org.RoleTeamLeader))
			assert.Equal(t, p.Team, sup.Team)
		}
	}
}

func TestRelations_ColleaguesAndSubordinates(t *testing.T) {
	reg, _ := newOrg(t, 3, 2)

	for _, p := range reg.Active() {
		assert.NotContains(t, p.Colleagues, p.ID)
		switch {
		case p.HasRole(org.RoleLaborer):
			assert.Len(t, p.Colleagues, 2)
			assert.Empty(t, p.Subordinates)
		case p.HasRole(org.RoleTeamLeader):
			assert.Len(t, p.Colleagues, 1) // other leader on the shift
			assert.Len(t, p.Subordinates, 3)
		case p.HasRole(org.RoleShiftManager):
			assert.Len(t, p.Colleagues, 2)
			assert.Len(t, p.Subordinates, 2)
		case p.HasRole(org.RoleDirector):
			assert.Empty(t, p.Colleagues)
			assert.Len(t, p.Subordinates, 3)
		}
		for _, sub := range p.Subordinates {
			s, err := reg.Lookup(sub)
			require.NoError(t, err)
			id, ok := s.Supervisor.Get()
			assert.True(t, ok)
			assert.Equal(t, p.ID, id)
		}
	}
}

func TestRelations_SeparatedExcluded(t *testing.T) {
	// GIVEN: A laborer separates and a replacement takes the slot
	// WHEN: Rebuilding relations
	// THEN: The separated person appears in nobody's relations

	cfg := smallConfig(2, 1)
	reg, chart := newOrg(t, 2, 1)
	gen := personnel.NewGenerator(cfg, generic.NewRNG(99), 30)

	var leaver *personnel.Person
	for _, p := range reg.All() {
		if p.HasRole(org.RoleLaborer) {
			leaver = p
			break
		}
	}
	require.NotNil(t, leaver)

	hire := gen.New(5)
	hire.ID = 99999
	hire.TakeSlot(leaver)
	leaver.Separate(5)
	reg.Add(hire)
	require.NoError(t, personnel.RebuildRelations(reg, chart))

	for _, p := range reg.Active() {
		assert.NotContains(t, p.Colleagues, leaver.ID)
		assert.NotContains(t, p.Subordinates, leaver.ID)
		id, _ := p.Supervisor.Get()
		assert.NotEqual(t, leaver.ID, id)
	}
	assert.False(t, leaver.IsActive())
	_, ok := reg.SupervisorOf(leaver)
	assert.False(t, ok)
	sup, ok := reg.SupervisorOf(hire)
	require.True(t, ok)
	assert.Contains(t, sup.Subordinates, hire.ID)
	require.NoError(t, personnel.ValidateOrg(reg, chart))
}

func TestRelations_SwapSelectedTeams(t *testing.T) {
	// GIVEN: Two laborers on different teams
	// WHEN: Swapping them and rebuilding only their teams
	// THEN: Each reports to the other team's leader

	reg, chart := newOrg(t, 2, 2)
	var a, b *personnel.Person
	for _, p := range reg.Active() {
		if !p.HasRole(org.RoleLaborer) {
			continue
		}
		if a == nil {
			a = p
		} else if p.Team != a.Team && b == nil {
			b = p
		}
	}
	require.NotNil(t, a)
	require.NotNil(t, b)
	ta, tb := a.Team, b.Team

	personnel.SwapTeams(a, b)
	require.NoError(t, personnel.RebuildSelectedRelations(reg, chart, []*org.Team{ta, tb}))

	assert.Equal(t, tb, a.Team)
	assert.Equal(t, ta, b.Team)
	supA, _ := reg.SupervisorOf(a)
	supB, _ := reg.SupervisorOf(b)
	assert.Equal(t, tb, supA.Team)
	assert.Equal(t, ta, supB.Team)
	assert.Contains(t, supA.Subordinates, a.ID)
	assert.NotContains(t, supB.Subordinates, a.ID)
	require.NoError(t, personnel.ValidateOrg(reg, chart))
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestHistory_RollingWindow(t *testing.T) {
	// GIVEN: Lapses {day1:1, day2:0, day3:1, day4:0}
	// WHEN: Querying the trailing 4 days on day 5
	// THEN: 2

	h := personnel.NewHistory(10)
	h.Add(personnel.MetricLapse, 1)
	h.Add(personnel.MetricLapse, 3)

	assert.Equal(t, 2, h.Trailing(personnel.MetricLapse, 5, 4))
	assert.Equal(t, 1, h.Trailing(personnel.MetricLapse, 5, 2))
	assert.Equal(t, 0, h.Trailing(personnel.MetricLapse, 0, 4))
	assert.Equal(t, 2, h.CareerToDate(personnel.MetricLapse, 9))
}

func TestHistory_MeanEfficacy(t *testing.T) {
	h := personnel.NewHistory(5)
	assert.False(t, h.MeanEfficacy(0, 4).Valid)

	h.Efficacy.Set(1, 0.8)
	h.Efficacy.Set(2, 1.0)
	m := h.MeanEfficacy(0, 4)
	require.True(t, m.Valid)
	assert.InDelta(t, 0.9, m.Value, 1e-9)
}

func TestRegistry_Lookup(t *testing.T) {
	reg := personnel.NewRegistry()
	_, err := reg.Lookup(1)
	assert.ErrorIs(t, err, generic.ErrPersonNotFound)
	assert.True(t, generic.IsNotFound(err))
}
