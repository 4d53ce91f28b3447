package personnel

import (
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/generic"
)

// =============================================================================
// GENERATOR - Creates persons from the shared RNG
// =============================================================================

// Generator creates persons. IDs start from a seed-derived value and
// increase by one per creation.
type Generator struct {
	cfg    *config.Config
	rng    *generic.RNG
	days   int
	nextID ID
}

// NewGenerator creates a generator for a run of totalDays days.
func NewGenerator(cfg *config.Config, rng *generic.RNG, totalDays int) *Generator {
	return &Generator{
		cfg:    cfg,
		rng:    rng,
		days:   totalDays,
		nextID: FirstID(cfg.Seed()),
	}
}

// FirstID derives the first person ID from the seed.
func FirstID(seed int64) ID {
	if seed < 0 {
		seed = -seed
	}
	return ID(10000 + seed%90000)
}

// New creates an unassigned person hired on day hiredDay. Draw order is
// fixed: sex, first name, last name, age, workstyle, traits.
func (g *Generator) New(hiredDay int) *Person {
	pop := g.cfg.Population

	sex := Male
	if g.rng.Chance(0.5) {
		sex = Female
	}
	first := generic.Pick(g.rng, maleFirstNames)
	if sex == Female {
		first = generic.Pick(g.rng, femaleFirstNames)
	}
	last := generic.Pick(g.rng, lastNames)
	age := g.rng.IntRange(pop.AgeMin, pop.AgeMax)
	ws := DrawWorkstyle(g.rng, age, sex)
	traits := DrawTraits(g.rng, pop.TraitMean, pop.TraitSD)

	r := g.cfg.Rates
	base := BaseProbabilities(traits, BaseRates{
		Presence:            r.Presence,
		Idea:                r.Idea,
		Lapse:               r.Lapse,
		Feat:                r.Feat,
		Slip:                r.Slip,
		Teamwork:            r.Teamwork,
		Disruption:          r.Disruption,
		Sacrifice:           r.Sacrifice,
		Sabotage:            r.Sabotage,
		RecordingAccurately: r.RecordingAccurately,
		EfficacyLevel:       r.EfficacyLevel,
	}, g.cfg.Strengths.Traits)

	p := &Person{
		ID:        g.nextID,
		Sex:       sex,
		FirstName: first,
		LastName:  last,
		Age:       age,
		Workstyle: ws,
		Traits:    traits,
		MngrCap:   traits.ManagerialCapacity(),
		WrkrCap:   traits.WorkerCapacity(),
		Base:      base,
		Modified:  base,
		HiredDay:  hiredDay,
		History:   NewHistory(g.days),
	}
	g.nextID++
	return p
}

// Populate creates n persons on day 0 and adds them to the registry.
func (g *Generator) Populate(reg *Registry, n int) {
	for i := 0; i < n; i++ {
		reg.Add(g.New(0))
	}
}
