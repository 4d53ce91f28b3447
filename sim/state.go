/*
Package sim runs the daily workforce simulation.

PURPOSE:
  Steps a factory workforce through calendar days. Every day each active
  person may show up, performs at some efficacy, and may exhibit good or
  poor behaviors; their supervisor records (or fails to record) what
  happened; and persons with a bad enough history resign or are
  terminated and replaced.

DAY LOOP:
  1. Worker swap check (two laborers on different teams may trade places)
  2. Relationship rebuild
  3. Reset modified probabilities to base
  4. Modifier engine
  5. Behavior engine (appends the day's batch to the ledger)
  6. Recording engine (fills the recorded half of the day's rows)
  7. Turnover engine (weekdays only)
  8. Advance the clock

  After the last day, Finalize drops the priming period and computes the
  person summaries and D-4..D+4 efficacy columns.

DETERMINISM:
  One RNG seeded from the first configured seed drives every draw. Every
  loop that draws iterates the registry in creation order, so two runs
  with the same seed and config produce identical ledgers.

SEE ALSO:
  - simulation.go: Simulator, Step and Run
  - personnel/: Person, Registry, placement and relations
  - ledger/: Event rows
*/
package sim

import (
	"fmt"

	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/logger"
	"github.com/warp/workforce-sim/org"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// STATE - Everything one run owns
// =============================================================================

// State is the explicit, single-owner context threaded through the engines.
type State struct {
	Cfg       *config.Config
	RNG       *generic.RNG
	Chart     *org.Chart
	Registry  *personnel.Registry
	Ledger    *ledger.Ledger
	Clock     *generic.Clock
	Generator *personnel.Generator

	log *logger.Logger
}

// Setup validates the config, generates the population and builds the org.
func Setup(cfg *config.Config, log *logger.Logger) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, analysis, err := cfg.Dates()
	if err != nil {
		return nil, err
	}

	clock := generic.NewClock(start, analysis, cfg.AnalysisDays)
	rng := generic.NewRNG(cfg.Seed())
	s := &State{
		Cfg:       cfg,
		RNG:       rng,
		Chart:     org.NewChart(cfg.Population.TeamsPerShift, cfg.Population.LaborersPerTeam),
		Registry:  personnel.NewRegistry(),
		Ledger:    ledger.New(),
		Clock:     clock,
		Generator: personnel.NewGenerator(cfg, rng, clock.Days),
		log:       logger.OrNop(log),
	}

	s.Generator.Populate(s.Registry, cfg.PopulationSize())
	if err := personnel.AssignRoles(s.Registry, s.Chart); err != nil {
		return nil, fmt.Errorf("assigning roles: %w", err)
	}
	if err := personnel.AssignShiftsAndTeams(s.Registry, s.Chart); err != nil {
		return nil, fmt.Errorf("assigning shifts and teams: %w", err)
	}
	if err := personnel.RebuildRelations(s.Registry, s.Chart); err != nil {
		return nil, fmt.Errorf("building relations: %w", err)
	}

	s.log.Info("simulation set up",
		"seed", cfg.Seed(),
		"persons", s.Registry.Len(),
		"teams", len(s.Chart.Teams),
		"days", clock.Days,
		"priming_days", clock.PrimingDays(),
	)
	return s, nil
}

// =============================================================================
// ROW HELPERS
// =============================================================================

// newRow builds a row for p on the current day. The timestamp falls inside
// the person's shift, so a Night shift (22:00-06:00) can stamp the next
// morning while Date stays on the shift's start day. Persons without a
// shift (the Director) use 08:00.
func (s *State) newRow(p *personnel.Person) ledger.Row {
	today := s.Clock.Today()
	hour := 8
	if p.Shift != nil {
		hour = p.Shift.StartHour
	}
	r := ledger.Row{
		Date:      today.String(),
		Timestamp: today.At(hour, s.RNG.IntN(shiftMinutes)).Time,
		DayIndex:  s.Clock.DayIndex(),
		Subject:   ledger.SnapshotOf(p),
	}
	if sup, ok := s.Registry.SupervisorOf(p); ok {
		snap := ledger.SnapshotOf(sup)
		r.Supervisor = &snap
	}
	return r
}

// shiftMinutes is the length of a shift.
const shiftMinutes = 8 * 60
