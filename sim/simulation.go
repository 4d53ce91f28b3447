package sim

import (
	"context"
	"fmt"

	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/logger"
	"github.com/warp/workforce-sim/org"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// SIMULATOR - Day loop
// =============================================================================

// Simulator owns a State and its engines.
type Simulator struct {
	State *State

	Modifiers *ModifierEngine
	Behaviors *BehaviorEngine
	Recording *RecordingEngine
	Turnover  *TurnoverEngine

	finalized bool
	result    *Result
}

// New sets up a simulation for cfg. A nil logger discards output.
func New(cfg *config.Config, log *logger.Logger) (*Simulator, error) {
	s, err := Setup(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		State:     s,
		Modifiers: NewModifierEngine(s),
		Behaviors: NewBehaviorEngine(s),
		Recording: NewRecordingEngine(s),
		Turnover:  NewTurnoverEngine(s, nil),
	}, nil
}

// Run simulates every remaining day and finalizes. Cancellation is checked
// between days.
func (sim *Simulator) Run(ctx context.Context) (*Result, error) {
	sim.State.Clock.StartTimer()
	for !sim.State.Clock.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := sim.Step(); err != nil {
			return nil, err
		}
	}
	return sim.Finalize()
}

// Step simulates the current day and advances the clock.
func (sim *Simulator) Step() error {
	s := sim.State
	if sim.finalized || s.Clock.Done() {
		return generic.ErrAlreadyFinalized
	}
	day := s.Clock.DayIndex()

	if err := sim.swapWorkers(); err != nil {
		return fmt.Errorf("day %d: %w", day, err)
	}
	if err := personnel.RebuildRelations(s.Registry, s.Chart); err != nil {
		return fmt.Errorf("day %d: %w", day, err)
	}

	sim.Modifiers.Reset()
	sim.Modifiers.Apply()
	start, end := sim.Behaviors.Run()
	sim.Recording.Run(start, end)
	separations, err := sim.Turnover.Run()
	if err != nil {
		return fmt.Errorf("day %d: %w", day, err)
	}

	if !s.Cfg.Logging.Quiet {
		s.log.Debug("day simulated",
			"day", day,
			"date", s.Clock.Today().String(),
			"rows", end-start,
			"separations", separations,
		)
	}
	s.Clock.Advance()
	return nil
}

// swapWorkers lets two laborers on different teams trade places.
func (sim *Simulator) swapWorkers() error {
	s := sim.State
	if !s.RNG.Chance(s.Cfg.Rolls.WorkerSwapRate) {
		return nil
	}

	var laborers []*personnel.Person
	for _, p := range s.Registry.Active() {
		if p.HasRole(org.RoleLaborer) {
			laborers = append(laborers, p)
		}
	}
	if len(laborers) < 2 {
		return nil
	}
	a := generic.Pick(s.RNG, laborers)
	var others []*personnel.Person
	for _, p := range laborers {
		if p.Team != a.Team {
			others = append(others, p)
		}
	}
	if len(others) == 0 {
		return nil
	}
	b := generic.Pick(s.RNG, others)

	ta, tb := a.Team, b.Team
	personnel.SwapTeams(a, b)
	s.log.Debug("workers swapped", "a", a.ID, "b", b.ID, "teams", []string{ta.Name, tb.Name})
	return personnel.RebuildSelectedRelations(s.Registry, s.Chart, []*org.Team{ta, tb})
}
