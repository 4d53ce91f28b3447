package sim

import (
	"math"

	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// BEHAVIOR ENGINE - What actually happens
// =============================================================================

// Dependency rolls layered on the normal rolls. The absence override can
// cancel a passed attendance roll; the Slip and Sacrifice rolls give a
// second chance after a failed independent roll.
const (
	// Present persons with ≥1 Lapse and ≥1 Slip in the last 4 days stay home.
	absenceWindow = 4
	absenceChance = 0.9

	// ≥2 Lapses in the last 4 days make a Slip likely.
	slipWindow    = 4
	slipThreshold = 2
	slipChance    = 0.9

	// ≥2 Teamwork in the last 5 days make a Sacrifice likely.
	sacrificeWindow    = 5
	sacrificeThreshold = 2
	sacrificeChance    = 0.8
)

// discreteBehavior ties a comptype to its probability and history metric.
type discreteBehavior struct {
	comptype ledger.Comptype
	metric   personnel.Metric
	prob     func(*personnel.Probabilities) float64
	good     bool
}

// discreteBehaviors in roll order.
var discreteBehaviors = []discreteBehavior{
	{ledger.Idea, personnel.MetricIdea, func(p *personnel.Probabilities) float64 { return p.Idea }, true},
	{ledger.Lapse, personnel.MetricLapse, func(p *personnel.Probabilities) float64 { return p.Lapse }, false},
	{ledger.Feat, personnel.MetricFeat, func(p *personnel.Probabilities) float64 { return p.Feat }, true},
	{ledger.Slip, personnel.MetricSlip, func(p *personnel.Probabilities) float64 { return p.Slip }, false},
	{ledger.Teamwork, personnel.MetricTeamwork, func(p *personnel.Probabilities) float64 { return p.Teamwork }, true},
	{ledger.Disruption, personnel.MetricDisruption, func(p *personnel.Probabilities) float64 { return p.Disruption }, false},
	{ledger.Sacrifice, personnel.MetricSacrifice, func(p *personnel.Probabilities) float64 { return p.Sacrifice }, true},
	{ledger.Sabotage, personnel.MetricSabotage, func(p *personnel.Probabilities) float64 { return p.Sabotage }, false},
}

// BehaviorEngine generates the actual half of the day's rows.
type BehaviorEngine struct {
	s *State
}

func NewBehaviorEngine(s *State) *BehaviorEngine {
	return &BehaviorEngine{s: s}
}

// Run stages and appends today's behavior rows. Returns the appended range.
func (b *BehaviorEngine) Run() (start, end int) {
	today := b.s.Clock.Today()
	day := b.s.Clock.DayIndex()

	if !today.IsSunday() {
		for _, p := range b.s.Registry.Active() {
			if today.IsSaturday() {
				b.saturday(p, day)
			} else {
				b.weekday(p, day)
			}
		}
	}
	return b.s.Ledger.AppendBatch()
}

// saturday: only a small call-in crew works. No absences, no discrete behaviors.
func (b *BehaviorEngine) saturday(p *personnel.Person, day int) {
	chance := b.s.Cfg.Rolls.SaturdayCallInRate * p.Modified.Presence
	if !b.s.RNG.Chance(chance) {
		return
	}
	b.attend(p, day)
	b.efficacy(p, day)
}

func (b *BehaviorEngine) weekday(p *personnel.Person, day int) {
	h := p.History
	present := p.Modified.Presence >= b.s.RNG.Float()
	if present &&
		h.Trailing(personnel.MetricLapse, day, absenceWindow) >= 1 &&
		h.Trailing(personnel.MetricSlip, day, absenceWindow) >= 1 {
		present = !b.s.RNG.Chance(absenceChance)
	}

	if !present {
		h.Add(personnel.MetricAbsence, day)
		b.stage(p, ledger.NewBehavior(ledger.Absence))
		return
	}

	b.attend(p, day)
	b.efficacy(p, day)
	for _, db := range discreteBehaviors {
		if b.occurs(p, day, db) {
			h.Add(db.metric, day)
			b.stage(p, ledger.NewBehavior(db.comptype))
		}
	}
}

func (b *BehaviorEngine) attend(p *personnel.Person, day int) {
	p.DaysAttended++
	p.History.Add(personnel.MetricPresence, day)
	b.stage(p, ledger.NewBehavior(ledger.Presence))
}

// efficacy draws level + N(0, variability) scaled by workstyle, floored at 0.
func (b *BehaviorEngine) efficacy(p *personnel.Person, day int) {
	noise := b.s.RNG.Normal(0, b.s.Cfg.Rates.MaxEfficacyVariability) * p.Workstyle.Profile().Variability
	v := generic.Round(math.Max(0, p.Modified.Efficacy+noise), 3)

	p.History.Efficacy.Set(day, v)
	beh := ledger.NewBehavior(ledger.Efficacy)
	beh.Efficacy = &v
	b.stage(p, beh)
}

// occurs rolls one discrete behavior. Slip and Sacrifice get a dependency
// roll only when the independent roll fails.
func (b *BehaviorEngine) occurs(p *personnel.Person, day int, db discreteBehavior) bool {
	ceiling := b.s.Cfg.Rolls.PoorDefenseMax
	if db.good {
		ceiling = b.s.Cfg.Rolls.GoodDefenseMax
	}
	if db.prob(&p.Modified) >= b.s.RNG.Uniform(0, ceiling) {
		return true
	}

	h := p.History
	switch db.comptype {
	case ledger.Slip:
		if h.Trailing(personnel.MetricLapse, day, slipWindow) >= slipThreshold {
			return b.s.RNG.Chance(slipChance)
		}
	case ledger.Sacrifice:
		if h.Trailing(personnel.MetricTeamwork, day, sacrificeWindow) >= sacrificeThreshold {
			return b.s.RNG.Chance(sacrificeChance)
		}
	}
	return false
}

func (b *BehaviorEngine) stage(p *personnel.Person, beh *ledger.Behavior) {
	r := b.s.newRow(p)
	r.Behavior = beh
	b.s.Ledger.Stage(r)
}
