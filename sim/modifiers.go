/*
modifiers.go - Daily modifier engine

PURPOSE:
  Recomputes every active person's modified probabilities and efficacy
  level from their base values. The nightly reset restores Base, then the
  effects below apply in order. Nothing carries over from one day to the
  next except through History (recording feedback reads it).

EFFECTS:
  Each effect scales a level as

      level *= 1 + maxBonus × strength × multiplier

  where maxBonus and strength come from config and multiplier is the
  effect's own signal in [-1, 1]:

  | Effect                | Target            | Multiplier                           |
  |-----------------------|-------------------|--------------------------------------|
  | Age                   | efficacy          | (age-min)/(max-min)                  |
  | Weekday               | efficacy          | weekday/4 × U(0,1), Mon=0..Fri=4     |
  | Day of month          | efficacy          | (dom-19)/12 from day 20              |
  | Day of month (probs)  | Teamwork, Disrupt | +1 from day 23                       |
  |                       | Slip              | +1 from day 26                       |
  | Season                | efficacy          | -seasonFactor (peak mid-year)        |
  | Same-sex colleagues   | efficacy          | share of colleagues with same sex    |
  | Supervisor age gap    | efficacy          | -|age gap| / age range               |
  | Workstyle level       | efficacy          | profile level bias                   |
  | Workstyle volatility  | efficacy          | U(-1,1) for volatile styles          |
  | Workstyle tendencies  | Idea, Teamwork,   | tendency - 1                         |
  |                       | Disruption, Lapse |                                      |
  | Recording feedback    | efficacy          | Σ w×(TP-FN) over D-1..D-3, w=3,2,1   |

  Probabilities are clamped to [0, 1]; efficacy is floored at 0.

SEE ALSO:
  - behaviors.go: Consumes Person.Modified
  - personnel/traits.go: Workstyle profiles
*/
package sim

import (
	"math"

	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/personnel"
)

// ModifierEngine applies the daily effects.
type ModifierEngine struct {
	s *State
}

func NewModifierEngine(s *State) *ModifierEngine {
	return &ModifierEngine{s: s}
}

// Reset restores every active person's modified values to base.
func (m *ModifierEngine) Reset() {
	for _, p := range m.s.Registry.Active() {
		p.ResetModifiers()
	}
}

// Apply runs every effect for every active person, in creation order.
func (m *ModifierEngine) Apply() {
	today := m.s.Clock.Today()
	day := m.s.Clock.DayIndex()
	for _, p := range m.s.Registry.Active() {
		m.applyAge(p)
		m.applyWeekday(p, today)
		m.applyDayOfMonth(p, today)
		m.applySeason(p, today)
		m.applySameSexColleagues(p)
		m.applySupervisorAgeGap(p)
		m.applyWorkstyle(p)
		m.applyRecordingFeedback(p, day)
		p.Modified.Efficacy = math.Max(0, p.Modified.Efficacy)
	}
}

// scale multiplies a level by 1 + bonus×strength×mult.
func scale(level *float64, bonus, strength, mult float64) {
	*level *= 1 + bonus*strength*mult
}

// scaleProb is scale clamped to a probability.
func scaleProb(prob *float64, bonus, strength, mult float64) {
	scale(prob, bonus, strength, mult)
	*prob = generic.Clamp01(*prob)
}

// =============================================================================
// EFFECTS
// =============================================================================

func (m *ModifierEngine) applyAge(p *personnel.Person) {
	pop := m.s.Cfg.Population
	span := float64(pop.AgeMax - pop.AgeMin)
	if span <= 0 {
		return
	}
	mult := float64(p.Age-pop.AgeMin) / span
	scale(&p.Modified.Efficacy, m.s.Cfg.Bonuses.Age, m.s.Cfg.Strengths.Age, mult)
}

func (m *ModifierEngine) applyWeekday(p *personnel.Person, today generic.TimePoint) {
	wd := today.WeekdayIndex()
	if wd > 4 {
		return
	}
	mult := float64(wd) / 4 * m.s.RNG.Float()
	scale(&p.Modified.Efficacy, m.s.Cfg.Bonuses.Weekday, m.s.Cfg.Strengths.Weekday, mult)
}

func (m *ModifierEngine) applyDayOfMonth(p *personnel.Person, today generic.TimePoint) {
	b, str := m.s.Cfg.Bonuses, m.s.Cfg.Strengths.DayOfMonth
	dom := today.Day()
	if dom >= 20 {
		scale(&p.Modified.Efficacy, b.DayOfMonth, str, float64(dom-19)/12)
	}
	if dom >= 23 {
		scaleProb(&p.Modified.Teamwork, b.DayOfMonthProb, str, 1)
		scaleProb(&p.Modified.Disruption, b.DayOfMonthProb, str, 1)
	}
	if dom >= 26 {
		scaleProb(&p.Modified.Slip, b.DayOfMonthProb, str, 1)
	}
}

func (m *ModifierEngine) applySeason(p *personnel.Person, today generic.TimePoint) {
	scale(&p.Modified.Efficacy, m.s.Cfg.Bonuses.Season, m.s.Cfg.Strengths.Season, -today.SeasonFactor())
}

func (m *ModifierEngine) applySameSexColleagues(p *personnel.Person) {
	if len(p.Colleagues) == 0 {
		return
	}
	same := 0
	for _, id := range p.Colleagues {
		if c, ok := m.s.Registry.Get(id); ok && c.Sex == p.Sex {
			same++
		}
	}
	mult := float64(same) / float64(len(p.Colleagues))
	scale(&p.Modified.Efficacy, m.s.Cfg.Bonuses.SameSexColleagues, m.s.Cfg.Strengths.SameSexColleagues, mult)
}

func (m *ModifierEngine) applySupervisorAgeGap(p *personnel.Person) {
	sup, ok := m.s.Registry.SupervisorOf(p)
	if !ok {
		return
	}
	pop := m.s.Cfg.Population
	span := float64(pop.AgeMax - pop.AgeMin)
	if span <= 0 {
		return
	}
	gap := math.Min(1, math.Abs(float64(p.Age-sup.Age))/span)
	scale(&p.Modified.Efficacy, m.s.Cfg.Bonuses.SupervisorAgeGap, m.s.Cfg.Strengths.SupervisorAgeGap, -gap)
}

func (m *ModifierEngine) applyWorkstyle(p *personnel.Person) {
	b, str := m.s.Cfg.Bonuses.Workstyle, m.s.Cfg.Strengths.Workstyle
	prof := p.Workstyle.Profile()

	scale(&p.Modified.Efficacy, b, str, prof.LevelBias)
	if prof.Volatile {
		scale(&p.Modified.Efficacy, b, str, m.s.RNG.Uniform(-1, 1))
	}

	tend := func(prob *float64, t float64) {
		if t == 0 {
			return
		}
		scaleProb(prob, 1, str, t-1)
	}
	tend(&p.Modified.Idea, prof.IdeaTendency)
	tend(&p.Modified.Teamwork, prof.TeamworkTendency)
	tend(&p.Modified.Disruption, prof.DisruptionTendency)
	tend(&p.Modified.Lapse, prof.LapseTendency)
}

// feedbackWeights for D-1, D-2, D-3.
var feedbackWeights = [3]float64{3, 2, 1}

// RecordingFeedback scores how well the person's good behaviors were
// recognized over the last three days, in [-1, 1].
func RecordingFeedback(h *personnel.History, day int) float64 {
	score := 0.0
	for k, w := range feedbackWeights {
		d := day - k - 1
		tp := h.Count(personnel.MetricGoodTP).At(d)
		fn := h.Count(personnel.MetricGoodFN).At(d)
		score += w * float64(tp-fn)
	}
	return math.Max(-1, math.Min(1, score/6))
}

func (m *ModifierEngine) applyRecordingFeedback(p *personnel.Person, day int) {
	mult := RecordingFeedback(p.History, day)
	if mult == 0 {
		return
	}
	scale(&p.Modified.Efficacy, m.s.Cfg.Bonuses.RecordingFeedback, m.s.Cfg.Strengths.RecordingFeedback, mult)
}
