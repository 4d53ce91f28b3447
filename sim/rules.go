/*
rules.go - Turnover rule list

PURPOSE:
  The ordered list of resignation and termination rules. Each rule is a
  condition on the person's history plus a daily probability. Rules are
  evaluated top to bottom and the first one that fires decides the
  person's fate for the day; later rules are not consulted.

RULES (in order):
  Resignations
    Low Commitment                commitment < 0.2
    Ethically Inferior Supervisor supervisor goodness < own goodness - 0.3
    Unrecognized Good Behaviors   tenure; unrecorded goods ≥ 3 and > recorded
    Recruited Away                worker capacity > 0.7
    Underrecorded Efficacy        tenure; mean recorded < 0.9 × mean actual
    Poor Teammates                mean colleague goodness < 0.35
  Terminations
    Multiple Sabotages            recorded sabotages ≥ 3
    Lapses + Below-Avg Efficacy   tenure; recorded lapses ≥ 3 and mean
                                  recorded efficacy < org mean
    Multiple Lapses               recorded lapses ≥ 5
    Multiple Slips                recorded slips ≥ 6
    Multiple Disruptions          recorded disruptions ≥ 5
    Multiple Absences             absences in the last 20 days ≥ 5
    Low Efficacy                  tenure; mean recorded < 0.6 × org mean

  Terminations act on what the supervisor recorded, never on what actually
  happened. "Tenure" is DaysAttended ≥ 15. Undefined means (no data) make
  the rule not apply.

SEE ALSO:
  - turnover.go: Evaluation and replacement
*/
package sim

import (
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// MinTenureDays gates the rules that need a meaningful history.
const MinTenureDays = 15

// absenceRuleWindow is the lookback of the Multiple Absences rule.
const absenceRuleWindow = 20

// RuleContext is what a rule can look at.
type RuleContext struct {
	Person     *personnel.Person
	Supervisor *personnel.Person // nil when none
	Colleagues []*personnel.Person
	Day        int

	// OrgMeanRecordedEfficacy is the mean recorded efficacy of all active
	// persons over their careers to date.
	OrgMeanRecordedEfficacy generic.Optional

	rng *generic.RNG
}

// Tenured reports whether the person has attended enough days.
func (c *RuleContext) Tenured() bool {
	return c.Person.DaysAttended >= MinTenureDays
}

// Career sums a metric from hire to today.
func (c *RuleContext) Career(m personnel.Metric) int {
	return c.Person.History.Count(m).Sum(c.Person.HiredDay, c.Day)
}

// MeanRecordedEfficacy over the person's career to date.
func (c *RuleContext) MeanRecordedEfficacy() generic.Optional {
	return c.Person.History.MeanRecordedEfficacy(c.Person.HiredDay, c.Day)
}

// MeanEfficacy is the actual mean over the person's career to date.
func (c *RuleContext) MeanEfficacy() generic.Optional {
	return c.Person.History.MeanEfficacy(c.Person.HiredDay, c.Day)
}

// Rule is one turnover rule.
type Rule struct {
	Name        string
	Kind        ledger.Comptype // Resignation or Termination
	Probability float64
	Condition   func(*RuleContext) bool
}

// Reason is the nature recorded on the separation row.
func (r Rule) Reason() string { return r.Name }

// Applies checks the condition and, only if it holds, rolls the probability.
func (r Rule) Applies(ctx *RuleContext) bool {
	if !r.Condition(ctx) {
		return false
	}
	return ctx.rng.Chance(r.Probability)
}

// FirstMatch returns the first rule that applies.
func FirstMatch(rules []Rule, ctx *RuleContext) (Rule, bool) {
	for _, r := range rules {
		if r.Applies(ctx) {
			return r, true
		}
	}
	return Rule{}, false
}

// DefaultRules returns the rule list in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		// Resignations
		{
			Name: "Low Commitment", Kind: ledger.Resignation, Probability: 0.002,
			Condition: func(c *RuleContext) bool { return c.Person.Traits.Commitment < 0.2 },
		},
		{
			Name: "Ethically Inferior Supervisor", Kind: ledger.Resignation, Probability: 0.003,
			Condition: func(c *RuleContext) bool {
				return c.Supervisor != nil && c.Supervisor.Traits.Goodness < c.Person.Traits.Goodness-0.3
			},
		},
		{
			Name: "Unrecognized Good Behaviors", Kind: ledger.Resignation, Probability: 0.01,
			Condition: func(c *RuleContext) bool {
				fn, tp := c.Career(personnel.MetricGoodFN), c.Career(personnel.MetricGoodTP)
				return c.Tenured() && fn >= 3 && fn > tp
			},
		},
		{
			Name: "Recruited Away", Kind: ledger.Resignation, Probability: 0.001,
			Condition: func(c *RuleContext) bool { return c.Person.WrkrCap > 0.7 },
		},
		{
			Name: "Underrecorded Efficacy", Kind: ledger.Resignation, Probability: 0.01,
			Condition: func(c *RuleContext) bool {
				rec, act := c.MeanRecordedEfficacy(), c.MeanEfficacy()
				return c.Tenured() && rec.Valid && act.Valid && rec.Value < 0.9*act.Value
			},
		},
		{
			Name: "Poor Teammates", Kind: ledger.Resignation, Probability: 0.003,
			Condition: func(c *RuleContext) bool {
				if len(c.Colleagues) == 0 {
					return false
				}
				goodness := make([]float64, len(c.Colleagues))
				for i, p := range c.Colleagues {
					goodness[i] = p.Traits.Goodness
				}
				return generic.Mean(goodness).Value < 0.35
			},
		},

		// Terminations
		{
			Name: "Multiple Sabotages", Kind: ledger.Termination, Probability: 0.27,
			Condition: func(c *RuleContext) bool { return c.Career(personnel.MetricRecordedSabotage) >= 3 },
		},
		{
			Name: "Lapses and Below-Average Efficacy", Kind: ledger.Termination, Probability: 0.1,
			Condition: func(c *RuleContext) bool {
				rec := c.MeanRecordedEfficacy()
				return c.Tenured() && c.Career(personnel.MetricRecordedLapse) >= 3 &&
					rec.Valid && c.OrgMeanRecordedEfficacy.Valid && rec.Value < c.OrgMeanRecordedEfficacy.Value
			},
		},
		{
			Name: "Multiple Lapses", Kind: ledger.Termination, Probability: 0.15,
			Condition: func(c *RuleContext) bool { return c.Career(personnel.MetricRecordedLapse) >= 5 },
		},
		{
			Name: "Multiple Slips", Kind: ledger.Termination, Probability: 0.15,
			Condition: func(c *RuleContext) bool { return c.Career(personnel.MetricRecordedSlip) >= 6 },
		},
		{
			Name: "Multiple Disruptions", Kind: ledger.Termination, Probability: 0.2,
			Condition: func(c *RuleContext) bool { return c.Career(personnel.MetricRecordedDisruption) >= 5 },
		},
		{
			Name: "Multiple Absences", Kind: ledger.Termination, Probability: 0.25,
			Condition: func(c *RuleContext) bool {
				return c.Person.History.Trailing(personnel.MetricAbsence, c.Day+1, absenceRuleWindow) >= 5
			},
		},
		{
			Name: "Low Efficacy", Kind: ledger.Termination, Probability: 0.05,
			Condition: func(c *RuleContext) bool {
				rec := c.MeanRecordedEfficacy()
				return c.Tenured() && rec.Valid && c.OrgMeanRecordedEfficacy.Valid &&
					rec.Value < 0.6*c.OrgMeanRecordedEfficacy.Value
			},
		},
	}
}
