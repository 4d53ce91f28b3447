package sim

import (
	"fmt"

	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/org"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// TURNOVER ENGINE - Resignations, terminations and replacements
// =============================================================================

// TurnoverEngine runs on weekdays after recording. Pass one evaluates the
// rule list for every eligible person against the day's final state. Pass
// two separates the matched persons, hires a replacement into each exact
// slot, appends the Separation and Onboarding rows and rebuilds relations.
type TurnoverEngine struct {
	s     *State
	rules []Rule
}

func NewTurnoverEngine(s *State, rules []Rule) *TurnoverEngine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &TurnoverEngine{s: s, rules: rules}
}

// separation is a pass-one decision.
type separation struct {
	person *personnel.Person
	rule   Rule
}

// Run applies turnover for today and returns the number of separations.
func (t *TurnoverEngine) Run() (int, error) {
	if !t.s.Clock.Today().IsWorkday() {
		return 0, nil
	}
	day := t.s.Clock.DayIndex()

	decided := t.evaluate(day)
	if len(decided) == 0 {
		return 0, nil
	}

	for _, d := range decided {
		t.separate(d, day)
	}
	t.s.Ledger.AppendBatch()

	if err := personnel.RebuildRelations(t.s.Registry, t.s.Chart); err != nil {
		return len(decided), fmt.Errorf("rebuilding relations after turnover: %w", err)
	}
	return len(decided), nil
}

// eligible excludes the Director and Shift Managers.
func eligible(p *personnel.Person) bool {
	return p.HasRole(org.RoleTeamLeader) || p.HasRole(org.RoleLaborer)
}

func (t *TurnoverEngine) evaluate(day int) []separation {
	active := t.s.Registry.Active()
	orgMean := orgMeanRecordedEfficacy(active, day)

	var out []separation
	for _, p := range active {
		if !eligible(p) {
			continue
		}
		ctx := &RuleContext{
			Person:                  p,
			Day:                     day,
			OrgMeanRecordedEfficacy: orgMean,
			rng:                     t.s.RNG,
		}
		if sup, ok := t.s.Registry.SupervisorOf(p); ok {
			ctx.Supervisor = sup
		}
		for _, id := range p.Colleagues {
			if c, ok := t.s.Registry.Get(id); ok {
				ctx.Colleagues = append(ctx.Colleagues, c)
			}
		}
		if rule, ok := FirstMatch(t.rules, ctx); ok {
			out = append(out, separation{person: p, rule: rule})
		}
	}
	return out
}

// orgMeanRecordedEfficacy pools every recorded efficacy value of the active persons.
func orgMeanRecordedEfficacy(active []*personnel.Person, day int) generic.Optional {
	var all []float64
	for _, p := range active {
		all = append(all, p.History.RecordedEfficacy.Values(p.HiredDay, day)...)
	}
	return generic.Mean(all)
}

func (t *TurnoverEngine) separate(d separation, day int) {
	p := d.person

	// Separation row, snapshotted before the person leaves.
	row := t.s.newRow(p)
	beh := &ledger.Behavior{Type: ledger.TypeSeparation, Comptype: d.rule.Kind, Nature: d.rule.Reason()}
	if d.rule.Kind == ledger.Resignation {
		row.Behavior = beh
		row.Record = ledger.RecordOf(beh)
		row.ConfMat = ledger.ConfMatTP
	} else {
		row.Record = ledger.RecordOf(beh)
	}
	t.s.Ledger.Stage(row)

	hire := t.s.Generator.New(day)
	hire.TakeSlot(p)
	p.Separate(day)
	t.s.Registry.Add(hire)

	onboard := t.s.newRow(hire)
	onboard.Record = &ledger.Record{Type: ledger.TypeOnboarding, Comptype: ledger.Onboarding, Nature: ledger.Onboarding.Nature()}
	t.s.Ledger.Stage(onboard)

	t.s.log.Debug("separation",
		"person", p.ID,
		"kind", d.rule.Kind,
		"reason", d.rule.Reason(),
		"replacement", hire.ID,
	)
}
