package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

func ruleContext(p *personnel.Person, day int) *RuleContext {
	return &RuleContext{Person: p, Day: day, rng: generic.NewRNG(1)}
}

func testPerson(days int) *personnel.Person {
	return &personnel.Person{
		ID:      1,
		Traits:  personnel.Traits{Commitment: 0.5, Goodness: 0.5},
		WrkrCap: 0.5,
		History: personnel.NewHistory(days),
	}
}

func certain(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Probability = 1
		out[i] = r
	}
	return out
}

func TestDefaultRules_Order(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 13)

	for i, r := range rules {
		if i < 6 {
			assert.Equal(t, ledger.Resignation, r.Kind, r.Name)
		} else {
			assert.Equal(t, ledger.Termination, r.Kind, r.Name)
		}
	}
	assert.Equal(t, "Low Commitment", rules[0].Name)
	assert.Equal(t, "Multiple Sabotages", rules[6].Name)
	assert.Equal(t, "Low Efficacy", rules[12].Name)
}

func TestFirstMatch_FirstRuleWins(t *testing.T) {
	// GIVEN: A person matching Low Commitment and Multiple Sabotages
	// WHEN: Evaluating with certain probabilities
	// THEN: The earlier rule (a resignation) wins

	p := testPerson(30)
	p.Traits.Commitment = 0.1
	for _, d := range []int{1, 2, 3} {
		p.History.Add(personnel.MetricRecordedSabotage, d)
	}

	rule, ok := FirstMatch(certain(DefaultRules()), ruleContext(p, 10))
	require.True(t, ok)
	assert.Equal(t, "Low Commitment", rule.Name)
	assert.Equal(t, ledger.Resignation, rule.Kind)
}

func TestFirstMatch_NoMatch(t *testing.T) {
	p := testPerson(30)
	_, ok := FirstMatch(certain(DefaultRules()), ruleContext(p, 10))
	assert.False(t, ok)
}

func TestRules_SabotageCountsRecordedOnly(t *testing.T) {
	// GIVEN: Three actual sabotages, none recorded
	// THEN: Multiple Sabotages does not apply

	p := testPerson(30)
	for _, d := range []int{1, 2, 3} {
		p.History.Add(personnel.MetricSabotage, d)
	}
	_, ok := FirstMatch(certain(DefaultRules()), ruleContext(p, 10))
	assert.False(t, ok)

	p.History.Add(personnel.MetricRecordedSabotage, 1)
	p.History.Add(personnel.MetricRecordedSabotage, 2)
	p.History.Add(personnel.MetricRecordedSabotage, 3)
	rule, ok := FirstMatch(certain(DefaultRules()), ruleContext(p, 10))
	require.True(t, ok)
	assert.Equal(t, "Multiple Sabotages", rule.Name)
}

func TestRules_TenureGate(t *testing.T) {
	// GIVEN: Unrecognized good behaviors but only 10 days attended
	// THEN: The rule waits for tenure

	p := testPerson(30)
	for _, d := range []int{1, 2, 3} {
		p.History.Add(personnel.MetricGoodFN, d)
	}
	p.DaysAttended = 10
	_, ok := FirstMatch(certain(DefaultRules()), ruleContext(p, 20))
	assert.False(t, ok)

	p.DaysAttended = MinTenureDays
	rule, ok := FirstMatch(certain(DefaultRules()), ruleContext(p, 20))
	require.True(t, ok)
	assert.Equal(t, "Unrecognized Good Behaviors", rule.Name)
}

func TestRules_UndefinedOrgMeanSkips(t *testing.T) {
	// GIVEN: A tenured person with recorded efficacy far below anything,
	//        but no org mean available
	// THEN: Low Efficacy does not apply

	p := testPerson(30)
	p.DaysAttended = 20
	for d := 0; d < 20; d++ {
		p.History.RecordedEfficacy.Set(d, 0.1)
		p.History.Efficacy.Set(d, 0.1)
	}
	ctx := ruleContext(p, 20)
	_, ok := FirstMatch(certain(DefaultRules()), ctx)
	assert.False(t, ok)

	ctx.OrgMeanRecordedEfficacy = generic.Some(1.0)
	rule, ok := FirstMatch(certain(DefaultRules()), ctx)
	require.True(t, ok)
	assert.Equal(t, "Low Efficacy", rule.Name)
}

func TestRules_MultipleAbsencesWindow(t *testing.T) {
	p := testPerson(60)
	for _, d := range []int{1, 2, 3, 4, 5} {
		p.History.Add(personnel.MetricAbsence, d)
	}
	rule, ok := FirstMatch(certain(DefaultRules()), ruleContext(p, 10))
	require.True(t, ok)
	assert.Equal(t, "Multiple Absences", rule.Name)

	// Day 30: the absences fell out of the 20-day window.
	_, ok = FirstMatch(certain(DefaultRules()), ruleContext(p, 30))
	assert.False(t, ok)
}

func TestRule_ZeroProbabilityNeverFires(t *testing.T) {
	p := testPerson(30)
	p.Traits.Commitment = 0
	r := DefaultRules()[0]
	r.Probability = 0
	assert.False(t, r.Applies(ruleContext(p, 1)))
}

// =============================================================================
// NOTES
// =============================================================================

func TestBuildNote_ContainsName(t *testing.T) {
	note, ok := BuildNote(generic.NewRNG(3), ledger.Sabotage, "Maria")
	require.True(t, ok)
	assert.Contains(t, note, "Maria")
	assert.True(t, strings.HasSuffix(note, "."))
}

func TestBuildNote_NoTemplate(t *testing.T) {
	for _, c := range []ledger.Comptype{ledger.Presence, ledger.Absence, ledger.Efficacy, ledger.Onboarding} {
		note, ok := BuildNote(generic.NewRNG(3), c, "Maria")
		assert.False(t, ok)
		assert.Empty(t, note)
	}
}

func TestBuildNote_EveryDiscreteComptype(t *testing.T) {
	rng := generic.NewRNG(5)
	for _, c := range append(append([]ledger.Comptype{}, ledger.GoodComptypes...), ledger.PoorComptypes...) {
		_, ok := BuildNote(rng, c, "Ana Ruiz")
		assert.True(t, ok, c)
	}
}

// =============================================================================
// MODIFIERS
// =============================================================================

func TestRecordingFeedback(t *testing.T) {
	h := personnel.NewHistory(10)
	assert.Equal(t, 0.0, RecordingFeedback(h, 5))

	// TP on D-1 (weight 3), FN on D-3 (weight 1): (3 - 1) / 6
	h.Add(personnel.MetricGoodTP, 4)
	h.Add(personnel.MetricGoodFN, 2)
	assert.InDelta(t, 2.0/6, RecordingFeedback(h, 5), 1e-9)

	// Clamped to 1.
	for i := 0; i < 5; i++ {
		h.Add(personnel.MetricGoodTP, 3)
	}
	assert.Equal(t, 1.0, RecordingFeedback(h, 5))
}
