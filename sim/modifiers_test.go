package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/personnel"
)

func date(t *testing.T, s string) generic.TimePoint {
	t.Helper()
	tp, err := generic.ParseDate(s)
	require.NoError(t, err)
	return tp
}

func neutralPerson() *personnel.Person {
	p := testPerson(60)
	p.Modified = personnel.Probabilities{Efficacy: 1, Teamwork: 0.1, Disruption: 0.1, Slip: 0.1}
	return p
}

func TestDayOfMonth_Thresholds(t *testing.T) {
	// GIVEN: Efficacy 1 and Teamwork/Disruption/Slip at 0.1
	// WHEN: Applying the day-of-month effect across the month
	// THEN: Efficacy rises from day 20, Teamwork/Disruption from 23, Slip from 26

	s := engineState(t, 0)
	m := NewModifierEngine(s)
	bonus, str := s.Cfg.Bonuses, s.Cfg.Strengths.DayOfMonth
	probUp := 0.1 * (1 + bonus.DayOfMonthProb*str)

	tests := []struct {
		date       string
		efficacy   float64
		teamwork   float64
		disruption float64
		slip       float64
	}{
		{"2024-01-19", 1, 0.1, 0.1, 0.1},
		{"2024-01-20", 1 + bonus.DayOfMonth*str/12, 0.1, 0.1, 0.1},
		{"2024-01-22", 1 + bonus.DayOfMonth*str*3/12, 0.1, 0.1, 0.1},
		{"2024-01-23", 1 + bonus.DayOfMonth*str*4/12, probUp, probUp, 0.1},
		{"2024-01-25", 1 + bonus.DayOfMonth*str*6/12, probUp, probUp, 0.1},
		{"2024-01-26", 1 + bonus.DayOfMonth*str*7/12, probUp, probUp, probUp},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			p := neutralPerson()
			m.applyDayOfMonth(p, date(t, tt.date))

			assert.InDelta(t, tt.efficacy, p.Modified.Efficacy, 1e-9)
			assert.InDelta(t, tt.teamwork, p.Modified.Teamwork, 1e-9)
			assert.InDelta(t, tt.disruption, p.Modified.Disruption, 1e-9)
			assert.InDelta(t, tt.slip, p.Modified.Slip, 1e-9)
		})
	}
}

func TestWeekday_ScalesWithIndex(t *testing.T) {
	// GIVEN: The same RNG draw on every day of one week
	// WHEN: Applying the weekday effect
	// THEN: Monday (0) and the weekend leave efficacy alone; Tue..Fri rise in order

	days := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07"}
	levels := make([]float64, len(days))
	for i, d := range days {
		s := engineState(t, 0)
		p := neutralPerson()
		NewModifierEngine(s).applyWeekday(p, date(t, d))
		levels[i] = p.Modified.Efficacy
	}

	assert.Equal(t, 1.0, levels[0])
	for i := 1; i < 5; i++ {
		assert.Greater(t, levels[i], levels[i-1], days[i])
	}
	assert.LessOrEqual(t, levels[4], 1+engineState(t, 0).Cfg.Bonuses.Weekday)
	assert.Equal(t, 1.0, levels[5])
	assert.Equal(t, 1.0, levels[6])
}

func TestSeason_PeaksMidYear(t *testing.T) {
	// GIVEN: Efficacy 1
	// WHEN: Applying the season penalty at new year and mid-year
	// THEN: The penalty is near zero in January and near its maximum in July

	s := engineState(t, 0)
	m := NewModifierEngine(s)
	full := s.Cfg.Bonuses.Season * s.Cfg.Strengths.Season

	jan := neutralPerson()
	m.applySeason(jan, date(t, "2024-01-01"))
	jul := neutralPerson()
	m.applySeason(jul, date(t, "2024-07-01"))

	assert.InDelta(t, 1.0, jan.Modified.Efficacy, full*0.01)
	assert.InDelta(t, 1-full, jul.Modified.Efficacy, full*0.01)
	assert.Less(t, jul.Modified.Efficacy, jan.Modified.Efficacy)
}

func TestApply_ResetsBeforeRecompute(t *testing.T) {
	// GIVEN: An active person on a mid-month Monday
	// WHEN: Resetting and applying modifiers twice
	// THEN: The second pass starts from base, so results do not compound

	s := engineState(t, 21) // 2024-01-22, Monday
	p := neutralPerson()
	p.Base = p.Modified
	s.Registry.Add(p)
	m := NewModifierEngine(s)

	m.Reset()
	m.Apply()
	first := p.Modified

	m.Reset()
	m.Apply()
	assert.InDelta(t, first.Efficacy, p.Modified.Efficacy, 1e-9)
	assert.Equal(t, first.Teamwork, p.Modified.Teamwork)
}
