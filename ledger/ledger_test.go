package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

func row(day int, subject personnel.ID, c ledger.Comptype) ledger.Row {
	return ledger.Row{
		DayIndex: day,
		Subject:  ledger.Snapshot{ID: subject},
		Behavior: ledger.NewBehavior(c),
	}
}

func stageDay(l *ledger.Ledger, rows ...ledger.Row) (int, int) {
	for _, r := range rows {
		l.Stage(r)
	}
	return l.AppendBatch()
}

func TestLedger_AppendBatch_AssignsSeq(t *testing.T) {
	// GIVEN: Two days of staged rows
	// WHEN: Appending each day as one batch
	// THEN: Seq is monotonic across batches and ranges are contiguous

	l := ledger.New()
	s0, e0 := stageDay(l, row(0, 1, ledger.Presence), row(0, 2, ledger.Absence))
	s1, e1 := stageDay(l, row(1, 1, ledger.Presence), row(1, 1, ledger.Idea), row(1, 2, ledger.Presence))

	assert.Equal(t, 0, s0)
	assert.Equal(t, 2, e0)
	assert.Equal(t, 2, s1)
	assert.Equal(t, 5, e1)
	assert.Equal(t, 0, l.Pending())
	for i, r := range l.Rows() {
		assert.Equal(t, i+1, r.Seq)
	}
}

func TestLedger_DayRange(t *testing.T) {
	l := ledger.New()
	stageDay(l, row(0, 1, ledger.Presence))
	stageDay(l, row(2, 1, ledger.Presence), row(2, 2, ledger.Presence))
	stageDay(l, row(2, 1, ledger.Resignation)) // turnover batch on the same day
	stageDay(l, row(3, 1, ledger.Presence))

	s, e := l.DayRange(2)
	assert.Equal(t, 1, s)
	assert.Equal(t, 4, e)

	s, e = l.DayRange(1)
	assert.Equal(t, s, e)
}

func TestLedger_SetRecord(t *testing.T) {
	l := ledger.New()
	stageDay(l, row(0, 1, ledger.Idea), row(0, 2, ledger.Lapse))

	rec := ledger.RecordOf(l.Row(0).Behavior)
	rec.Note = "noted"
	l.SetRecord(0, rec, ledger.ConfMatTP)
	l.SetRecord(1, nil, ledger.ConfMatFN)

	assert.Equal(t, ledger.ConfMatTP, l.Rows()[0].ConfMat)
	assert.Equal(t, "noted", l.Rows()[0].Record.Note)
	assert.Nil(t, l.Rows()[1].Record)
	assert.True(t, l.Rows()[1].Valid())
}

func TestLedger_Trim(t *testing.T) {
	// GIVEN: Rows on days 0..4
	// WHEN: Trimming before day 3
	// THEN: Only days 3 and 4 remain, Seq preserved

	l := ledger.New()
	for d := 0; d < 5; d++ {
		stageDay(l, row(d, 1, ledger.Presence))
	}
	removed := l.Trim(3)

	assert.Equal(t, 3, removed)
	require.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l.Rows()[0].DayIndex)
	assert.Equal(t, 4, l.Rows()[0].Seq)

	assert.Equal(t, 0, l.Trim(0))
}

func TestLedger_Query(t *testing.T) {
	l := ledger.New()
	stageDay(l, row(0, 1, ledger.Presence), row(0, 1, ledger.Idea), row(0, 2, ledger.Presence))
	stageDay(l, row(1, 1, ledger.Presence), row(1, 2, ledger.Sabotage))

	assert.Len(t, l.BySubject(1), 3)
	assert.Len(t, l.Query(ledger.Filter{Comptype: ledger.Presence}), 3)
	assert.Len(t, l.Query(ledger.Filter{SubjectID: 2, Comptype: ledger.Sabotage}), 1)

	from := 1
	assert.Len(t, l.Query(ledger.Filter{FromDay: &from}), 2)
}

func TestLedger_FromRows(t *testing.T) {
	l := ledger.New()
	stageDay(l, row(0, 1, ledger.Presence), row(0, 2, ledger.Presence))

	restored := ledger.FromRows(l.Rows())
	stageDay(restored, row(1, 1, ledger.Presence))
	assert.Equal(t, 3, restored.Rows()[2].Seq)
}

func TestComptype_Vocabulary(t *testing.T) {
	assert.Equal(t, ledger.TypeAttendance, ledger.Absence.Type())
	assert.Equal(t, ledger.TypeGood, ledger.Sacrifice.Type())
	assert.Equal(t, ledger.TypePoor, ledger.Sabotage.Type())
	assert.Equal(t, ledger.TypeSeparation, ledger.Termination.Type())
	assert.Equal(t, "Onboarding", ledger.Onboarding.Nature())
	assert.True(t, ledger.Slip.IsDiscrete())
	assert.False(t, ledger.Efficacy.IsDiscrete())
}

func TestRow_RecordOnly(t *testing.T) {
	r := ledger.Row{Record: &ledger.Record{Type: ledger.TypeOnboarding, Comptype: ledger.Onboarding}}
	assert.Equal(t, ledger.Onboarding, r.Comptype())
	assert.True(t, r.Valid())
	assert.False(t, (&ledger.Row{}).Valid())
}
