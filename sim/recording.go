package sim

import (
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// RECORDING ENGINE - What the supervisor writes down
// =============================================================================

// RecordingEngine fills the recorded half of today's rows.
//
// Attendance is always copied. Efficacy is copied exactly with an OEE
// system, otherwise estimated within ±RecordedEfficacyVariance and rounded
// to 0.1. Good and poor behaviors are recorded (TP, with a note) only when
// the supervisor's modified recording accuracy beats a roll; otherwise the
// row is an FN with no record. Supervisors never invent behaviors, so there
// are no false positives. Rows about the Director stay unrecorded.
type RecordingEngine struct {
	s *State
}

func NewRecordingEngine(s *State) *RecordingEngine {
	return &RecordingEngine{s: s}
}

// Run records the rows in [start, end).
func (r *RecordingEngine) Run(start, end int) {
	day := r.s.Clock.DayIndex()
	for i := start; i < end; i++ {
		row := r.s.Ledger.Row(i)
		if row.Behavior == nil || row.ConfMat != ledger.ConfMatNone {
			continue
		}
		subject, ok := r.s.Registry.Get(row.Subject.ID)
		if !ok {
			continue
		}
		sup, ok := r.s.Registry.SupervisorOf(subject)
		if !ok {
			continue
		}
		rec, cm := r.record(subject, sup, row.Behavior, day)
		r.s.Ledger.SetRecord(i, rec, cm)
	}
}

func (r *RecordingEngine) record(subject, sup *personnel.Person, b *ledger.Behavior, day int) (*ledger.Record, ledger.ConfMat) {
	switch b.Type {
	case ledger.TypeAttendance:
		return ledger.RecordOf(b), ledger.ConfMatTP

	case ledger.TypeEfficacy:
		rec := ledger.RecordOf(b)
		if !r.s.Cfg.OEESystemInUse && b.Efficacy != nil {
			v := r.s.Cfg.Rolls.RecordedEfficacyVariance
			est := generic.Round(*b.Efficacy*(1+r.s.RNG.Uniform(-v, v)), 1)
			rec.Efficacy = &est
		}
		if rec.Efficacy != nil {
			subject.History.RecordedEfficacy.Set(day, *rec.Efficacy)
		}
		return rec, ledger.ConfMatTP

	case ledger.TypeGood, ledger.TypePoor:
		noticed := sup.Modified.RecordingAccurately >= r.s.RNG.Uniform(0, r.s.Cfg.Rolls.RecordingDefenseMax)
		if !noticed {
			if b.Type == ledger.TypeGood {
				subject.History.Add(personnel.MetricGoodFN, day)
			}
			return nil, ledger.ConfMatFN
		}
		rec := ledger.RecordOf(b)
		if note, ok := BuildNote(r.s.RNG, b.Comptype, subject.FullName()); ok {
			rec.Note = note
		}
		if b.Type == ledger.TypeGood {
			subject.History.Add(personnel.MetricGoodTP, day)
		} else if m, ok := recordedMetric[b.Comptype]; ok {
			subject.History.Add(m, day)
		}
		return rec, ledger.ConfMatTP
	}
	return nil, ledger.ConfMatNone
}

var recordedMetric = map[ledger.Comptype]personnel.Metric{
	ledger.Lapse:      personnel.MetricRecordedLapse,
	ledger.Slip:       personnel.MetricRecordedSlip,
	ledger.Disruption: personnel.MetricRecordedDisruption,
	ledger.Sabotage:   personnel.MetricRecordedSabotage,
}
