package sim

import (
	"time"

	"github.com/warp/workforce-sim/analytics"
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// FINALIZATION
// =============================================================================

// Result is everything a finished run produces.
type Result struct {
	Rows      []ledger.Row              `json:"rows"`
	Persons   []personnel.Record        `json:"persons"`
	Summaries []analytics.PersonSummary `json:"summaries"`
	Accuracy  analytics.Accuracy        `json:"accuracy"`

	Days        int           `json:"days"`
	PrimingDays int           `json:"priming_days"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Finalize fills the D-4..D+4 columns, drops the priming period and
// computes the summary tables. It may run once.
func (sim *Simulator) Finalize() (*Result, error) {
	if sim.finalized {
		return sim.result, generic.ErrAlreadyFinalized
	}
	s := sim.State

	// MDay before trimming: the first analysis days look back into priming.
	analytics.MDaySeries(s.Ledger.Rows())
	priming := s.Clock.PrimingDays()
	trimmed := s.Ledger.Trim(priming)

	rows := s.Ledger.Rows()
	persons := s.Registry.Records()
	res := &Result{
		Rows:        rows,
		Persons:     persons,
		Summaries:   analytics.Summarize(rows, persons),
		Accuracy:    analytics.RecordAccuracy(rows),
		Days:        s.Clock.DayIndex(),
		PrimingDays: priming,
		Elapsed:     s.Clock.Elapsed(),
	}
	sim.finalized = true
	sim.result = res

	s.log.Info("simulation finished",
		"days", res.Days,
		"rows", len(rows),
		"trimmed_rows", trimmed,
		"persons", len(persons),
		"resignations", res.Accuracy.Resignations,
		"terminations", res.Accuracy.Terminations,
		"elapsed", res.Elapsed,
	)
	return res, nil
}
