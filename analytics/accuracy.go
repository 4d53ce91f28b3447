package analytics

import (
	"math"

	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
)

// =============================================================================
// RECORD ACCURACY - How far the record drifts from the truth
// =============================================================================

// ComptypeAccuracy is the confusion-matrix tally for one comptype.
type ComptypeAccuracy struct {
	Comptype ledger.Comptype `json:"comptype"`
	Actual   int             `json:"actual"`
	TP       int             `json:"tp"`
	FN       int             `json:"fn"`
	// Recall is TP / (TP + FN), nil when nothing was observable.
	Recall *float64 `json:"recall"`
}

// Accuracy is the org-level comparison of behaviors and records.
type Accuracy struct {
	Rows         int                `json:"rows"`
	ByComptype   []ComptypeAccuracy `json:"by_comptype"`
	Resignations int                `json:"resignations"`
	Terminations int                `json:"terminations"`

	// EfficacyMAE is the mean absolute difference between actual and
	// recorded efficacy over rows that have both.
	EfficacyMAE     *float64 `json:"efficacy_mae"`
	EfficacySamples int      `json:"efficacy_samples"`
}

// comptypeOrder is the reporting order.
var comptypeOrder = []ledger.Comptype{
	ledger.Presence, ledger.Absence, ledger.Efficacy,
	ledger.Idea, ledger.Feat, ledger.Teamwork, ledger.Sacrifice,
	ledger.Lapse, ledger.Slip, ledger.Disruption, ledger.Sabotage,
}

// RecordAccuracy tallies TP/FN per comptype.
func RecordAccuracy(rows []ledger.Row) Accuracy {
	index := make(map[ledger.Comptype]int, len(comptypeOrder))
	acc := Accuracy{Rows: len(rows), ByComptype: make([]ComptypeAccuracy, len(comptypeOrder))}
	for i, c := range comptypeOrder {
		index[c] = i
		acc.ByComptype[i].Comptype = c
	}

	var errs []float64
	for i := range rows {
		r := &rows[i]
		switch r.Comptype() {
		case ledger.Resignation:
			acc.Resignations++
			continue
		case ledger.Termination:
			acc.Terminations++
			continue
		}
		if r.Behavior == nil {
			continue
		}
		idx, ok := index[r.Behavior.Comptype]
		if !ok {
			continue
		}
		ca := &acc.ByComptype[idx]
		ca.Actual++
		switch r.ConfMat {
		case ledger.ConfMatTP:
			ca.TP++
		case ledger.ConfMatFN:
			ca.FN++
		}
		if r.Behavior.Efficacy != nil && r.Record != nil && r.Record.Efficacy != nil {
			errs = append(errs, math.Abs(*r.Behavior.Efficacy-*r.Record.Efficacy))
		}
	}

	for i := range acc.ByComptype {
		ca := &acc.ByComptype[i]
		if n := ca.TP + ca.FN; n > 0 {
			ca.Recall = rounded(generic.Some(float64(ca.TP) / float64(n)))
		}
	}
	acc.EfficacyMAE = rounded(generic.Mean(errs))
	acc.EfficacySamples = len(errs)
	return acc
}
