package analytics

import (
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// MDAY - Efficacy around each event
// =============================================================================

type personDay struct {
	id  personnel.ID
	day int
}

// MDaySeries fills MDay on every row with the subject's actual efficacy on
// D-4..D+4. Days without an efficacy row (absent, weekend, not yet hired,
// outside the run) stay nil. Rows are modified in place.
//
// Run it before trimming the priming period so early analysis days can
// still see D-4.
func MDaySeries(rows []ledger.Row) {
	eff := make(map[personDay]float64)
	for i := range rows {
		r := &rows[i]
		if r.Behavior != nil && r.Behavior.Comptype == ledger.Efficacy && r.Behavior.Efficacy != nil {
			eff[personDay{r.Subject.ID, r.DayIndex}] = *r.Behavior.Efficacy
		}
	}

	for i := range rows {
		r := &rows[i]
		for k := -ledger.MDayOffsets; k <= ledger.MDayOffsets; k++ {
			if v, ok := eff[personDay{r.Subject.ID, r.DayIndex + k}]; ok {
				val := v
				r.MDay[k+ledger.MDayOffsets] = &val
			} else {
				r.MDay[k+ledger.MDayOffsets] = nil
			}
		}
	}
}
