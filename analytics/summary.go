/*
Package analytics derives tables from a finished ledger.

PURPOSE:
  Everything here is a pure function of ledger rows (and person records),
  so the same code serves a fresh run and a dataset restored from disk.

  - Summarize: one row per person with efficacy statistics and behavior,
    record and confusion-matrix counts
  - RecordAccuracy: org-level recall per comptype and efficacy estimation error
  - MDaySeries: fills each row's D-4..D+4 efficacy columns

  Statistics over empty series are undefined and come out as nil, never 0.

SEE ALSO:
  - ledger/row.go: Row, Comptype vocabulary
  - sim/finalize.go: Calls these after the run
*/
package analytics

import (
	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// PERSON SUMMARY
// =============================================================================

// PersonSummary is one row of the person summary table.
type PersonSummary struct {
	ID           personnel.ID        `json:"id"`
	Name         string              `json:"name"`
	Sex          personnel.Sex       `json:"sex"`
	Age          int                 `json:"age"`
	Workstyle    personnel.Workstyle `json:"workstyle"`
	Role         string              `json:"role"`
	Shift        string              `json:"shift"`
	Team         string              `json:"team"`
	Sphere       string              `json:"sphere"`
	HiredDay     int                 `json:"hired_day"`
	Separated    bool                `json:"separated"`
	SeparatedDay int                 `json:"separated_day,omitempty"`
	DaysAttended int                 `json:"days_attended"`

	EfficacyMin  *float64 `json:"efficacy_min"`
	EfficacyMax  *float64 `json:"efficacy_max"`
	EfficacyMean *float64 `json:"efficacy_mean"`
	EfficacySD   *float64 `json:"efficacy_sd"`

	RecordedEfficacyMean *float64 `json:"recorded_efficacy_mean"`

	Presences    int `json:"presences"`
	Absences     int `json:"absences"`
	Good         int `json:"good"`
	Poor         int `json:"poor"`
	RecordedGood int `json:"recorded_good"`
	RecordedPoor int `json:"recorded_poor"`
	TP           int `json:"tp"`
	FN           int `json:"fn"`

	// Counts holds the actual count per comptype.
	Counts map[ledger.Comptype]int `json:"counts"`
}

// summaryPlaces is the rounding applied to summary statistics.
const summaryPlaces = 3

func rounded(o generic.Optional) *float64 {
	if !o.Valid {
		return nil
	}
	return generic.Some(generic.Round(o.Value, summaryPlaces)).Ptr()
}

// Summarize builds one summary per person, in the order of persons.
func Summarize(rows []ledger.Row, persons []personnel.Record) []PersonSummary {
	type acc struct {
		sum       *PersonSummary
		eff, reff []float64
	}
	byID := make(map[personnel.ID]*acc, len(persons))
	out := make([]PersonSummary, len(persons))
	for i, p := range persons {
		out[i] = PersonSummary{
			ID:           p.ID,
			Name:         p.FirstName + " " + p.LastName,
			Sex:          p.Sex,
			Age:          p.Age,
			Workstyle:    p.Workstyle,
			Role:         p.Role,
			Shift:        p.Shift,
			Team:         p.Team,
			Sphere:       p.Sphere,
			HiredDay:     p.HiredDay,
			Separated:    p.Separated,
			SeparatedDay: p.SeparatedDay,
			DaysAttended: p.DaysAttended,
			Counts:       make(map[ledger.Comptype]int),
		}
		byID[p.ID] = &acc{sum: &out[i]}
	}

	for i := range rows {
		r := &rows[i]
		a, ok := byID[r.Subject.ID]
		if !ok {
			continue
		}
		s := a.sum
		if r.Behavior != nil {
			s.Counts[r.Behavior.Comptype]++
			switch r.Behavior.Type {
			case ledger.TypeAttendance:
				if r.Behavior.Comptype == ledger.Presence {
					s.Presences++
				} else {
					s.Absences++
				}
			case ledger.TypeEfficacy:
				if r.Behavior.Efficacy != nil {
					a.eff = append(a.eff, *r.Behavior.Efficacy)
				}
			case ledger.TypeGood:
				s.Good++
			case ledger.TypePoor:
				s.Poor++
			}
		}
		if r.Record != nil {
			switch r.Record.Type {
			case ledger.TypeEfficacy:
				if r.Record.Efficacy != nil {
					a.reff = append(a.reff, *r.Record.Efficacy)
				}
			case ledger.TypeGood:
				s.RecordedGood++
			case ledger.TypePoor:
				s.RecordedPoor++
			}
		}
		switch r.ConfMat {
		case ledger.ConfMatTP:
			s.TP++
		case ledger.ConfMatFN:
			s.FN++
		}
	}

	for _, p := range persons {
		a := byID[p.ID]
		lo, hi := generic.MinMax(a.eff)
		a.sum.EfficacyMin = rounded(lo)
		a.sum.EfficacyMax = rounded(hi)
		a.sum.EfficacyMean = rounded(generic.Mean(a.eff))
		a.sum.EfficacySD = rounded(generic.StdDev(a.eff))
		a.sum.RecordedEfficacyMean = rounded(generic.Mean(a.reff))
	}
	return out
}
