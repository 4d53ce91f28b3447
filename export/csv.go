/*
Package export writes run data as CSV for spreadsheet and notebook analysis.

PURPOSE:
  Analysts work on flat tables. The ledger's nested rows (subject snapshot,
  supervisor snapshot, behavior, record, MDay window) are flattened into one
  line per row with short column names.

LEDGER COLUMNS:
  seq, date, timestamp, day
  sub_id, sub_name, sub_sex, sub_age, sub_role, sub_shift, sub_team,
  sub_sphere, sub_ws
  sup_id, sup_name, sup_role                (empty for the director)
  beh_type, beh_comptype, beh_nature, beh_eff
  rec_type, rec_comptype, rec_nature, rec_eff, rec_note
  conf_mat
  eff_m4 .. eff_m1, eff_d0, eff_p1 .. eff_p4  (actual efficacy D-4..D+4)

Missing values are written as empty cells, never as 0.

SEE ALSO:
  - ledger/row.go: Row layout
  - analytics/summary.go: Per-person table written by WritePersonsCSV
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce-sim/analytics"
	"github.com/warp/workforce-sim/ledger"
)

// LedgerHeader is the column list of WriteLedgerCSV.
var LedgerHeader = []string{
	"seq", "date", "timestamp", "day",
	"sub_id", "sub_name", "sub_sex", "sub_age", "sub_role", "sub_shift", "sub_team", "sub_sphere", "sub_ws",
	"sup_id", "sup_name", "sup_role",
	"beh_type", "beh_comptype", "beh_nature", "beh_eff",
	"rec_type", "rec_comptype", "rec_nature", "rec_eff", "rec_note",
	"conf_mat",
	"eff_m4", "eff_m3", "eff_m2", "eff_m1", "eff_d0", "eff_p1", "eff_p2", "eff_p3", "eff_p4",
}

// PersonsHeader is the column list of WritePersonsCSV.
var PersonsHeader = []string{
	"sub_id", "sub_name", "sub_sex", "sub_age", "sub_role", "sub_shift", "sub_team", "sub_ws",
	"hired_day", "separated", "separated_day", "days_attended",
	"eff_min", "eff_max", "eff_mean", "eff_sd", "rec_eff_mean",
	"presences", "absences", "good", "poor", "rec_good", "rec_poor", "tp", "fn",
}

// =============================================================================
// LEDGER
// =============================================================================

// WriteLedgerCSV writes one line per ledger row.
func WriteLedgerCSV(w io.Writer, rows []ledger.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LedgerHeader); err != nil {
		return fmt.Errorf("writing ledger header: %w", err)
	}
	line := make([]string, 0, len(LedgerHeader))
	for i := range rows {
		line = ledgerLine(line[:0], &rows[i])
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing ledger row %d: %w", rows[i].Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func ledgerLine(line []string, r *ledger.Row) []string {
	sub := r.Subject
	line = append(line,
		strconv.Itoa(r.Seq), r.Date, r.Timestamp.Format("2006-01-02 15:04"), strconv.Itoa(r.DayIndex),
		strconv.Itoa(int(sub.ID)), sub.Name, string(sub.Sex), strconv.Itoa(sub.Age),
		sub.Role, sub.Shift, sub.Team, sub.Sphere, string(sub.Workstyle),
	)

	if sup := r.Supervisor; sup != nil {
		line = append(line, strconv.Itoa(int(sup.ID)), sup.Name, sup.Role)
	} else {
		line = append(line, "", "", "")
	}

	if b := r.Behavior; b != nil {
		line = append(line, string(b.Type), string(b.Comptype), b.Nature, floatPtr(b.Efficacy))
	} else {
		line = append(line, "", "", "", "")
	}

	if rec := r.Record; rec != nil {
		line = append(line, string(rec.Type), string(rec.Comptype), rec.Nature, floatPtr(rec.Efficacy), rec.Note)
	} else {
		line = append(line, "", "", "", "", "")
	}

	line = append(line, string(r.ConfMat))
	for _, v := range r.MDay {
		line = append(line, floatPtr(v))
	}
	return line
}

// =============================================================================
// PERSONS
// =============================================================================

// WritePersonsCSV writes one line per person summary.
func WritePersonsCSV(w io.Writer, summaries []analytics.PersonSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PersonsHeader); err != nil {
		return fmt.Errorf("writing persons header: %w", err)
	}
	for _, s := range summaries {
		separatedDay := ""
		if s.Separated {
			separatedDay = strconv.Itoa(s.SeparatedDay)
		}
		line := []string{
			strconv.Itoa(int(s.ID)), s.Name, string(s.Sex), strconv.Itoa(s.Age),
			s.Role, s.Shift, s.Team, string(s.Workstyle),
			strconv.Itoa(s.HiredDay), strconv.FormatBool(s.Separated), separatedDay, strconv.Itoa(s.DaysAttended),
			floatPtr(s.EfficacyMin), floatPtr(s.EfficacyMax), floatPtr(s.EfficacyMean), floatPtr(s.EfficacySD),
			floatPtr(s.RecordedEfficacyMean),
			strconv.Itoa(s.Presences), strconv.Itoa(s.Absences),
			strconv.Itoa(s.Good), strconv.Itoa(s.Poor),
			strconv.Itoa(s.RecordedGood), strconv.Itoa(s.RecordedPoor),
			strconv.Itoa(s.TP), strconv.Itoa(s.FN),
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing person %d: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func floatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return decimal.NewFromFloat(*v).String()
}
