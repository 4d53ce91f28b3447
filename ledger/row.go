/*
Package ledger holds the event ledger: one row per actual behavior,
recorded behavior, separation or onboarding.

PURPOSE:
  The ledger is the primary output of a run. Each row carries two halves
  side by side: what the subject actually did (Behavior) and what the
  supervisor wrote down (Record). The gap between them is what analysts
  study.

CRITICAL INVARIANTS:
  1. APPEND-ONLY ORDER: rows are appended in day order, one batch at a
     time, and Seq increases monotonically
  2. RECORD FILL: the only in-place edit is the recording engine filling
     Record/ConfMat (and finalization filling MDay)
  3. NON-EMPTY: every row has a Behavior, a Record, or ConfMat == FN
  4. RECORD-ONLY ROWS: Termination and Onboarding rows have no Behavior

VOCABULARY:
  | Type       | Comptype                         | Nature      |
  |------------|----------------------------------|-------------|
  | Attendance | Presence, Absence                | Attendance  |
  | Efficacy   | Efficacy                         | Efficacy    |
  | Good       | Idea, Feat, Teamwork, Sacrifice  | Good        |
  | Poor       | Lapse, Slip, Disruption, Sabotage| Poor        |
  | Separation | Resignation, Termination         | rule reason |
  | Onboarding | Onboarding                       | Onboarding  |

SEE ALSO:
  - ledger.go: The in-memory ledger with day batches
  - sim/recording.go: Fills Record and ConfMat
  - analytics/mday.go: Fills MDay
*/
package ledger

import (
	"time"

	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// VOCABULARY
// =============================================================================

// Type groups comptypes.
type Type string

const (
	TypeAttendance Type = "Attendance"
	TypeEfficacy   Type = "Efficacy"
	TypeGood       Type = "Good"
	TypePoor       Type = "Poor"
	TypeSeparation Type = "Separation"
	TypeOnboarding Type = "Onboarding"
)

// Comptype is the specific kind of event.
type Comptype string

const (
	Presence    Comptype = "Presence"
	Absence     Comptype = "Absence"
	Efficacy    Comptype = "Efficacy"
	Idea        Comptype = "Idea"
	Feat        Comptype = "Feat"
	Teamwork    Comptype = "Teamwork"
	Sacrifice   Comptype = "Sacrifice"
	Lapse       Comptype = "Lapse"
	Slip        Comptype = "Slip"
	Disruption  Comptype = "Disruption"
	Sabotage    Comptype = "Sabotage"
	Resignation Comptype = "Resignation"
	Termination Comptype = "Termination"
	Onboarding  Comptype = "Onboarding"
)

// GoodComptypes and PoorComptypes in roll order.
var (
	GoodComptypes = []Comptype{Idea, Feat, Teamwork, Sacrifice}
	PoorComptypes = []Comptype{Lapse, Slip, Disruption, Sabotage}
)

// Type returns the comptype's group.
func (c Comptype) Type() Type {
	switch c {
	case Presence, Absence:
		return TypeAttendance
	case Efficacy:
		return TypeEfficacy
	case Idea, Feat, Teamwork, Sacrifice:
		return TypeGood
	case Lapse, Slip, Disruption, Sabotage:
		return TypePoor
	case Resignation, Termination:
		return TypeSeparation
	case Onboarding:
		return TypeOnboarding
	}
	return ""
}

// Nature returns the default nature. Separation rows carry the rule reason instead.
func (c Comptype) Nature() string {
	return string(c.Type())
}

// IsDiscrete reports whether the comptype is one of the eight rolled behaviors.
func (c Comptype) IsDiscrete() bool {
	t := c.Type()
	return t == TypeGood || t == TypePoor
}

// ConfMat is the recording outcome of a row.
type ConfMat string

const (
	ConfMatNone ConfMat = ""
	ConfMatTP   ConfMat = "TP"
	ConfMatFN   ConfMat = "FN"
)

// =============================================================================
// ROW
// =============================================================================

// Snapshot freezes a person's attributes at the moment of an event.
type Snapshot struct {
	ID        personnel.ID        `json:"id"`
	Name      string              `json:"name"`
	Sex       personnel.Sex       `json:"sex"`
	Age       int                 `json:"age"`
	Role      string              `json:"role"`
	Shift     string              `json:"shift"`
	Team      string              `json:"team,omitempty"`
	Sphere    string              `json:"sphere"`
	Workstyle personnel.Workstyle `json:"workstyle"`
}

// SnapshotOf copies the current attributes of p.
func SnapshotOf(p *personnel.Person) Snapshot {
	return Snapshot{
		ID:        p.ID,
		Name:      p.FullName(),
		Sex:       p.Sex,
		Age:       p.Age,
		Role:      p.Role.String(),
		Shift:     p.Shift.String(),
		Team:      p.Team.String(),
		Sphere:    p.Sphere.String(),
		Workstyle: p.Workstyle,
	}
}

// Behavior is what actually happened.
type Behavior struct {
	Type     Type     `json:"type"`
	Comptype Comptype `json:"comptype"`
	Nature   string   `json:"nature"`
	Efficacy *float64 `json:"efficacy,omitempty"`
}

// Record is what the supervisor wrote down.
type Record struct {
	Type     Type     `json:"type"`
	Comptype Comptype `json:"comptype"`
	Nature   string   `json:"nature"`
	Efficacy *float64 `json:"efficacy,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// NewBehavior builds a behavior with the comptype's default type and nature.
func NewBehavior(c Comptype) *Behavior {
	return &Behavior{Type: c.Type(), Comptype: c, Nature: c.Nature()}
}

// RecordOf copies a behavior into a record.
func RecordOf(b *Behavior) *Record {
	r := &Record{Type: b.Type, Comptype: b.Comptype, Nature: b.Nature}
	if b.Efficacy != nil {
		v := *b.Efficacy
		r.Efficacy = &v
	}
	return r
}

// MDayOffsets is the number of days on each side of the event in MDay.
const MDayOffsets = 4

// Row is one ledger entry.
type Row struct {
	Seq       int       `json:"seq"`
	Date      string    `json:"date"`
	// Timestamp falls inside the subject's shift. Night-shift rows can land
	// on the morning after Date; Date is the day the shift started.
	Timestamp time.Time `json:"timestamp"`
	DayIndex  int       `json:"day_index"`

	Subject    Snapshot  `json:"subject"`
	Supervisor *Snapshot `json:"supervisor,omitempty"`

	Behavior *Behavior `json:"behavior,omitempty"`
	Record   *Record   `json:"record,omitempty"`
	ConfMat  ConfMat   `json:"conf_mat,omitempty"`

	// MDay holds the subject's actual efficacy on D-4..D+4, filled at
	// finalization. Index MDayOffsets is the event day.
	MDay [2*MDayOffsets + 1]*float64 `json:"mday"`
}

// Comptype returns the behavior comptype, or the record comptype for
// record-only rows.
func (r *Row) Comptype() Comptype {
	if r.Behavior != nil {
		return r.Behavior.Comptype
	}
	if r.Record != nil {
		return r.Record.Comptype
	}
	return ""
}

// Valid reports whether the row satisfies the non-empty invariant.
func (r *Row) Valid() bool {
	return r.Behavior != nil || r.Record != nil || r.ConfMat == ConfMatFN
}
