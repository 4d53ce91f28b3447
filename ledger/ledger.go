package ledger

import (
	"sort"

	"github.com/warp/workforce-sim/personnel"
)

// =============================================================================
// LEDGER - In-memory, day-batched event log
// =============================================================================

// Ledger accumulates rows. Engines Stage rows while they work through a
// day and the day loop merges them with AppendBatch, so the backing slice
// grows once per batch instead of once per row.
type Ledger struct {
	rows    []Row
	pending []Row
	nextSeq int
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{nextSeq: 1}
}

// FromRows restores a ledger from persisted rows.
func FromRows(rows []Row) *Ledger {
	l := &Ledger{rows: rows, nextSeq: 1}
	if n := len(rows); n > 0 {
		l.nextSeq = rows[n-1].Seq + 1
	}
	return l
}

// Stage buffers a row for the next AppendBatch.
func (l *Ledger) Stage(r Row) {
	l.pending = append(l.pending, r)
}

// Pending returns the number of staged rows.
func (l *Ledger) Pending() int { return len(l.pending) }

// AppendBatch merges the staged rows, assigns sequence numbers and returns
// the index range [start, end) they now occupy.
func (l *Ledger) AppendBatch() (start, end int) {
	start = len(l.rows)
	for i := range l.pending {
		l.pending[i].Seq = l.nextSeq
		l.nextSeq++
	}
	l.rows = append(l.rows, l.pending...)
	l.pending = l.pending[:0]
	return start, len(l.rows)
}

// Len returns the number of appended rows.
func (l *Ledger) Len() int { return len(l.rows) }

// Rows returns the appended rows. The slice is shared: callers that fill
// derived columns (MDay) write through it.
func (l *Ledger) Rows() []Row { return l.rows }

// Row returns a pointer to the i-th row.
func (l *Ledger) Row(i int) *Row { return &l.rows[i] }

// DayRange returns the index range [start, end) of a day's rows.
func (l *Ledger) DayRange(day int) (start, end int) {
	start = sort.Search(len(l.rows), func(i int) bool { return l.rows[i].DayIndex >= day })
	end = sort.Search(len(l.rows), func(i int) bool { return l.rows[i].DayIndex > day })
	return start, end
}

// SetRecord fills the recorded half of a row in place.
func (l *Ledger) SetRecord(i int, rec *Record, cm ConfMat) {
	l.rows[i].Record = rec
	l.rows[i].ConfMat = cm
}

// Trim drops every row before day and returns how many were removed.
func (l *Ledger) Trim(day int) int {
	start, _ := l.DayRange(day)
	if start == 0 {
		return 0
	}
	kept := make([]Row, len(l.rows)-start)
	copy(kept, l.rows[start:])
	l.rows = kept
	return start
}

// =============================================================================
// QUERIES
// =============================================================================

// Filter selects rows. Zero fields match everything.
type Filter struct {
	SubjectID personnel.ID
	Comptype  Comptype
	FromDay   *int
	ToDay     *int
}

// Matches reports whether a row passes the filter.
func (f Filter) Matches(r *Row) bool {
	if f.SubjectID != 0 && r.Subject.ID != f.SubjectID {
		return false
	}
	if f.Comptype != "" && r.Comptype() != f.Comptype {
		return false
	}
	if f.FromDay != nil && r.DayIndex < *f.FromDay {
		return false
	}
	if f.ToDay != nil && r.DayIndex > *f.ToDay {
		return false
	}
	return true
}

// Select returns a copy of the rows matching the filter.
func Select(rows []Row, f Filter) []Row {
	var out []Row
	for i := range rows {
		if f.Matches(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// Query applies a filter to the ledger.
func (l *Ledger) Query(f Filter) []Row {
	return Select(l.rows, f)
}

// BySubject returns every row about one person.
func (l *Ledger) BySubject(id personnel.ID) []Row {
	return l.Query(Filter{SubjectID: id})
}
