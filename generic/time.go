package generic

import (
	"math"
	"time"
)

// =============================================================================
// TIME POINT - Day-granular simulation date
// =============================================================================

// TimePoint is a simulation date. The engine steps one calendar day at a time,
// so most comparisons happen at day granularity; a full timestamp is only
// carried by ledger rows.
type TimePoint struct {
	Time        time.Time
	Granularity Granularity
}

type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityHour
	GranularityMinute
)

// DateLayout is the layout used for dates in config files, CSV and JSON.
const DateLayout = "2006-01-02"

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Granularity: GranularityDay}
}

// ParseDate parses a YYYY-MM-DD string into a day-granular TimePoint.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return TimePoint{}, err
	}
	return TimePoint{Time: t.UTC(), Granularity: GranularityDay}, nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return tp.Before(other) || tp.Equal(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return tp.After(other) || tp.Equal(other) }

func (tp TimePoint) normalize() time.Time {
	switch tp.Granularity {
	case GranularityDay:
		return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
	case GranularityHour:
		return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), tp.Time.Hour(), 0, 0, 0, time.UTC)
	default:
		return tp.Time
	}
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, 0, n), Granularity: tp.Granularity} }

// At returns a minute-granular TimePoint hour:minute past the day's midnight.
// Offsets past 24h roll into the next day.
func (tp TimePoint) At(hour, minute int) TimePoint {
	d := tp.normalize()
	return TimePoint{Time: d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), Granularity: GranularityMinute}
}

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) YearDay() int          { return tp.Time.YearDay() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }
func (tp TimePoint) IsSaturday() bool      { return tp.Weekday() == time.Saturday }
func (tp TimePoint) IsSunday() bool        { return tp.Weekday() == time.Sunday }
func (tp TimePoint) IsWeekend() bool       { return tp.IsSaturday() || tp.IsSunday() }
func (tp TimePoint) IsWorkday() bool       { return !tp.IsWeekend() }

// WeekdayIndex returns Monday=0 ... Friday=4, Saturday=5, Sunday=6.
func (tp TimePoint) WeekdayIndex() int {
	return (int(tp.Weekday()) + 6) % 7
}

// SeasonFactor is 0 at the turn of the year and 1 at mid-year.
func (tp TimePoint) SeasonFactor() float64 {
	return 1 - math.Abs(float64(tp.YearDay())-182.5)/182.5
}

func (tp TimePoint) String() string {
	switch tp.Granularity {
	case GranularityDay:
		return tp.Time.Format(DateLayout)
	case GranularityHour:
		return tp.Time.Format("2006-01-02 15:00")
	default:
		return tp.Time.Format(time.RFC3339)
	}
}

// Date strips any time-of-day component.
func (tp TimePoint) Date() TimePoint {
	return TimePoint{Time: tp.normalize(), Granularity: GranularityDay}
}

// =============================================================================
// SIMULATION CLOCK - Day cursor relative to the simulation start
// =============================================================================

// Clock is the simulation's date cursor. Day indexes count from the
// simulation start (day 0); the analysis start marks the end of the priming
// period.
type Clock struct {
	Start         TimePoint
	AnalysisStart TimePoint
	Days          int // total days to simulate, priming included

	today   int
	started time.Time
}

// NewClock creates a clock covering priming plus analysisDays.
func NewClock(start, analysisStart TimePoint, analysisDays int) *Clock {
	priming := DaysBetween(start, analysisStart)
	if priming < 0 {
		priming = 0
	}
	return &Clock{
		Start:         start.Date(),
		AnalysisStart: analysisStart.Date(),
		Days:          priming + analysisDays,
	}
}

// Today returns the current simulation date.
func (c *Clock) Today() TimePoint { return c.Start.AddDays(c.today) }

// DayIndex returns the current day index (0-based).
func (c *Clock) DayIndex() int { return c.today }

// DateOf returns the date for a day index.
func (c *Clock) DateOf(day int) TimePoint { return c.Start.AddDays(day) }

// IndexOf returns the day index for a date.
func (c *Clock) IndexOf(tp TimePoint) int { return DaysBetween(c.Start, tp) }

// PrimingDays is the number of days discarded after the run.
func (c *Clock) PrimingDays() int { return DaysBetween(c.Start, c.AnalysisStart) }

// Done reports whether every configured day has been simulated.
func (c *Clock) Done() bool { return c.today >= c.Days }

// Advance moves the cursor to the next day.
func (c *Clock) Advance() { c.today++ }

// StartTimer marks the beginning of wall-clock elapsed tracking.
func (c *Clock) StartTimer() { c.started = time.Now() }

// Elapsed returns the wall-clock time since StartTimer.
func (c *Clock) Elapsed() time.Duration {
	if c.started.IsZero() {
		return 0
	}
	return time.Since(c.started)
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func DaysBetween(from, to TimePoint) int {
	return int(math.Round(to.normalize().Sub(from.normalize()).Hours() / 24))
}
