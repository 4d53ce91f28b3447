package generic

// =============================================================================
// DAY SERIES - Dense per-day values indexed by simulation day
// =============================================================================

// CountSeries holds one integer per simulation day. Out-of-range reads are
// zero: days before a person was hired or before the run started simply have
// no events.
type CountSeries []int

// NewCountSeries allocates a series covering days [0, days).
func NewCountSeries(days int) CountSeries { return make(CountSeries, days) }

// Add increments the count for a day. Out-of-range days are ignored.
func (s CountSeries) Add(day, n int) {
	if day >= 0 && day < len(s) {
		s[day] += n
	}
}

// Set overwrites the count for a day.
func (s CountSeries) Set(day, n int) {
	if day >= 0 && day < len(s) {
		s[day] = n
	}
}

// At returns the count for a day, zero when out of range.
func (s CountSeries) At(day int) int {
	if day < 0 || day >= len(s) {
		return 0
	}
	return s[day]
}

// Trailing sums the window days strictly before today: [today-window, today-1].
func (s CountSeries) Trailing(today, window int) int {
	return s.Sum(today-window, today-1)
}

// Sum adds counts over the inclusive range [from, to], clamped to the series.
func (s CountSeries) Sum(from, to int) int {
	if from < 0 {
		from = 0
	}
	if to >= len(s) {
		to = len(s) - 1
	}
	total := 0
	for d := from; d <= to; d++ {
		total += s[d]
	}
	return total
}

// ValueSeries holds an optional float per simulation day.
type ValueSeries struct {
	values []float64
	set    []bool
}

// NewValueSeries allocates a series covering days [0, days).
func NewValueSeries(days int) ValueSeries {
	return ValueSeries{values: make([]float64, days), set: make([]bool, days)}
}

// Set stores a value, overwriting any earlier value for the day.
func (s ValueSeries) Set(day int, v float64) {
	if day >= 0 && day < len(s.values) {
		s.values[day] = v
		s.set[day] = true
	}
}

// At returns the value for a day.
func (s ValueSeries) At(day int) Optional {
	if day < 0 || day >= len(s.values) || !s.set[day] {
		return None()
	}
	return Some(s.values[day])
}

// Values collects the defined values over the inclusive range [from, to].
func (s ValueSeries) Values(from, to int) []float64 {
	if from < 0 {
		from = 0
	}
	if to >= len(s.values) {
		to = len(s.values) - 1
	}
	var out []float64
	for d := from; d <= to; d++ {
		if s.set[d] {
			out = append(out, s.values[d])
		}
	}
	return out
}

// Len returns the number of days covered.
func (s ValueSeries) Len() int { return len(s.values) }
