package personnel

import (
	"github.com/warp/workforce-sim/generic"
)

// =============================================================================
// HISTORY - Per-person lookback cache
// =============================================================================

// Metric identifies one tracked per-day count.
type Metric int

const (
	MetricPresence Metric = iota
	MetricAbsence
	MetricIdea
	MetricLapse
	MetricFeat
	MetricSlip
	MetricTeamwork
	MetricDisruption
	MetricSacrifice
	MetricSabotage

	// Recorded poor behaviors, as the supervisor knows them.
	MetricRecordedLapse
	MetricRecordedSlip
	MetricRecordedDisruption
	MetricRecordedSabotage

	// Recording outcome of the person's good behaviors.
	MetricGoodTP
	MetricGoodFN

	numMetrics
)

// History is the dense struct-of-arrays cache queried by rolling-window
// rules, so they never scan the ledger. Every series covers the whole run.
type History struct {
	counts           [numMetrics]generic.CountSeries
	Efficacy         generic.ValueSeries
	RecordedEfficacy generic.ValueSeries
}

// NewHistory allocates series for days [0, days).
func NewHistory(days int) *History {
	h := &History{
		Efficacy:         generic.NewValueSeries(days),
		RecordedEfficacy: generic.NewValueSeries(days),
	}
	for i := range h.counts {
		h.counts[i] = generic.NewCountSeries(days)
	}
	return h
}

// Add increments a metric on a day.
func (h *History) Add(m Metric, day int) { h.counts[m].Add(day, 1) }

// Count returns the series for a metric.
func (h *History) Count(m Metric) generic.CountSeries { return h.counts[m] }

// Trailing sums a metric over the window days before today.
func (h *History) Trailing(m Metric, today, window int) int {
	return h.counts[m].Trailing(today, window)
}

// CareerToDate sums a metric over [0, today].
func (h *History) CareerToDate(m Metric, today int) int {
	return h.counts[m].Sum(0, today)
}

// MeanEfficacy returns the mean actual efficacy over [from, to].
func (h *History) MeanEfficacy(from, to int) generic.Optional {
	return generic.Mean(h.Efficacy.Values(from, to))
}

// MeanRecordedEfficacy returns the mean recorded efficacy over [from, to].
func (h *History) MeanRecordedEfficacy(from, to int) generic.Optional {
	return generic.Mean(h.RecordedEfficacy.Values(from, to))
}
