/*
Package generic provides the domain-agnostic primitives of the simulation engine.

PURPOSE:
  Everything in this package is free of workforce concepts. The simulation
  packages (personnel, ledger, sim) build on these primitives for dates,
  randomness, rolling windows and statistics.

KEY CONCEPTS:
  - TimePoint: A simulation date (day granularity, optional time of day)
  - Clock: Day cursor from simulation start, priming period, elapsed time
  - RNG: The single seeded random stream driving a run
  - CountSeries / ValueSeries: Dense per-day history for O(1) lookback
  - Optional: Explicit "no data" result for mean/SD over empty series

DESIGN PRINCIPLES:
  1. Determinism: All randomness flows through one RNG
  2. No exceptions for missing data: lookback reads return zero, statistics
     return an invalid Optional
  3. Precision: Rounding goes through decimal.Decimal

USAGE:
  clock := generic.NewClock(start, analysisStart, 60)
  rng := generic.NewRNG(42)
  lapses := generic.NewCountSeries(clock.Days)
  if lapses.Trailing(clock.DayIndex(), 4) >= 2 && rng.Chance(0.9) {
      ...
  }

SEE ALSO:
  - time.go: TimePoint and Clock
  - series.go: Rolling-window history
  - stats.go: Optional, Mean, StdDev, Round
*/
package generic

// =============================================================================
// WEIGHTED CHOICE
// =============================================================================

// Weighted is one option of a weighted random choice (see Choose).
type Weighted[T any] struct {
	Value  T
	Weight float64
}
