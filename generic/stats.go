package generic

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OPTIONAL - Explicit "no data" result for statistics
// =============================================================================

// Optional is a float64 that may be undefined. Mean and SD over empty series
// return an invalid Optional; callers must check Valid before comparing.
type Optional struct {
	Value float64
	Valid bool
}

// Some wraps a defined value.
func Some(v float64) Optional { return Optional{Value: v, Valid: true} }

// None is the "no data" sentinel.
func None() Optional { return Optional{} }

// Ptr returns a pointer to the value, nil when undefined.
func (o Optional) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// =============================================================================
// STATISTICS
// =============================================================================

// Mean returns the arithmetic mean, or None for an empty series.
func Mean(xs []float64) Optional {
	if len(xs) == 0 {
		return None()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return Some(sum / float64(len(xs)))
}

// StdDev returns the sample standard deviation, or None with fewer than two values.
func StdDev(xs []float64) Optional {
	if len(xs) < 2 {
		return None()
	}
	m := Mean(xs).Value
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return Some(math.Sqrt(ss / float64(len(xs)-1)))
}

// MinMax returns the smallest and largest values, both None for an empty series.
func MinMax(xs []float64) (Optional, Optional) {
	if len(xs) == 0 {
		return None(), None()
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return Some(lo), Some(hi)
}

// Round rounds half away from zero to the given number of decimal places.
// decimal avoids the binary artifacts of math.Round(x*10^n)/10^n.
func Round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
