// Package score coerces the heterogeneous score representations returned by
// the model (0-1 fractions, 0-100 integers, garbage) into a canonical 0-100
// integer scale.
package score

import "math"

// Normalize maps a raw numeric score onto [0,100]. Values in (0,1] are read
// as fractions and scaled by 100; everything else is rounded and clamped.
// NaN and infinities degrade to 0 rather than erroring.
func Normalize(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v > 0 && v <= 1 {
		v = v * 100
	}
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// NormalizePtr treats a missing value as 0.
func NormalizePtr(v *float64) int {
	if v == nil {
		return 0
	}
	return Normalize(*v)
}
