package convert

import "math"

// RoundForDisplay applies tiered display rounding to a converted value.
// The asymmetric tiers keep large fiat values compact while leaving
// small-denomination crypto rates legible. math.Round rounds half away
// from zero, which is the rounding this policy requires.
func RoundForDisplay(value float64) float64 {
	switch {
	// For values greater than 100, round to two decimals.
	case value > 100.0:
		return math.Round(value*100.0) / 100.0
	// For values greater than 0.1, round to three decimals.
	case value > 0.1:
		return math.Round(value*1000.0) / 1000.0
	// For values greater than 0.000001, round to six decimals.
	case value > 0.000001:
		return math.Round(value*1000000.0) / 1000000.0
	// For very small values, don't round.
	default:
		return value
	}
}
