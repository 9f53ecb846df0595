package domain

import "math"

// Round2 rounds a currency amount to exactly two decimal places, half away
// from zero. Every reported price and total goes through this one function
// so per-item echoes and aggregates always agree.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
