package model

import (
	"math"
	"math/rand"
)

// Fluctuation sampling. Each function is pure in the sense that calls are
// independent and share no state beyond the process RNG; results feed
// reporting and usage simulation, never placement decisions.

// FluctuatedInt draws a value uniformly from the inclusive integer range
// [max(0, nominal-band), nominal+band], band = nominal * pct / 100.
func FluctuatedInt(nominal int64, pct float64) int64 {
	band := float64(nominal) * pct / 100
	lo := nominal - int64(band)
	if lo < 0 {
		lo = 0
	}
	hi := nominal + int64(band)
	return lo + rand.Int63n(hi-lo+1)
}

// FluctuatedFloat draws a value uniformly from [max(0, nominal-band),
// nominal+band], rounded to two decimal places.
func FluctuatedFloat(nominal, pct float64) float64 {
	band := nominal * pct / 100
	lo := nominal - band
	if lo < 0 {
		lo = 0
	}
	hi := nominal + band
	v := lo + rand.Float64()*(hi-lo)
	return math.Round(v*100) / 100
}

// FluctuationDeltaInt draws a signed deviation uniformly from the inclusive
// integer range [-band, +band].
func FluctuationDeltaInt(nominal int64, pct float64) int64 {
	band := float64(nominal) * pct / 100
	lo := int64(-band)
	hi := int64(band)
	return lo + rand.Int63n(hi-lo+1)
}

// FluctuationDeltaFloat draws a signed deviation uniformly from [-band, +band].
func FluctuationDeltaFloat(nominal, pct float64) float64 {
	band := nominal * pct / 100
	return -band + rand.Float64()*2*band
}
