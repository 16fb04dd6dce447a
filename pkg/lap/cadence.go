package lap

import "math"

// Advance moves a sampling accumulator forward by dt.
// When the accumulator reaches interval one sample is due; the interval is
// subtracted (not reset) so the average rate stays exact under variable
// frame times. At most one sample is emitted per call, the remainder is
// carried over to the following calls. A negative dt counts as 0.
func Advance(acc, dt, interval float64) (newAcc float64, emit int) {
	dt = clampDelta(dt)
	newAcc = acc + dt
	if newAcc >= interval {
		return newAcc - interval, 1
	}
	return newAcc, 0
}

// clampDelta maps frame times that would move time backwards to 0.
func clampDelta(dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	return dt
}
