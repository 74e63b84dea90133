package budget

import "time"

// Trajectory supplies the assumed source-water temperature at each
// timestamp of the analysis window. The trajectory is a modeling choice,
// not a derived quantity: no direct measurement of the source water exists,
// so the caller documents its assumption by constructing one explicitly.
// The closure does not validate physical plausibility.
type Trajectory func(times []time.Time) []float64

// LinearRamp returns a trajectory rising linearly from start to end °C
// across the window, index-proportional regardless of sample spacing. A
// common choice is a ramp from a cold baseline up to the lake's observed
// maximum surface temperature.
func LinearRamp(start, end float64) Trajectory {
	return func(times []time.Time) []float64 {
		n := len(times)
		out := make([]float64, n)
		if n == 1 {
			out[0] = start
			return out
		}
		for i := range out {
			out[i] = start + (end-start)*float64(i)/float64(n-1)
		}
		return out
	}
}

// Constant returns a trajectory fixed at temp °C.
func Constant(temp float64) Trajectory {
	return func(times []time.Time) []float64 {
		out := make([]float64, len(times))
		for i := range out {
			out[i] = temp
		}
		return out
	}
}
