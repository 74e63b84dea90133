// Package timeseries provides the aligned value-series model shared by the
// pipeline: timestamps paired with float64 values where math.NaN() is the
// first-class missing-data state. The orchestration layer owns alignment;
// the numerical packages receive plain slices that have already been
// resampled onto a common regular index.
package timeseries

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Series is an immutable time-indexed sequence of values. Operations return
// new series and never mutate the receiver.
type Series struct {
	Times  []time.Time
	Values []float64
}

// New returns a Series over the given timestamps and values.
func New(times []time.Time, values []float64) (Series, error) {
	if len(times) != len(values) {
		return Series{}, fmt.Errorf("timeseries: %d timestamps but %d values", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if times[i].Before(times[i-1]) {
			return Series{}, fmt.Errorf("timeseries: timestamps not ordered at index %d", i)
		}
	}
	return Series{Times: times, Values: values}, nil
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.Times)
}

// ResampleMean buckets the series onto a regular grid of the given step
// (timestamps truncated to the step boundary) and returns the NaN-aware
// mean of each bucket. Buckets with no defined values are NaN, so the
// output grid is gapless in time even where the data is not.
func (s Series) ResampleMean(step time.Duration) Series {
	if s.Len() == 0 {
		return s
	}

	first := s.Times[0].Truncate(step)
	last := s.Times[s.Len()-1].Truncate(step)
	n := int(last.Sub(first)/step) + 1

	times := make([]time.Time, n)
	values := make([]float64, n)
	for i := range times {
		times[i] = first.Add(time.Duration(i) * step)
		values[i] = math.NaN()
	}

	bucket := make([][]float64, n)
	for i, t := range s.Times {
		idx := int(t.Truncate(step).Sub(first) / step)
		if idx < 0 || idx >= n {
			continue
		}
		if !math.IsNaN(s.Values[i]) {
			bucket[idx] = append(bucket[idx], s.Values[i])
		}
	}
	for i, vals := range bucket {
		if len(vals) > 0 {
			values[i] = stat.Mean(vals, nil)
		}
	}

	return Series{Times: times, Values: values}
}

// DailyMean aggregates to daily cadence with NaN-aware means, the simple
// averaging the budget outputs are reported at.
func (s Series) DailyMean() Series {
	return s.ResampleMean(24 * time.Hour)
}

// Interpolate fills missing values linearly between their defined
// neighbors and extends the first/last defined value flat across the ends.
// A series with no defined value at all is returned unchanged.
func (s Series) Interpolate() Series {
	n := s.Len()
	values := make([]float64, n)
	copy(values, s.Values)

	firstDef, lastDef := -1, -1
	for i, v := range values {
		if !math.IsNaN(v) {
			if firstDef < 0 {
				firstDef = i
			}
			lastDef = i
		}
	}
	if firstDef < 0 {
		return Series{Times: s.Times, Values: values}
	}

	for i := 0; i < firstDef; i++ {
		values[i] = values[firstDef]
	}
	for i := lastDef + 1; i < n; i++ {
		values[i] = values[lastDef]
	}

	prev := firstDef
	for i := firstDef + 1; i <= lastDef; i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		if i > prev+1 {
			dt := s.Times[i].Sub(s.Times[prev]).Seconds()
			for j := prev + 1; j < i; j++ {
				if dt <= 0 {
					values[j] = values[prev]
					continue
				}
				frac := s.Times[j].Sub(s.Times[prev]).Seconds() / dt
				values[j] = values[prev] + frac*(values[i]-values[prev])
			}
		}
		prev = i
	}

	return Series{Times: s.Times, Values: values}
}

// Clip returns the sub-series with from <= t <= to.
func (s Series) Clip(from, to time.Time) Series {
	lo := 0
	for lo < s.Len() && s.Times[lo].Before(from) {
		lo++
	}
	hi := s.Len()
	for hi > lo && s.Times[hi-1].After(to) {
		hi--
	}
	return Series{Times: s.Times[lo:hi], Values: s.Values[lo:hi]}
}

// Scale returns the series with every defined value multiplied by f.
func (s Series) Scale(f float64) Series {
	values := make([]float64, s.Len())
	for i, v := range s.Values {
		values[i] = v * f
	}
	return Series{Times: s.Times, Values: values}
}

// Mean returns the NaN-aware mean of values, NaN if none are defined.
func Mean(values []float64) float64 {
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		return math.NaN()
	}
	return stat.Mean(defined, nil)
}

// Max returns the NaN-aware maximum of values, NaN if none are defined.
func Max(values []float64) float64 {
	out := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v > out {
			out = v
		}
	}
	return out
}

// CommonWindow returns the overlap [from, to] of the series' time spans.
// ok is false when any series is empty or the spans do not intersect.
func CommonWindow(series ...Series) (from, to time.Time, ok bool) {
	for i, s := range series {
		if s.Len() == 0 {
			return time.Time{}, time.Time{}, false
		}
		start, end := s.Times[0], s.Times[s.Len()-1]
		if i == 0 || start.After(from) {
			from = start
		}
		if i == 0 || end.Before(to) {
			to = end
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
