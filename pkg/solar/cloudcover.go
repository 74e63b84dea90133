package solar

import (
	"math"
	"time"
)

// daylightFloor is the clear-sky irradiance in W/m² below which the
// clear-sky index is too noisy to estimate cloudiness from.
const daylightFloor = 50.0

// EstimateCloudCover fills gaps in an observed cloud-cover series from the
// measured shortwave record. Where the observation is missing and the sun
// is up, cloud fraction is estimated as 1 − Hs/Hclear clamped to [0,1];
// overnight and under a too-low sun the last daylight estimate is held.
// Timestamps where the observation is defined pass through untouched.
// Leading gaps before the first estimate stay NaN.
//
// This is a crude closure of the radiation budget, adequate for filling
// occasional gaps; it is not a substitute for a cloud observation record.
func EstimateCloudCover(times []time.Time, observed, shortwave []float64, latitude, longitude, altitude float64) []float64 {
	out := make([]float64, len(observed))
	held := math.NaN()

	for i := range observed {
		if !math.IsNaN(observed[i]) {
			out[i] = observed[i]
			held = observed[i]
			continue
		}

		clear := ClearSkyGHI(times[i], latitude, longitude, altitude)
		if clear > daylightFloor && !math.IsNaN(shortwave[i]) {
			cc := 1.0 - shortwave[i]/clear
			if cc < 0 {
				cc = 0
			} else if cc > 1 {
				cc = 1
			}
			held = cc
		}
		out[i] = held
	}
	return out
}
