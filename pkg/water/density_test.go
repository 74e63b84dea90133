package water

import (
	"math"
	"testing"
)

func TestDensity(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		expected float64
		epsilon  float64
	}{
		{
			name:     "freezing",
			temp:     0.0,
			expected: 999.8426,
			epsilon:  0.001,
		},
		{
			name:     "maximum density near 4C",
			temp:     4.0,
			expected: 999.9749,
			epsilon:  0.001,
		},
		{
			name:     "room temperature",
			temp:     20.0,
			expected: 998.2063,
			epsilon:  0.001,
		},
		{
			name:     "warm surface water",
			temp:     25.0,
			expected: 997.0480,
			epsilon:  0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Density(tt.temp)
			if math.Abs(got-tt.expected) > tt.epsilon {
				t.Errorf("Density(%.1f) = %.4f, expected %.4f ± %.4f",
					tt.temp, got, tt.expected, tt.epsilon)
			}
		})
	}
}

func TestDensityPeaksNearFourDegrees(t *testing.T) {
	peak := Density(3.98)
	for _, temp := range []float64{0, 1, 2, 3, 5, 6, 8, 10, 20, 30} {
		if Density(temp) >= peak {
			t.Errorf("Density(%.1f) = %.4f should be below the 3.98°C peak %.4f",
				temp, Density(temp), peak)
		}
	}
}

func TestDensityPropagatesNaN(t *testing.T) {
	if !math.IsNaN(Density(math.NaN())) {
		t.Error("Density(NaN) should be NaN")
	}
}
