package budget

import (
	"math"
	"testing"
	"time"

	"github.com/ceordonez/lakeflux/pkg/water"
)

func hourly(n int) []time.Time {
	t0 := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = t0.Add(time.Duration(i) * time.Hour)
	}
	return out
}

func TestDerivative(t *testing.T) {
	times := hourly(4)
	values := []float64{0, 3600, 3600, 7200}

	got := Derivative(times, values)

	if !math.IsNaN(got[0]) {
		t.Errorf("derivative[0] = %v, expected NaN (no previous sample)", got[0])
	}
	want := []float64{math.NaN(), 1, 0, 1}
	for i := 1; i < len(want); i++ {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("derivative[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestDerivativeNonUniformSampling(t *testing.T) {
	t0 := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{t0, t0.Add(10 * time.Minute), t0.Add(40 * time.Minute)}
	values := []float64{0, 600, 2400}

	got := Derivative(times, values)

	// Each interval must use its actual elapsed seconds, not an assumed
	// constant step.
	if math.Abs(got[1]-1.0) > 1e-12 {
		t.Errorf("derivative over 10 min = %v, expected 1.0", got[1])
	}
	if math.Abs(got[2]-1.0) > 1e-12 {
		t.Errorf("derivative over 30 min = %v, expected 1.0", got[2])
	}
}

func TestDerivativePropagatesNaN(t *testing.T) {
	times := hourly(3)
	values := []float64{0, math.NaN(), 7200}

	got := Derivative(times, values)
	if !math.IsNaN(got[1]) || !math.IsNaN(got[2]) {
		t.Errorf("derivative across a gap = %v, %v, expected NaN at both ends of the gap", got[1], got[2])
	}
}

func TestNewClosureUsesStandardSpecificHeat(t *testing.T) {
	c := NewClosure(10000, water.Density)
	if c.Cp != water.SpecificHeat {
		t.Errorf("Cp = %v, expected the shared specific heat %v", c.Cp, water.SpecificHeat)
	}
}

// TestNoSpuriousFlow is the balanced scenario: an isothermal lake with zero
// net surface flux must infer zero residual and zero flow.
func TestNoSpuriousFlow(t *testing.T) {
	const surfaceArea = 10000.0
	c := NewClosure(surfaceArea, water.Density)

	times := hourly(2)
	hc := water.Density(4.0) * water.SpecificHeat * 4 * 10
	heatContent := []float64{hc, hc}
	netFlux := []float64{0, 0}

	res := c.Infer(times, heatContent, netFlux, Constant(5))

	if math.Abs(res.DHdt[1]) > 1e-9 {
		t.Errorf("dH/dt = %v, expected 0 for unchanged storage", res.DHdt[1])
	}
	if math.Abs(res.Residual[1]) > 1e-6 {
		t.Errorf("residual = %v W, expected 0", res.Residual[1])
	}
	if math.Abs(res.Flow[1]) > 1e-12 {
		t.Errorf("flow = %v m³/s, expected 0 (no spurious flow absent imbalance)", res.Flow[1])
	}
}

func TestResidualSignConvention(t *testing.T) {
	const surfaceArea = 5000.0
	c := NewClosure(surfaceArea, water.Density)

	// R = −(dH/dt − Hnet)·A. When the surface balance delivers more than
	// storage retains, the excess is leaving through the unmeasured
	// exchange and the residual is positive.
	dhdt := []float64{10.0, 0.0}
	net := []float64{0.0, 10.0}
	got := c.Residual(dhdt, net)

	want := []float64{-10.0 * surfaceArea, 10.0 * surfaceArea}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("residual[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestFlowInversion(t *testing.T) {
	c := NewClosure(10000, water.Density)

	const inflowTemp = 10.0
	heat := water.Density(inflowTemp) * c.Cp * inflowTemp
	residual := []float64{heat, -2 * heat, 0}
	inflow := []float64{inflowTemp, inflowTemp, inflowTemp}

	got := c.Flow(residual, inflow)
	want := []float64{1, -2, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("flow[%d] = %v, expected %v (sign-preserving division)", i, got[i], want[i])
		}
	}
}

func TestFlowIllPosedNearFreezing(t *testing.T) {
	c := NewClosure(10000, water.Density)

	residual := []float64{1e6, 1e6, 1e6}
	inflow := []float64{0.0, 0.1, 5.0}

	got := c.Flow(residual, inflow)

	// ρ·Cp·T at 0°C is zero and at 0.1°C about 4.2e5 J/m³, both under the
	// instability floor: flagged undefined, never clamped.
	if !math.IsNaN(got[0]) {
		t.Errorf("flow at 0°C inflow = %v, expected NaN", got[0])
	}
	if !math.IsNaN(got[1]) {
		t.Errorf("flow at 0.1°C inflow = %v, expected NaN", got[1])
	}
	if math.IsNaN(got[2]) {
		t.Error("flow at 5°C inflow should be well-posed")
	}
}

func TestFlowPropagatesNaN(t *testing.T) {
	c := NewClosure(10000, water.Density)

	got := c.Flow([]float64{math.NaN()}, []float64{10})
	if !math.IsNaN(got[0]) {
		t.Errorf("flow from undefined residual = %v, expected NaN", got[0])
	}
}

func TestLinearRamp(t *testing.T) {
	traj := LinearRamp(2, 18)
	got := traj(hourly(5))

	want := []float64{2, 6, 10, 14, 18}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("ramp[%d] = %v, expected %v", i, got[i], want[i])
		}
	}

	single := traj(hourly(1))
	if single[0] != 2 {
		t.Errorf("single-sample ramp = %v, expected the start value", single[0])
	}
}
