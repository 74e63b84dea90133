// Package budget closes the lake's energy budget: it differentiates stored
// heat in time, reconciles it against the modeled surface flux, and inverts
// the residual into the volumetric flow that would carry the unexplained
// heat.
//
// All transforms are pure and elementwise over aligned series. NaN inputs
// propagate to NaN outputs at matching timestamps; nothing is zero-filled.
package budget

import (
	"math"
	"time"

	"github.com/ceordonez/lakeflux/pkg/water"
)

// Closure holds the fixed quantities of the budget inversion.
type Closure struct {
	// SurfaceArea of the lake in m², the area at depth 0 of the
	// bathymetric curve. Converts area-normalized residual flux (W/m²)
	// into power (W).
	SurfaceArea float64

	// Density maps temperature in °C to kg/m³.
	Density func(float64) float64

	// Cp is the specific heat of water in J/(kg·K).
	Cp float64

	// MinVolumetricHeat is the floor, in J/m³, below which the inflow's
	// volumetric heat capacity makes the inversion ill-posed (inflow
	// temperature approaching 0 °C). Flow is NaN there, never clamped.
	MinVolumetricHeat float64
}

// NewClosure returns a Closure with the standard specific heat and an
// instability floor equivalent to roughly a 0.5 °C inflow.
func NewClosure(surfaceArea float64, density func(float64) float64) *Closure {
	return &Closure{
		SurfaceArea:       surfaceArea,
		Density:           density,
		Cp:                water.SpecificHeat,
		MinVolumetricHeat: 2.0e6,
	}
}

// Result carries the series produced by one closure run, aligned with the
// input timestamps.
type Result struct {
	DHdt       []float64 // d(heat content)/dt in W/m²
	Residual   []float64 // unexplained power in W, positive = external heat source
	InflowTemp []float64 // assumed source-water temperature in °C
	Flow       []float64 // inferred volumetric exchange in m³/s
}

// Derivative returns the first difference of values over the actual elapsed
// seconds between consecutive timestamps. The first element is NaN, as is
// any element whose interval does not advance in time.
func Derivative(times []time.Time, values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		dt := times[i].Sub(times[i-1]).Seconds()
		if dt <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (values[i] - values[i-1]) / dt
	}
	return out
}

// Residual returns R(t) = −(dH/dt − Hnet)·A in W. Positive means more heat
// appeared in (or vanished from) storage than the surface fluxes explain:
// an unmeasured external source or sink, commonly groundwater or a piped
// exchange.
func (c *Closure) Residual(dhdt, netFlux []float64) []float64 {
	out := make([]float64, len(dhdt))
	for i := range out {
		out[i] = -(dhdt[i] - netFlux[i]) * c.SurfaceArea
	}
	return out
}

// Flow converts residual power into a volumetric flow in m³/s under an
// assumed inflow temperature, dividing by the inflow's volumetric heat
// capacity ρ(T_in)·Cp·T_in. Sign is preserved: positive flow carries heat
// in. Where the heat capacity falls below MinVolumetricHeat the inversion
// is numerically unstable and the result is NaN.
func (c *Closure) Flow(residual, inflowTemp []float64) []float64 {
	out := make([]float64, len(residual))
	for i := range out {
		heat := c.Density(inflowTemp[i]) * c.Cp * inflowTemp[i]
		if math.IsNaN(heat) || math.Abs(heat) < c.MinVolumetricHeat {
			out[i] = math.NaN()
			continue
		}
		out[i] = residual[i] / heat
	}
	return out
}

// Infer runs the full closure: derivative, residual and flow inversion
// under the supplied inflow-temperature trajectory.
func (c *Closure) Infer(times []time.Time, heatContent, netFlux []float64, traj Trajectory) Result {
	dhdt := Derivative(times, heatContent)
	res := c.Residual(dhdt, netFlux)
	inflow := traj(times)
	return Result{
		DHdt:       dhdt,
		Residual:   res,
		InflowTemp: inflow,
		Flow:       c.Flow(res, inflow),
	}
}
