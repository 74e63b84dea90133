// Package heatcontent integrates thermistor-mooring temperature profiles
// against a bathymetric curve to obtain the lake's stored thermal energy.
//
// Heat content is reported per unit surface area (J/m²) so that its time
// derivative compares directly with surface fluxes in W/m²; the budget
// closure multiplies by the surface area when it needs absolute power.
package heatcontent

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/ceordonez/lakeflux/pkg/water"
)

// Profile is one timestamp's temperature observations: parallel slices of
// sensor depth (m below surface) and temperature (°C). Either slice may
// contain NaN where a sensor dropped out.
type Profile struct {
	Depths []float64
	Temps  []float64
}

// Integrator computes area-normalized heat content from profiles.
type Integrator struct {
	bath    *Bathymetry
	density func(float64) float64
	cp      float64
}

// NewIntegrator returns an integrator over the given bathymetry. density
// maps temperature in °C to density in kg/m³ (see water.Density for the
// standard equation of state).
func NewIntegrator(bath *Bathymetry, density func(float64) float64) *Integrator {
	return &Integrator{
		bath:    bath,
		density: density,
		cp:      water.SpecificHeat,
	}
}

// Integrate computes the heat content for one timestamp in J/m²:
// ∫ ρ(T(z))·Cp·T(z)·A(z) dz over [0, MaxDepth], divided by the surface
// area.
//
// The profile is interpolated onto the bathymetric break points with a
// shape-preserving cubic (Fritsch-Butland) and extended flat beyond the
// shallowest and deepest valid sensor, never extrapolated. In particular
// the surface value at depth 0 is the shallowest sensor's reading. If the
// profile holds no valid (depth, temperature) pair the result is NaN — a
// sensor gap is undefined heat content, never zero.
func (g *Integrator) Integrate(p Profile) float64 {
	depths, temps := validPairs(p)
	if len(depths) == 0 {
		return math.NaN()
	}

	predict, err := profilePredictor(depths, temps)
	if err != nil {
		return math.NaN()
	}

	grid := g.depthGrid(depths)
	var total float64
	for i := 1; i < len(grid); i++ {
		z0, z1 := grid[i-1], grid[i]
		dz := z1 - z0
		if dz == 0 {
			continue
		}
		total += 0.5 * (g.volumetricHeat(z0, predict) + g.volumetricHeat(z1, predict)) * dz
	}
	return total / g.bath.SurfaceArea()
}

// Series integrates a sequence of profiles, one per timestamp.
func (g *Integrator) Series(profiles []Profile) []float64 {
	out := make([]float64, len(profiles))
	for i, p := range profiles {
		out[i] = g.Integrate(p)
	}
	return out
}

func (g *Integrator) volumetricHeat(z float64, temp func(float64) float64) float64 {
	t := temp(z)
	return g.density(t) * g.cp * t * g.bath.Area(z)
}

// depthGrid returns the union of the bathymetric break points and the valid
// sensor depths over [0, MaxDepth], sorted and deduplicated, so the
// trapezoid rule sees every knot of both curves.
func (g *Integrator) depthGrid(sensorDepths []float64) []float64 {
	maxDepth := g.bath.MaxDepth()
	grid := append([]float64{}, g.bath.depths...)
	for _, d := range sensorDepths {
		if d > 0 && d < maxDepth {
			grid = append(grid, d)
		}
	}
	sort.Float64s(grid)

	dedup := grid[:1]
	for _, d := range grid[1:] {
		if d != dedup[len(dedup)-1] {
			dedup = append(dedup, d)
		}
	}
	return dedup
}

// validPairs extracts the finite (depth, temperature) pairs sorted by
// depth, collapsing duplicate depths onto the first reading.
func validPairs(p Profile) ([]float64, []float64) {
	n := len(p.Depths)
	if len(p.Temps) < n {
		n = len(p.Temps)
	}

	type pair struct{ z, t float64 }
	var pairs []pair
	for i := 0; i < n; i++ {
		if math.IsNaN(p.Depths[i]) || math.IsNaN(p.Temps[i]) {
			continue
		}
		pairs = append(pairs, pair{p.Depths[i], p.Temps[i]})
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].z < pairs[j].z })

	depths := make([]float64, 0, len(pairs))
	temps := make([]float64, 0, len(pairs))
	for _, pr := range pairs {
		if len(depths) > 0 && pr.z == depths[len(depths)-1] {
			continue
		}
		depths = append(depths, pr.z)
		temps = append(temps, pr.t)
	}
	return depths, temps
}

// profilePredictor builds the temperature-vs-depth function. With a single
// sensor the profile is constant; otherwise a Fritsch-Butland
// shape-preserving cubic is fitted. Queries are clamped to the sensor span,
// which yields the flat extension above the shallowest and below the
// deepest sensor.
func profilePredictor(depths, temps []float64) (func(float64) float64, error) {
	if len(depths) == 1 {
		t := temps[0]
		return func(float64) float64 { return t }, nil
	}

	var fb interp.FritschButland
	if err := fb.Fit(depths, temps); err != nil {
		return nil, err
	}
	zMin, zMax := depths[0], depths[len(depths)-1]
	return func(z float64) float64 {
		if z < zMin {
			z = zMin
		} else if z > zMax {
			z = zMax
		}
		return fb.Predict(z)
	}, nil
}
