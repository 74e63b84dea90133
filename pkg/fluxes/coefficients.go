package fluxes

// Coefficients holds every empirical constant used by the bulk-flux
// formulas. They are exposed as named values so an alternate literature
// parameterization can be swapped in from configuration without touching
// the flux functions themselves.
type Coefficients struct {
	// Magnus saturation vapor pressure constants (input °C, output hPa)
	VaporA1 float64
	VaporA2 float64
	VaporA3 float64

	// Brunt-type atmosphere emissivity constants
	EmissivityBase  float64 // overall scaling
	EmissivityCloud float64 // cloud-cover squared term
	EmissivityBrunt float64 // humidity power-law term

	// ShortwaveFloor is the incoming radiation in W/m² below which no
	// albedo reflection is applied, to avoid spurious reflection at
	// near-zero or negative nighttime readings.
	ShortwaveFloor float64

	// LongwaveReflection is the fraction of incoming longwave reflected
	// by the water surface.
	LongwaveReflection float64

	// WaterEmissivity is the longwave emissivity of the water surface.
	WaterEmissivity float64

	// StefanBoltzmann constant in W/(m²·K⁴).
	StefanBoltzmann float64

	// Bulk aerodynamic transfer function, linear in wind speed and in
	// the water-air temperature gradient. Output W/(m²·hPa).
	TransferBase     float64
	TransferWind     float64 // per m/s of 10 m wind
	TransferGradient float64 // per K of water-air gradient

	// Psychrometric constant inputs
	AirHeatCapacity  float64 // Cp of air in J/(kg·K)
	VaporizationHeat float64 // latent heat of vaporization in J/kg
	MolarMassRatio   float64 // water/dry-air molar mass ratio ε
}

// DefaultCoefficients returns the standard parameterization for the bulk
// surface energy balance formulas.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		VaporA1:            6.112,
		VaporA2:            17.62,
		VaporA3:            243.12,
		EmissivityBase:     0.98,
		EmissivityCloud:    0.17,
		EmissivityBrunt:    1.24,
		ShortwaveFloor:     5.0,
		LongwaveReflection: 0.03,
		WaterEmissivity:    0.972,
		StefanBoltzmann:    5.67e-8,
		TransferBase:       4.8,
		TransferWind:       1.98,
		TransferGradient:   0.28,
		AirHeatCapacity:    1005.0,
		VaporizationHeat:   2.47e6,
		MolarMassRatio:     0.622,
	}
}
