// Package water provides thermodynamic properties of fresh water used
// throughout the heat budget: density as a function of temperature and the
// specific heat constant.
package water

// SpecificHeat is the specific heat capacity of water in J/(kg·K).
const SpecificHeat = 4186.0

// Density returns the density of fresh water in kg/m³ for a temperature in
// °C, using the UNESCO (Chen-Millero) equation of state at zero salinity and
// atmospheric pressure. Valid for the limnological range (0-40 °C); density
// peaks near 3.98 °C.
//
// Core packages accept density as a plain func(float64) float64, so an
// alternate equation of state can be substituted without touching them.
func Density(temp float64) float64 {
	return 999.842594 + temp*(6.793952e-2+
		temp*(-9.095290e-3+
			temp*(1.001685e-4+
				temp*(-1.120083e-6+
					temp*6.536332e-9))))
}

// VolumetricHeatCapacity returns ρ(T)·Cp·T in J/m³, the heat carried per
// unit volume of water at temperature T relative to 0 °C.
func VolumetricHeatCapacity(temp float64) float64 {
	return Density(temp) * SpecificHeat * temp
}
