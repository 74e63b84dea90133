// Package fluxes computes the surface energy balance of a lake from
// meteorological forcing and water surface temperature.
//
// Every function is a stateless elementwise transform over aligned series:
// input slices must have equal length and share a common timestamp index,
// which the caller guarantees. A NaN in any input propagates to NaN in the
// output at the same position; missing data is a value state here, never an
// error. Sign convention throughout: positive flux means energy entering
// the lake.
package fluxes

import "math"

const kelvinOffset = 273.15

// Model evaluates the bulk-flux formulas with a fixed set of empirical
// coefficients.
type Model struct {
	Coef Coefficients
}

// NewModel returns a flux model using the supplied coefficients.
func NewModel(coef Coefficients) *Model {
	return &Model{Coef: coef}
}

// Input bundles the aligned forcing series the full balance needs.
type Input struct {
	AirTemp     []float64 // air temperature at screen level in °C
	CloudCover  []float64 // cloud cover fraction [0,1]
	Wind10      []float64 // wind speed at 10 m in m/s
	RelHumidity []float64 // relative humidity in %
	AirPressure []float64 // air pressure in hPa
	Shortwave   []float64 // incoming shortwave radiation in W/m²
	Albedo      []float64 // water surface albedo [0,1]
	WaterTemp   []float64 // surface water temperature in °C
}

// Set holds the five flux components and their sum, all in W/m².
type Set struct {
	Shortwave   []float64 // absorbed shortwave
	LongwaveIn  []float64 // absorbed atmospheric longwave
	LongwaveOut []float64 // longwave emitted by the lake (negative)
	Latent      []float64
	Sensible    []float64
	Net         []float64
}

// SaturationVaporPressure returns the saturation vapor pressure in hPa for
// temperatures in °C, using the Magnus form A1·exp(A2·T/(A3+T)). It serves
// both the atmosphere (air temperature) and the water surface (water
// temperature, saturation at the interface).
func (m *Model) SaturationVaporPressure(temp []float64) []float64 {
	c := m.Coef
	out := make([]float64, len(temp))
	for i, t := range temp {
		out[i] = c.VaporA1 * math.Exp(c.VaporA2*t/(c.VaporA3+t))
	}
	return out
}

// VaporPressure returns the actual vapor pressure in hPa from air
// temperature in °C and relative humidity in %.
func (m *Model) VaporPressure(temp, rh []float64) []float64 {
	sat := m.SaturationVaporPressure(temp)
	out := make([]float64, len(temp))
	for i := range out {
		out[i] = sat[i] * rh[i] / 100.0
	}
	return out
}

// AtmosphereEmissivity returns the apparent longwave emissivity of the
// atmosphere from air temperature in °C, cloud cover fraction and the
// saturation vapor pressure at air temperature in hPa. Clouds raise the
// apparent emissivity; the humidity power law follows a Brunt-type
// formulation.
func (m *Model) AtmosphereEmissivity(temp, cloudCover, vaporPressure []float64) []float64 {
	c := m.Coef
	out := make([]float64, len(temp))
	for i := range out {
		tk := temp[i] + kelvinOffset
		cloud := 1.0 + c.EmissivityCloud*cloudCover[i]*cloudCover[i]
		out[i] = c.EmissivityBase * cloud * c.EmissivityBrunt *
			math.Pow(vaporPressure[i]/tk, 1.0/7.0)
	}
	return out
}

// AbsorbedShortwave returns the shortwave radiation absorbed by the lake in
// W/m². Albedo reflection only applies where the incoming radiation exceeds
// ShortwaveFloor; below it the reading passes through unmodified so that
// near-zero nighttime noise is not "reflected".
func (m *Model) AbsorbedShortwave(radiation, albedo []float64) []float64 {
	c := m.Coef
	out := make([]float64, len(radiation))
	for i, rad := range radiation {
		if rad > c.ShortwaveFloor {
			out[i] = rad - rad*albedo[i]
		} else {
			out[i] = rad
		}
	}
	return out
}

// AbsorbedLongwave returns the atmospheric longwave radiation absorbed by
// the lake in W/m², from air temperature in °C and atmosphere emissivity.
func (m *Model) AbsorbedLongwave(airTemp, emissivity []float64) []float64 {
	c := m.Coef
	out := make([]float64, len(airTemp))
	for i := range out {
		tk := airTemp[i] + kelvinOffset
		out[i] = (1.0 - c.LongwaveReflection) * emissivity[i] * c.StefanBoltzmann * pow4(tk)
	}
	return out
}

// EmittedLongwave returns the longwave radiation emitted by the lake in
// W/m² from surface water temperature in °C. Always negative: energy
// leaving the lake.
func (m *Model) EmittedLongwave(waterTemp []float64) []float64 {
	c := m.Coef
	out := make([]float64, len(waterTemp))
	for i, wt := range waterTemp {
		tk := wt + kelvinOffset
		out[i] = -c.WaterEmissivity * c.StefanBoltzmann * pow4(tk)
	}
	return out
}

// TransferFunction returns the bulk aerodynamic transfer coefficient in
// W/(m²·hPa), linear in the 10 m wind speed and in the water-air
// temperature gradient.
func (m *Model) TransferFunction(wind10, waterTemp, airTemp []float64) []float64 {
	c := m.Coef
	out := make([]float64, len(wind10))
	for i := range out {
		out[i] = c.TransferBase + c.TransferWind*wind10[i] +
			c.TransferGradient*(waterTemp[i]-airTemp[i])
	}
	return out
}

// PsychrometricConstant returns Cp·P/(Lv·ε) in hPa/K for air pressure in hPa.
func (m *Model) PsychrometricConstant(airPressure []float64) []float64 {
	c := m.Coef
	out := make([]float64, len(airPressure))
	for i, p := range airPressure {
		out[i] = c.AirHeatCapacity * p / (c.VaporizationHeat * c.MolarMassRatio)
	}
	return out
}

// LatentHeat returns the latent heat flux in W/m²: −f·(ew−ea), negative
// when the saturated surface is more humid than the overlying air
// (evaporative loss).
func (m *Model) LatentHeat(transfer, surfaceSatVP, actualVP []float64) []float64 {
	out := make([]float64, len(transfer))
	for i := range out {
		out[i] = -transfer[i] * (surfaceSatVP[i] - actualVP[i])
	}
	return out
}

// SensibleHeat returns the sensible heat flux in W/m²:
// −γ·f·(Tw−Ta), negative when the water is warmer than the air.
func (m *Model) SensibleHeat(psychro, transfer, waterTemp, airTemp []float64) []float64 {
	out := make([]float64, len(transfer))
	for i := range out {
		out[i] = -psychro[i] * transfer[i] * (waterTemp[i] - airTemp[i])
	}
	return out
}

// NetFlux returns the elementwise sum of the five flux components.
func (m *Model) NetFlux(hs, ha, hw, he, hc []float64) []float64 {
	out := make([]float64, len(hs))
	for i := range out {
		out[i] = hs[i] + ha[i] + hw[i] + he[i] + hc[i]
	}
	return out
}

// Compute evaluates the full surface energy balance over the aligned input
// series and returns all five components plus the net flux.
func (m *Model) Compute(in Input) Set {
	ewSurface := m.SaturationVaporPressure(in.WaterTemp)
	eaSatAir := m.SaturationVaporPressure(in.AirTemp)
	eaActual := m.VaporPressure(in.AirTemp, in.RelHumidity)
	emissivity := m.AtmosphereEmissivity(in.AirTemp, in.CloudCover, eaSatAir)
	transfer := m.TransferFunction(in.Wind10, in.WaterTemp, in.AirTemp)
	psychro := m.PsychrometricConstant(in.AirPressure)

	set := Set{
		Shortwave:   m.AbsorbedShortwave(in.Shortwave, in.Albedo),
		LongwaveIn:  m.AbsorbedLongwave(in.AirTemp, emissivity),
		LongwaveOut: m.EmittedLongwave(in.WaterTemp),
		Latent:      m.LatentHeat(transfer, ewSurface, eaActual),
		Sensible:    m.SensibleHeat(psychro, transfer, in.WaterTemp, in.AirTemp),
	}
	set.Net = m.NetFlux(set.Shortwave, set.LongwaveIn, set.LongwaveOut, set.Latent, set.Sensible)
	return set
}

func pow4(x float64) float64 {
	x2 := x * x
	return x2 * x2
}
