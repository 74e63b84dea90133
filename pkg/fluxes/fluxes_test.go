package fluxes

import (
	"math"
	"testing"
)

func TestSaturationVaporPressureMonotonic(t *testing.T) {
	m := NewModel(DefaultCoefficients())

	var temps []float64
	for temp := -10.0; temp <= 40.0; temp += 0.5 {
		temps = append(temps, temp)
	}
	ew := m.SaturationVaporPressure(temps)

	for i, v := range ew {
		if v <= 0 {
			t.Errorf("saturation vapor pressure at %.1f°C = %.4f, expected positive", temps[i], v)
		}
		if i > 0 && v <= ew[i-1] {
			t.Errorf("saturation vapor pressure not strictly increasing at %.1f°C: %.4f <= %.4f",
				temps[i], v, ew[i-1])
		}
	}
}

func TestSaturationVaporPressureReference(t *testing.T) {
	m := NewModel(DefaultCoefficients())

	// Magnus formula at 0°C returns exactly A1
	got := m.SaturationVaporPressure([]float64{0})[0]
	if math.Abs(got-6.112) > 1e-9 {
		t.Errorf("saturation vapor pressure at 0°C = %.4f, expected 6.112", got)
	}
}

func TestVaporPressureSaturationRoundTrip(t *testing.T) {
	m := NewModel(DefaultCoefficients())

	temps := []float64{-10, -5, 0, 5, 10, 15, 20, 25, 30, 40}
	rh100 := make([]float64, len(temps))
	for i := range rh100 {
		rh100[i] = 100.0
	}

	sat := m.SaturationVaporPressure(temps)
	actual := m.VaporPressure(temps, rh100)

	for i := range temps {
		if math.Abs(actual[i]-sat[i]) > 1e-9 {
			t.Errorf("at %.1f°C, RH=100%%: actual %.6f != saturation %.6f", temps[i], actual[i], sat[i])
		}
	}
}

func TestAbsorbedShortwave(t *testing.T) {
	m := NewModel(DefaultCoefficients())

	tests := []struct {
		name     string
		rad      float64
		albedo   float64
		expected float64
	}{
		{"night, zero radiation", 0, 0.1, 0},
		{"negative sensor reading passes through", -2.5, 0.1, -2.5},
		{"below reflection floor passes through", 4.9, 0.5, 4.9},
		{"at the floor passes through", 5.0, 0.5, 5.0},
		{"above floor reflects", 100, 0.1, 90},
		{"full albedo absorbs nothing", 500, 1.0, 0},
		{"zero albedo absorbs everything", 500, 0.0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.AbsorbedShortwave([]float64{tt.rad}, []float64{tt.albedo})[0]
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("AbsorbedShortwave(%.1f, %.1f) = %.4f, expected %.4f",
					tt.rad, tt.albedo, got, tt.expected)
			}
		})
	}
}

func TestNetFluxIsExactSum(t *testing.T) {
	m := NewModel(DefaultCoefficients())

	hs := []float64{120.5, 0, -3}
	ha := []float64{280.1, 265.7, 300}
	hw := []float64{-350.2, -344.4, -360}
	he := []float64{-45.8, -7.4, 12}
	hc := []float64{8.9, 9.1, -20}

	net := m.NetFlux(hs, ha, hw, he, hc)
	for i := range net {
		want := hs[i] + ha[i] + hw[i] + he[i] + hc[i]
		if net[i] != want {
			t.Errorf("net[%d] = %v, expected exact sum %v", i, net[i], want)
		}
	}
}

// TestNighttimeCooling pins the full balance for a clear autumn night: no
// shortwave, longwave emission dominating, the lake losing heat. This also
// pins the sign convention (positive = energy entering the lake).
func TestNighttimeCooling(t *testing.T) {
	m := NewModel(DefaultCoefficients())

	in := Input{
		AirTemp:     []float64{10},
		CloudCover:  []float64{0},
		Wind10:      []float64{2},
		RelHumidity: []float64{80},
		AirPressure: []float64{850},
		Shortwave:   []float64{0},
		Albedo:      []float64{0.1},
		WaterTemp:   []float64{8},
	}
	set := m.Compute(in)

	checks := []struct {
		name     string
		got      float64
		expected float64
		epsilon  float64
	}{
		{"absorbed shortwave", set.Shortwave[0], 0, 1e-9},
		{"absorbed longwave", set.LongwaveIn[0], 274.4, 0.5},
		{"emitted longwave", set.LongwaveOut[0], -344.35, 0.5},
		// Latent heat per the bulk formula −f·(ew−ea). The sign/magnitude
		// of this parameterization is flagged as unconfirmed in the source
		// derivation; this test pins the current behavior, it does not
		// validate the physics.
		{"latent heat", set.Latent[0], -7.43, 0.1},
		{"sensible heat", set.Sensible[0], 9.12, 0.1},
		{"net flux", set.Net[0], -68.3, 1.0},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.expected) > c.epsilon {
			t.Errorf("%s = %.3f, expected %.3f ± %.3f", c.name, c.got, c.expected, c.epsilon)
		}
	}

	if set.Net[0] >= 0 {
		t.Errorf("nighttime net flux = %.2f, expected strongly negative (lake cooling)", set.Net[0])
	}
	if set.LongwaveOut[0] >= 0 {
		t.Error("emitted longwave must be negative (energy leaving the lake)")
	}
}

// TestEmissivitySaturationHumidity pins the emissivity wiring: the Brunt
// humidity term takes the saturation vapor pressure at air temperature,
// not the actual vapor pressure, so absorbed longwave must not vary with
// relative humidity.
func TestEmissivitySaturationHumidity(t *testing.T) {
	m := NewModel(DefaultCoefficients())

	in := Input{
		AirTemp:     []float64{10},
		CloudCover:  []float64{0},
		Wind10:      []float64{2},
		RelHumidity: []float64{80},
		AirPressure: []float64{850},
		Shortwave:   []float64{0},
		Albedo:      []float64{0.1},
		WaterTemp:   []float64{8},
	}
	dry := m.Compute(in)
	in.RelHumidity = []float64{40}
	drier := m.Compute(in)

	if dry.LongwaveIn[0] != drier.LongwaveIn[0] {
		t.Errorf("absorbed longwave varies with relative humidity: %.3f vs %.3f",
			dry.LongwaveIn[0], drier.LongwaveIn[0])
	}
	if dry.Latent[0] == drier.Latent[0] {
		t.Error("latent heat should respond to relative humidity")
	}
}

func TestMissingDataPropagates(t *testing.T) {
	m := NewModel(DefaultCoefficients())
	nan := math.NaN()

	in := Input{
		AirTemp:     []float64{10, nan, 10},
		CloudCover:  []float64{0, 0, 0},
		Wind10:      []float64{2, 2, 2},
		RelHumidity: []float64{80, 80, 80},
		AirPressure: []float64{850, 850, 850},
		Shortwave:   []float64{0, 0, 0},
		Albedo:      []float64{0.1, 0.1, 0.1},
		WaterTemp:   []float64{8, 8, nan},
	}
	set := m.Compute(in)

	if !math.IsNaN(set.Net[1]) {
		t.Errorf("net[1] = %v, expected NaN when air temperature is missing", set.Net[1])
	}
	if !math.IsNaN(set.Net[2]) {
		t.Errorf("net[2] = %v, expected NaN when water temperature is missing", set.Net[2])
	}
	if !math.IsNaN(set.LongwaveOut[2]) {
		t.Error("emitted longwave should be NaN when water temperature is missing")
	}
	if math.IsNaN(set.Net[0]) {
		t.Error("net[0] should be defined when all inputs are defined")
	}

	// Missing water temperature must not contaminate fluxes that do not
	// depend on it.
	if math.IsNaN(set.LongwaveIn[2]) {
		t.Error("absorbed longwave at index 2 depends only on air-side inputs, should be defined")
	}
}

func TestCoefficientsAreOverridable(t *testing.T) {
	coef := DefaultCoefficients()
	coef.WaterEmissivity = 1.0

	m := NewModel(coef)
	def := NewModel(DefaultCoefficients())

	got := m.EmittedLongwave([]float64{8})[0]
	want := def.EmittedLongwave([]float64{8})[0] / 0.972
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("overridden emissivity: got %.4f, expected %.4f", got, want)
	}
}
