// Package config defines the analysis configuration and its providers.
// Configuration can come from a YAML file or a SQLite database; both map
// onto the same Config structure.
package config

import (
	"fmt"
	"time"

	"github.com/ceordonez/lakeflux/pkg/fluxes"
)

// Provider defines the interface for configuration data sources
type Provider interface {
	LoadConfig() (*Config, error)
	IsReadOnly() bool
	Close() error
}

// Config represents the complete configuration of one analysis run
type Config struct {
	Lake         LakeData           `yaml:"lake"`
	Inputs       InputsData         `yaml:"inputs"`
	Analysis     AnalysisData       `yaml:"analysis,omitempty"`
	Coefficients map[string]float64 `yaml:"coefficients,omitempty"`
	Inflow       InflowData         `yaml:"inflow,omitempty"`
	Outputs      OutputsData        `yaml:"outputs,omitempty"`
}

// LakeData identifies the water body and its site coordinates, used by the
// clear-sky model when cloud cover must be estimated.
type LakeData struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude,omitempty"`
	Longitude float64 `yaml:"longitude,omitempty"`
	Altitude  float64 `yaml:"altitude,omitempty"`
}

// InputsData holds the paths of the four input files.
type InputsData struct {
	Bathymetry         string `yaml:"bathymetry"`
	MooringTemperature string `yaml:"mooring_temperature"`
	MooringDepth       string `yaml:"mooring_depth"`
	Meteo              string `yaml:"meteo"`
}

// AnalysisData controls the temporal policy of the run.
type AnalysisData struct {
	// Start and End optionally narrow the analysis window
	// (RFC3339 or YYYY-MM-DD). The window is always intersected with the
	// overlap of the meteo and mooring records.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`

	// ResampleMinutes is the common cadence all inputs are averaged onto
	// before the flux computation. Default 60.
	ResampleMinutes int `yaml:"resample_minutes,omitempty"`

	// EstimateCloudCover fills gaps in the cloud record from the
	// measured shortwave and the clear-sky model.
	EstimateCloudCover bool `yaml:"estimate_cloud_cover,omitempty"`
}

// InflowData parameterizes the assumed source-water temperature ramp.
type InflowData struct {
	// BaselineTemp is the cold start of the ramp in °C. Default 2.
	BaselineTemp float64 `yaml:"baseline_temp,omitempty"`

	// MaxTemp overrides the ramp's end point; when nil, the observed
	// maximum surface temperature over the window is used.
	MaxTemp *float64 `yaml:"max_temp,omitempty"`
}

// OutputsData selects the result backends. Both may be set; at least one
// must be.
type OutputsData struct {
	CSVDir string `yaml:"csv_dir,omitempty"`
	SQLite string `yaml:"sqlite,omitempty"`
}

// Window returns the configured start/end bounds; zero times mean
// unbounded.
func (a AnalysisData) Window() (start, end time.Time, err error) {
	parse := func(s string) (time.Time, error) {
		if s == "" {
			return time.Time{}, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", s)
	}
	if start, err = parse(a.Start); err != nil {
		return start, end, fmt.Errorf("invalid analysis start %q: %w", a.Start, err)
	}
	if end, err = parse(a.End); err != nil {
		return start, end, fmt.Errorf("invalid analysis end %q: %w", a.End, err)
	}
	return start, end, nil
}

// Normalize applies defaults and validates the configuration.
func (c *Config) Normalize() error {
	if c.Analysis.ResampleMinutes == 0 {
		c.Analysis.ResampleMinutes = 60
	}
	if c.Analysis.ResampleMinutes < 0 {
		return fmt.Errorf("resample_minutes must be positive, got %d", c.Analysis.ResampleMinutes)
	}
	if c.Inflow.BaselineTemp == 0 {
		c.Inflow.BaselineTemp = 2.0
	}
	if c.Inputs.Bathymetry == "" || c.Inputs.MooringTemperature == "" ||
		c.Inputs.MooringDepth == "" || c.Inputs.Meteo == "" {
		return fmt.Errorf("all four input files must be configured (bathymetry, mooring_temperature, mooring_depth, meteo)")
	}
	if c.Outputs.CSVDir == "" && c.Outputs.SQLite == "" {
		return fmt.Errorf("at least one output backend must be configured (csv_dir or sqlite)")
	}
	if _, _, err := c.Analysis.Window(); err != nil {
		return err
	}
	if _, err := c.FluxCoefficients(); err != nil {
		return err
	}
	return nil
}

// FluxCoefficients returns the default flux parameterization with the
// configured overrides applied. Every empirical constant is addressable by
// name so alternate literature values can be swapped in from configuration.
func (c *Config) FluxCoefficients() (fluxes.Coefficients, error) {
	coef := fluxes.DefaultCoefficients()
	for name, value := range c.Coefficients {
		switch name {
		case "vapor_a1":
			coef.VaporA1 = value
		case "vapor_a2":
			coef.VaporA2 = value
		case "vapor_a3":
			coef.VaporA3 = value
		case "emissivity_base":
			coef.EmissivityBase = value
		case "emissivity_cloud":
			coef.EmissivityCloud = value
		case "emissivity_brunt":
			coef.EmissivityBrunt = value
		case "shortwave_floor":
			coef.ShortwaveFloor = value
		case "longwave_reflection":
			coef.LongwaveReflection = value
		case "water_emissivity":
			coef.WaterEmissivity = value
		case "stefan_boltzmann":
			coef.StefanBoltzmann = value
		case "transfer_base":
			coef.TransferBase = value
		case "transfer_wind":
			coef.TransferWind = value
		case "transfer_gradient":
			coef.TransferGradient = value
		case "air_heat_capacity":
			coef.AirHeatCapacity = value
		case "vaporization_heat":
			coef.VaporizationHeat = value
		case "molar_mass_ratio":
			coef.MolarMassRatio = value
		default:
			return coef, fmt.Errorf("unknown flux coefficient %q", name)
		}
	}
	return coef, nil
}
