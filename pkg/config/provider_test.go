package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
lake:
  name: Bretaye
  latitude: 46.33
  longitude: 7.07
  altitude: 1780
inputs:
  bathymetry: testdata/bathymetry.csv
  mooring_temperature: testdata/mooring_temp.csv
  mooring_depth: testdata/mooring_depth.csv
  meteo: testdata/meteo.csv
analysis:
  resample_minutes: 60
  estimate_cloud_cover: true
coefficients:
  water_emissivity: 0.96
inflow:
  baseline_temp: 2.0
outputs:
  csv_dir: out
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	provider := NewYAMLProvider(writeConfig(t, sampleYAML))
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Lake.Name != "Bretaye" {
		t.Errorf("lake name = %q, expected Bretaye", cfg.Lake.Name)
	}
	if cfg.Analysis.ResampleMinutes != 60 {
		t.Errorf("resample minutes = %d, expected 60", cfg.Analysis.ResampleMinutes)
	}
	if !cfg.Analysis.EstimateCloudCover {
		t.Error("estimate_cloud_cover should be true")
	}
	if cfg.Inputs.Meteo != "testdata/meteo.csv" {
		t.Errorf("meteo path = %q", cfg.Inputs.Meteo)
	}

	coef, err := cfg.FluxCoefficients()
	if err != nil {
		t.Fatalf("FluxCoefficients: %v", err)
	}
	if math.Abs(coef.WaterEmissivity-0.96) > 1e-12 {
		t.Errorf("overridden water emissivity = %v, expected 0.96", coef.WaterEmissivity)
	}
	if math.Abs(coef.TransferBase-4.8) > 1e-12 {
		t.Errorf("non-overridden coefficient changed: transfer base = %v", coef.TransferBase)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{
		Inputs: InputsData{
			Bathymetry:         "b.csv",
			MooringTemperature: "t.csv",
			MooringDepth:       "d.csv",
			Meteo:              "m.csv",
		},
		Outputs: OutputsData{CSVDir: "out"},
	}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Analysis.ResampleMinutes != 60 {
		t.Errorf("default resample minutes = %d, expected 60", cfg.Analysis.ResampleMinutes)
	}
	if cfg.Inflow.BaselineTemp != 2.0 {
		t.Errorf("default inflow baseline = %v, expected 2.0", cfg.Inflow.BaselineTemp)
	}
}

func TestNormalizeRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing input file", func(c *Config) { c.Inputs.Meteo = "" }},
		{"no output backend", func(c *Config) { c.Outputs = OutputsData{} }},
		{"unknown coefficient", func(c *Config) { c.Coefficients = map[string]float64{"bogus": 1} }},
		{"bad window", func(c *Config) { c.Analysis.Start = "yesterday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Inputs: InputsData{
					Bathymetry:         "b.csv",
					MooringTemperature: "t.csv",
					MooringDepth:       "d.csv",
					Meteo:              "m.csv",
				},
				Outputs: OutputsData{CSVDir: "out"},
			}
			tt.mutate(cfg)
			if err := cfg.Normalize(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAnalysisWindowFormats(t *testing.T) {
	a := AnalysisData{Start: "2023-06-01", End: "2023-09-30T12:00:00Z"}
	start, end, err := a.Window()
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if start.IsZero() || end.IsZero() {
		t.Error("both bounds should parse to non-zero times")
	}
	if !end.After(start) {
		t.Error("end should follow start")
	}
}
