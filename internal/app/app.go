// Package app orchestrates one analysis run: it loads and aligns the
// inputs, drives the flux model, the heat content integrator and the
// budget closure in sequence, aggregates to daily cadence and dispatches
// the results to the configured storage backends.
//
// Alignment policy lives here, not in the numerical packages: every input
// is averaged onto a common regular grid, the mooring series are gap-
// interpolated, and the analysis window is the overlap of the records
// (optionally narrowed by configuration).
package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ceordonez/lakeflux/internal/loaders"
	"github.com/ceordonez/lakeflux/internal/storage"
	"github.com/ceordonez/lakeflux/internal/timeseries"
	"github.com/ceordonez/lakeflux/pkg/budget"
	"github.com/ceordonez/lakeflux/pkg/config"
	"github.com/ceordonez/lakeflux/pkg/fluxes"
	"github.com/ceordonez/lakeflux/pkg/heatcontent"
	"github.com/ceordonez/lakeflux/pkg/solar"
	"github.com/ceordonez/lakeflux/pkg/water"
)

// App represents the main application
type App struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.Config, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run executes the pipeline once and writes the results.
func (a *App) Run(ctx context.Context) error {
	step := time.Duration(a.cfg.Analysis.ResampleMinutes) * time.Minute

	bath, err := loaders.ReadBathymetry(a.cfg.Inputs.Bathymetry)
	if err != nil {
		return fmt.Errorf("loading bathymetry: %w", err)
	}
	a.logger.Infof("bathymetry: surface area %.0f m², max depth %.1f m",
		bath.SurfaceArea(), bath.MaxDepth())

	mooring, err := a.loadMooring(step)
	if err != nil {
		return err
	}
	meteo, err := a.loadMeteo(step)
	if err != nil {
		return err
	}

	from, to, err := a.analysisWindow(mooring, meteo)
	if err != nil {
		return err
	}
	mooring.clip(from, to)
	meteo.clip(from, to)
	if err := checkAligned(mooring, meteo); err != nil {
		return err
	}
	times := meteo.airTemp.Times
	a.logger.Infof("analysis window %s to %s, %d samples at %s cadence",
		from.Format("2006-01-02 15:04"), to.Format("2006-01-02 15:04"), len(times), step)

	surface := mooring.surfaceTemperature()
	cloud := meteo.cloudCover.Values
	if a.cfg.Analysis.EstimateCloudCover {
		cloud = solar.EstimateCloudCover(times, cloud, meteo.shortwave.Values,
			a.cfg.Lake.Latitude, a.cfg.Lake.Longitude, a.cfg.Lake.Altitude)
		a.logger.Debugf("cloud cover gaps filled from clear-sky index")
	}

	coef, err := a.cfg.FluxCoefficients()
	if err != nil {
		return err
	}
	model := fluxes.NewModel(coef)
	set := model.Compute(fluxes.Input{
		AirTemp:     meteo.airTemp.Values,
		CloudCover:  cloud,
		Wind10:      meteo.wind10.Values,
		RelHumidity: meteo.relHumidity.Values,
		AirPressure: meteo.airPressure.Values,
		Shortwave:   meteo.shortwave.Values,
		Albedo:      meteo.albedo.Values,
		WaterTemp:   surface,
	})
	a.logger.Infof("surface fluxes computed, mean net %.1f W/m²", timeseries.Mean(set.Net))

	integrator := heatcontent.NewIntegrator(bath, water.Density)
	heatContent := integrator.Series(mooring.profiles())
	a.logger.Infof("heat content integrated, %d defined of %d samples",
		definedCount(heatContent), len(heatContent))

	closure := budget.NewClosure(bath.SurfaceArea(), water.Density)
	maxTemp := timeseries.Max(surface)
	if a.cfg.Inflow.MaxTemp != nil {
		maxTemp = *a.cfg.Inflow.MaxTemp
	}
	traj := budget.LinearRamp(a.cfg.Inflow.BaselineTemp, maxTemp)
	result := closure.Infer(times, heatContent, set.Net, traj)
	a.logger.Infof("budget closed: inflow ramp %.1f to %.1f °C, mean inferred flow %.4f m³/s",
		a.cfg.Inflow.BaselineTemp, maxTemp, timeseries.Mean(result.Flow))

	return a.writeOutputs(ctx, from, to, times, set, heatContent, result)
}

func (a *App) writeOutputs(ctx context.Context, from, to time.Time, times []time.Time,
	set fluxes.Set, heatContent []float64, result budget.Result) error {

	run := storage.NewRun(a.cfg.Lake.Name, from, to)
	res := storage.Results{
		Times:       times,
		Shortwave:   set.Shortwave,
		LongwaveIn:  set.LongwaveIn,
		LongwaveOut: set.LongwaveOut,
		Latent:      set.Latent,
		Sensible:    set.Sensible,
		Net:         set.Net,
		HeatContent: heatContent,
		DHdt:        result.DHdt,
		Residual:    result.Residual,
		InflowTemp:  result.InflowTemp,
		Flow:        result.Flow,
	}
	daily, err := dailyAggregates(times, result, set.Net)
	if err != nil {
		return err
	}

	backends, err := a.openBackends()
	if err != nil {
		return err
	}
	for _, b := range backends {
		defer b.Close()
	}

	for _, b := range backends {
		if err := b.WriteResults(ctx, run, res); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		if err := b.WriteDaily(ctx, run, daily); err != nil {
			return fmt.Errorf("writing daily aggregates: %w", err)
		}
	}
	a.logger.Infof("run %s written to %d backend(s)", run.ID, len(backends))
	return nil
}

func (a *App) openBackends() ([]storage.Backend, error) {
	var backends []storage.Backend
	if dir := a.cfg.Outputs.CSVDir; dir != "" {
		b, err := storage.NewCSVBackend(dir)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}
	if path := a.cfg.Outputs.SQLite; path != "" {
		b, err := storage.NewSQLiteBackend(path)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}
	return backends, nil
}

// dailyAggregates reduces the budget series to daily means; flow is
// additionally reported in m³/h.
func dailyAggregates(times []time.Time, result budget.Result, net []float64) (storage.Daily, error) {
	mk := func(values []float64) (timeseries.Series, error) {
		s, err := timeseries.New(times, values)
		if err != nil {
			return timeseries.Series{}, err
		}
		return s.DailyMean(), nil
	}

	dhdt, err := mk(result.DHdt)
	if err != nil {
		return storage.Daily{}, err
	}
	netDaily, err := mk(net)
	if err != nil {
		return storage.Daily{}, err
	}
	residual, err := mk(result.Residual)
	if err != nil {
		return storage.Daily{}, err
	}
	flow, err := mk(result.Flow)
	if err != nil {
		return storage.Daily{}, err
	}
	flow = flow.Scale(3600)

	return storage.Daily{
		Times:    dhdt.Times,
		DHdt:     dhdt.Values,
		Net:      netDaily.Values,
		Residual: residual.Values,
		Flow:     flow.Values,
	}, nil
}

// analysisWindow intersects the records' overlap with the configured
// bounds.
func (a *App) analysisWindow(mooring *mooringData, meteo *meteoData) (time.Time, time.Time, error) {
	from, to, ok := timeseries.CommonWindow(meteo.airTemp, mooring.temps[0], mooring.depths[0])
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("meteo and mooring records do not overlap")
	}

	cfgFrom, cfgTo, err := a.cfg.Analysis.Window()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !cfgFrom.IsZero() && cfgFrom.After(from) {
		from = cfgFrom
	}
	if !cfgTo.IsZero() && cfgTo.Before(to) {
		to = cfgTo
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("configured window [%s, %s] excludes all data", cfgFrom, cfgTo)
	}
	return from, to, nil
}

func checkAligned(mooring *mooringData, meteo *meteoData) error {
	n := meteo.airTemp.Len()
	for i := range mooring.temps {
		if got := mooring.temps[i].Len(); got != n {
			return fmt.Errorf("mooring and meteo series misaligned after clipping (%d vs %d samples)", got, n)
		}
		if got := mooring.depths[i].Len(); got != n {
			return fmt.Errorf("mooring depth record misaligned after clipping (%d vs %d samples)", got, n)
		}
	}
	return nil
}

func definedCount(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}
