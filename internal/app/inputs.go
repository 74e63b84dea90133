package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/ceordonez/lakeflux/internal/loaders"
	"github.com/ceordonez/lakeflux/internal/timeseries"
	"github.com/ceordonez/lakeflux/pkg/heatcontent"
)

// mooringData holds the resampled thermistor series, one temperature and
// one depth series per sensor, sharing a common grid.
type mooringData struct {
	labels []string
	temps  []timeseries.Series
	depths []timeseries.Series
}

// meteoData holds the resampled forcing series on their common grid.
type meteoData struct {
	airTemp     timeseries.Series
	cloudCover  timeseries.Series
	wind10      timeseries.Series
	relHumidity timeseries.Series
	airPressure timeseries.Series
	shortwave   timeseries.Series
	albedo      timeseries.Series
}

// loadMooring reads the mooring temperature and sensor-depth tables,
// averages them onto the analysis cadence and interpolates gaps in both
// directions. Each temperature column must have a matching depth column.
func (a *App) loadMooring(step time.Duration) (*mooringData, error) {
	tempTable, err := loaders.ReadTimeTable(a.cfg.Inputs.MooringTemperature)
	if err != nil {
		return nil, fmt.Errorf("loading mooring temperatures: %w", err)
	}
	depthTable, err := loaders.ReadTimeTable(a.cfg.Inputs.MooringDepth)
	if err != nil {
		return nil, fmt.Errorf("loading mooring depths: %w", err)
	}

	m := &mooringData{labels: tempTable.Columns}
	for _, label := range tempTable.Columns {
		tempCol, err := tempTable.Column(label)
		if err != nil {
			return nil, err
		}
		depthCol, err := depthTable.Column(label)
		if err != nil {
			return nil, fmt.Errorf("mooring depth record: %w", err)
		}

		temp, err := timeseries.New(tempTable.Times, tempCol)
		if err != nil {
			return nil, fmt.Errorf("mooring sensor %s: %w", label, err)
		}
		depth, err := timeseries.New(depthTable.Times, depthCol)
		if err != nil {
			return nil, fmt.Errorf("mooring sensor %s depths: %w", label, err)
		}
		m.temps = append(m.temps, temp.ResampleMean(step).Interpolate())
		m.depths = append(m.depths, depth.ResampleMean(step).Interpolate())
	}
	if len(m.temps) == 0 {
		return nil, fmt.Errorf("mooring record has no sensors")
	}
	a.logger.Infof("mooring: %d sensors (%s), %d samples after resampling",
		len(m.temps), strings.Join(m.labels, ", "), m.temps[0].Len())
	return m, nil
}

// loadMeteo reads the meteorological record and averages it onto the
// analysis cadence. Gaps are not interpolated: missing forcing propagates
// to missing fluxes.
func (a *App) loadMeteo(step time.Duration) (*meteoData, error) {
	raw, err := loaders.ReadMeteo(a.cfg.Inputs.Meteo)
	if err != nil {
		return nil, fmt.Errorf("loading meteo record: %w", err)
	}

	mk := func(values []float64) (timeseries.Series, error) {
		s, err := timeseries.New(raw.Times, values)
		if err != nil {
			return timeseries.Series{}, fmt.Errorf("meteo record: %w", err)
		}
		return s.ResampleMean(step), nil
	}

	m := &meteoData{}
	for _, c := range []struct {
		dst    *timeseries.Series
		values []float64
	}{
		{&m.airTemp, raw.AirTemp},
		{&m.cloudCover, raw.CloudCover},
		{&m.wind10, raw.Wind10},
		{&m.relHumidity, raw.RelHumidity},
		{&m.airPressure, raw.AirPressure},
		{&m.shortwave, raw.Shortwave},
		{&m.albedo, raw.Albedo},
	} {
		s, err := mk(c.values)
		if err != nil {
			return nil, err
		}
		*c.dst = s
	}
	return m, nil
}

func (m *mooringData) clip(from, to time.Time) {
	for i := range m.temps {
		m.temps[i] = m.temps[i].Clip(from, to)
		m.depths[i] = m.depths[i].Clip(from, to)
	}
}

func (m *meteoData) clip(from, to time.Time) {
	for _, s := range []*timeseries.Series{
		&m.airTemp, &m.cloudCover, &m.wind10, &m.relHumidity,
		&m.airPressure, &m.shortwave, &m.albedo,
	} {
		*s = s.Clip(from, to)
	}
}

// surfaceTemperature returns the series of the shallowest sensor, the
// water-surface temperature the flux model sees. The shallowest sensor is
// the one with the smallest mean measured depth over the window.
func (m *mooringData) surfaceTemperature() []float64 {
	best := 0
	bestDepth := timeseries.Mean(m.depths[0].Values)
	for i := 1; i < len(m.depths); i++ {
		d := timeseries.Mean(m.depths[i].Values)
		if d < bestDepth {
			best = i
			bestDepth = d
		}
	}
	return m.temps[best].Values
}

// profiles assembles one temperature profile per timestamp across the
// sensors.
func (m *mooringData) profiles() []heatcontent.Profile {
	n := m.temps[0].Len()
	out := make([]heatcontent.Profile, n)
	for i := 0; i < n; i++ {
		p := heatcontent.Profile{
			Depths: make([]float64, len(m.temps)),
			Temps:  make([]float64, len(m.temps)),
		}
		for j := range m.temps {
			p.Depths[j] = m.depths[j].Values[i]
			p.Temps[j] = m.temps[j].Values[i]
		}
		out[i] = p
	}
	return out
}
