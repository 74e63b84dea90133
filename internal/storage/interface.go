// Package storage persists the computed heat budget series. Backends share
// one interface; the application fans results out to every configured
// backend. Undefined values stay undefined in the output: NaN in CSV, NULL
// in SQLite.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run identifies one pipeline execution.
type Run struct {
	ID        string
	Lake      string
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
}

// NewRun mints a Run with a fresh ID for the given lake and window.
func NewRun(lake string, start, end time.Time) Run {
	return Run{
		ID:        uuid.NewString(),
		Lake:      lake,
		Start:     start,
		End:       end,
		CreatedAt: time.Now().UTC(),
	}
}

// Results carries the per-sample output series, all aligned with Times.
type Results struct {
	Times []time.Time

	// Flux components and their sum, W/m²
	Shortwave   []float64
	LongwaveIn  []float64
	LongwaveOut []float64
	Latent      []float64
	Sensible    []float64
	Net         []float64

	HeatContent []float64 // J/m²
	DHdt        []float64 // W/m²
	Residual    []float64 // W
	InflowTemp  []float64 // °C, the assumed trajectory
	Flow        []float64 // m³/s
}

// Daily carries the daily-mean aggregates.
type Daily struct {
	Times    []time.Time
	DHdt     []float64 // W/m²
	Net      []float64 // W/m²
	Residual []float64 // W
	Flow     []float64 // m³/h
}

// Backend writes one run's output series.
type Backend interface {
	WriteResults(ctx context.Context, run Run, res Results) error
	WriteDaily(ctx context.Context, run Run, daily Daily) error
	Close() error
}
