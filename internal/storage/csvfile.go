package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CSVBackend writes the output series as CSV files into a directory.
type CSVBackend struct {
	dir string
}

// NewCSVBackend creates the output directory if needed.
func NewCSVBackend(dir string) (*CSVBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return &CSVBackend{dir: dir}, nil
}

// WriteResults writes the per-sample series to heatbudget.csv.
func (c *CSVBackend) WriteResults(_ context.Context, run Run, res Results) error {
	header := []string{
		"Datetime", "Hs_Wm2", "Ha_Wm2", "Hw_Wm2", "He_Wm2", "Hc_Wm2", "Hnet_Wm2",
		"HC_Jm2", "dHdt_Wm2", "Residual_W", "InflowTemp_degC", "Flow_m3s",
	}
	columns := [][]float64{
		res.Shortwave, res.LongwaveIn, res.LongwaveOut, res.Latent, res.Sensible, res.Net,
		res.HeatContent, res.DHdt, res.Residual, res.InflowTemp, res.Flow,
	}
	return c.writeFile("heatbudget.csv", run, header, res.Times, columns)
}

// WriteDaily writes the daily aggregates to heatbudget_daily.csv.
func (c *CSVBackend) WriteDaily(_ context.Context, run Run, daily Daily) error {
	header := []string{"Datetime", "dHdt_Wm2", "Hnet_Wm2", "Residual_W", "Flow_m3h"}
	columns := [][]float64{daily.DHdt, daily.Net, daily.Residual, daily.Flow}
	return c.writeFile("heatbudget_daily.csv", run, header, daily.Times, columns)
}

func (c *CSVBackend) writeFile(name string, run Run, header []string, times []time.Time, columns [][]float64) error {
	path := filepath.Join(c.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"# run", run.ID, run.Lake}); err != nil {
		return err
	}
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, t := range times {
		record[0] = t.Format("2006-01-02 15:04:05")
		for j, col := range columns {
			record[j+1] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Close is a no-op for the CSV backend.
func (c *CSVBackend) Close() error {
	return nil
}
