// Package loaders reads the analysis inputs from CSV exports: the
// bathymetric survey, the thermistor mooring (temperature and sensor
// depth) and the meteorological record. Loaders validate structural
// contracts loudly; missing values inside a record become NaN and flow
// through the pipeline as the missing-data state.
package loaders

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order for the first column of a time table.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Table is a wide time-indexed CSV: one timestamp column followed by one
// column per sensor or variable.
type Table struct {
	Times   []time.Time
	Columns []string
	Values  [][]float64 // indexed [row][column]
}

// ReadTimeTable parses a CSV whose first column is a timestamp and whose
// remaining columns are numeric. The header row names the columns. Empty
// cells and NaN markers become NaN; rows must be in chronological order.
func ReadTimeTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: need a timestamp column and at least one value column", path)
	}

	t := &Table{Columns: make([]string, len(header)-1)}
	for i, name := range header[1:] {
		t.Columns[i] = strings.TrimSpace(name)
	}

	var layout string
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		// csv.Reader reports ragged rows (field count differing from the
		// header) as a parse error carrying the offending line.
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		line++

		var ts time.Time
		if layout != "" {
			ts, err = time.Parse(layout, record[0])
		}
		if layout == "" || err != nil {
			ts, layout, err = parseTimestamp(record[0])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
		}
		if n := len(t.Times); n > 0 && ts.Before(t.Times[n-1]) {
			return nil, fmt.Errorf("%s:%d: timestamps out of order", path, line)
		}

		row := make([]float64, len(record)-1)
		for i, cell := range record[1:] {
			v, err := parseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: column %q: %w", path, line, t.Columns[i], err)
			}
			row[i] = v
		}
		t.Times = append(t.Times, ts)
		t.Values = append(t.Values, row)
	}

	if len(t.Times) == 0 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}
	return t, nil
}

// Column returns one named column as a value slice aligned with Times.
func (t *Table) Column(name string) ([]float64, error) {
	for j, col := range t.Columns {
		if col == name {
			out := make([]float64, len(t.Values))
			for i, row := range t.Values {
				out[i] = row[j]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("column %q not found (have %s)", name, strings.Join(t.Columns, ", "))
}

func parseTimestamp(s string) (time.Time, string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unrecognized timestamp %q", s)
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "NAN", "NA", "NULL":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable value %q", s)
	}
	return v, nil
}
