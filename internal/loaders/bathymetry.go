package loaders

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ceordonez/lakeflux/pkg/heatcontent"
)

// ReadBathymetry parses a bathymetric survey CSV into a validated curve.
// The file carries a header naming a depth column (containing "Depth") and
// a cumulative area column (containing "Area"); lines starting with '#'
// are survey metadata and are skipped. Contract violations (non-monotonic
// depth, area growing with depth) are rejected here, before any integral
// can go silently wrong.
func ReadBathymetry(path string) (*heatcontent.Bathymetry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.Comment = '#'

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}

	depthCol, areaCol := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch {
		case depthCol < 0 && strings.Contains(name, "depth"):
			depthCol = i
		case areaCol < 0 && strings.Contains(name, "area"):
			areaCol = i
		}
	}
	if depthCol < 0 || areaCol < 0 {
		return nil, fmt.Errorf("%s: header must name a Depth and an Area column, got %v", path, header)
	}

	var depths, areas []float64
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		line++
		if len(record) <= depthCol || len(record) <= areaCol {
			return nil, fmt.Errorf("%s:%d: short record", path, line)
		}
		depth, err := strconv.ParseFloat(strings.TrimSpace(record[depthCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad depth %q", path, line, record[depthCol])
		}
		area, err := strconv.ParseFloat(strings.TrimSpace(record[areaCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad area %q", path, line, record[areaCol])
		}
		depths = append(depths, depth)
		areas = append(areas, area)
	}

	bath, err := heatcontent.NewBathymetry(depths, areas)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bath, nil
}
