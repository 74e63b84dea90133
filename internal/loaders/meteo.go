package loaders

import (
	"fmt"
	"time"
)

// Meteo column names expected in the meteorological export.
const (
	colAirTemp     = "AirTemp_degC"
	colCloudCover  = "Clouds_Tot"
	colWind10      = "WS10_ms"
	colRelHumidity = "RH_%"
	colAirPressure = "AirPress_hPa"
	colShortwave   = "Rad_Wm2"
	colAlbedo      = "Albedo"
)

// Meteo is the parsed meteorological record, one aligned slice per forcing
// variable.
type Meteo struct {
	Times       []time.Time
	AirTemp     []float64
	CloudCover  []float64
	Wind10      []float64
	RelHumidity []float64
	AirPressure []float64
	Shortwave   []float64
	Albedo      []float64
}

// ReadMeteo parses the meteorological CSV. All seven forcing columns must
// be present; gaps inside them are carried as NaN.
func ReadMeteo(path string) (*Meteo, error) {
	table, err := ReadTimeTable(path)
	if err != nil {
		return nil, err
	}

	m := &Meteo{Times: table.Times}
	for _, c := range []struct {
		name string
		dst  *[]float64
	}{
		{colAirTemp, &m.AirTemp},
		{colCloudCover, &m.CloudCover},
		{colWind10, &m.Wind10},
		{colRelHumidity, &m.RelHumidity},
		{colAirPressure, &m.AirPressure},
		{colShortwave, &m.Shortwave},
		{colAlbedo, &m.Albedo},
	} {
		values, err := table.Column(c.name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		*c.dst = values
	}
	return m, nil
}
