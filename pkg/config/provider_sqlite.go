package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the SQLite database
func (s *SQLiteProvider) LoadConfig() (*Config, error) {
	config := &Config{}

	if err := s.loadLake(config); err != nil {
		return nil, fmt.Errorf("failed to load lake config: %w", err)
	}
	if err := s.loadInputs(config); err != nil {
		return nil, fmt.Errorf("failed to load inputs config: %w", err)
	}
	if err := s.loadAnalysis(config); err != nil {
		return nil, fmt.Errorf("failed to load analysis config: %w", err)
	}
	if err := s.loadInflow(config); err != nil {
		return nil, fmt.Errorf("failed to load inflow config: %w", err)
	}
	if err := s.loadOutputs(config); err != nil {
		return nil, fmt.Errorf("failed to load outputs config: %w", err)
	}
	if err := s.loadCoefficients(config); err != nil {
		return nil, fmt.Errorf("failed to load coefficient overrides: %w", err)
	}

	if err := config.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", s.dbPath, err)
	}
	return config, nil
}

func (s *SQLiteProvider) loadLake(config *Config) error {
	row := s.db.QueryRow(`SELECT name, latitude, longitude, altitude FROM lake LIMIT 1`)
	var lat, lon, alt sql.NullFloat64
	if err := row.Scan(&config.Lake.Name, &lat, &lon, &alt); err != nil {
		return err
	}
	config.Lake.Latitude = lat.Float64
	config.Lake.Longitude = lon.Float64
	config.Lake.Altitude = alt.Float64
	return nil
}

func (s *SQLiteProvider) loadInputs(config *Config) error {
	row := s.db.QueryRow(`SELECT bathymetry, mooring_temperature, mooring_depth, meteo FROM inputs LIMIT 1`)
	return row.Scan(
		&config.Inputs.Bathymetry,
		&config.Inputs.MooringTemperature,
		&config.Inputs.MooringDepth,
		&config.Inputs.Meteo,
	)
}

func (s *SQLiteProvider) loadAnalysis(config *Config) error {
	row := s.db.QueryRow(`SELECT start, "end", resample_minutes, estimate_cloud_cover FROM analysis LIMIT 1`)
	var start, end sql.NullString
	var resample sql.NullInt64
	var estimate sql.NullBool
	err := row.Scan(&start, &end, &resample, &estimate)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	config.Analysis.Start = start.String
	config.Analysis.End = end.String
	config.Analysis.ResampleMinutes = int(resample.Int64)
	config.Analysis.EstimateCloudCover = estimate.Bool
	return nil
}

func (s *SQLiteProvider) loadInflow(config *Config) error {
	row := s.db.QueryRow(`SELECT baseline_temp, max_temp FROM inflow LIMIT 1`)
	var baseline, maxTemp sql.NullFloat64
	err := row.Scan(&baseline, &maxTemp)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	config.Inflow.BaselineTemp = baseline.Float64
	if maxTemp.Valid {
		v := maxTemp.Float64
		config.Inflow.MaxTemp = &v
	}
	return nil
}

func (s *SQLiteProvider) loadOutputs(config *Config) error {
	row := s.db.QueryRow(`SELECT csv_dir, sqlite FROM outputs LIMIT 1`)
	var csvDir, sqlitePath sql.NullString
	err := row.Scan(&csvDir, &sqlitePath)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	config.Outputs.CSVDir = csvDir.String
	config.Outputs.SQLite = sqlitePath.String
	return nil
}

func (s *SQLiteProvider) loadCoefficients(config *Config) error {
	rows, err := s.db.Query(`SELECT name, value FROM coefficients`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return err
		}
		if config.Coefficients == nil {
			config.Coefficients = make(map[string]float64)
		}
		config.Coefficients[name] = value
	}
	return rows.Err()
}

// IsReadOnly returns false; the database can hold editable settings
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
