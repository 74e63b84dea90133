package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores output series in a SQLite database, one row per
// timestamp, keyed by run ID so successive runs coexist.
type SQLiteBackend struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	lake TEXT NOT NULL,
	window_start TIMESTAMP NOT NULL,
	window_end TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL REFERENCES runs(id),
	time TIMESTAMP NOT NULL,
	hs REAL, ha REAL, hw REAL, he REAL, hc REAL, hnet REAL,
	heat_content REAL,
	dhdt REAL,
	residual REAL,
	inflow_temp REAL,
	flow REAL,
	PRIMARY KEY (run_id, time)
);
CREATE TABLE IF NOT EXISTS results_daily (
	run_id TEXT NOT NULL REFERENCES runs(id),
	day TIMESTAMP NOT NULL,
	dhdt REAL, hnet REAL, residual REAL, flow_m3h REAL,
	PRIMARY KEY (run_id, day)
);
`

// NewSQLiteBackend opens (creating if necessary) the database and ensures
// the schema exists.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// WriteResults inserts the run record and all per-sample rows in one
// transaction.
func (s *SQLiteBackend) WriteResults(ctx context.Context, run Run, res Results) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, lake, window_start, window_end, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Lake, run.Start, run.End, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, time, hs, ha, hw, he, hc, hnet,
		                      heat_content, dhdt, residual, inflow_temp, flow)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i, t := range res.Times {
		_, err = stmt.ExecContext(ctx, run.ID, t,
			nullable(res.Shortwave[i]), nullable(res.LongwaveIn[i]), nullable(res.LongwaveOut[i]),
			nullable(res.Latent[i]), nullable(res.Sensible[i]), nullable(res.Net[i]),
			nullable(res.HeatContent[i]), nullable(res.DHdt[i]), nullable(res.Residual[i]),
			nullable(res.InflowTemp[i]), nullable(res.Flow[i]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert result row: %w", err)
		}
	}

	return tx.Commit()
}

// WriteDaily inserts the daily aggregate rows.
func (s *SQLiteBackend) WriteDaily(ctx context.Context, run Run, daily Daily) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results_daily (run_id, day, dhdt, hnet, residual, flow_m3h)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i, t := range daily.Times {
		_, err = stmt.ExecContext(ctx, run.ID, t,
			nullable(daily.DHdt[i]), nullable(daily.Net[i]),
			nullable(daily.Residual[i]), nullable(daily.Flow[i]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert daily row: %w", err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}

// nullable maps NaN to NULL so missing data stays missing in the database.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
