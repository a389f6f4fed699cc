// Package metrics persists per-stage generation timings to SQLite.
package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS generation_metrics (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	stage      TEXT    NOT NULL,
	latency_ms INTEGER NOT NULL,
	ok         INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generation_metrics_created_at
	ON generation_metrics (created_at);
`

// Store handles persistence of generation metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the metrics database at dbPath and applies
// the schema.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordStage saves one generation-stage timing. It satisfies
// plan.StageRecorder.
func (s *Store) RecordStage(stage string, latency time.Duration, ok bool) error {
	_, err := s.db.Exec(
		`INSERT INTO generation_metrics (stage, latency_ms, ok, created_at) VALUES (?, ?, ?, ?)`,
		stage, latency.Milliseconds(), ok, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert metric: %w", err)
	}
	return nil
}

// StageSummary aggregates timings for one stage.
type StageSummary struct {
	Stage        string
	Count        int64
	Failures     int64
	AvgLatencyMS float64
}

// Summaries returns per-stage aggregates for the last N days.
func (s *Store) Summaries(days int) ([]StageSummary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.Query(
		`SELECT stage, COUNT(*), SUM(CASE WHEN ok THEN 0 ELSE 1 END), AVG(latency_ms)
		 FROM generation_metrics WHERE created_at >= ? GROUP BY stage ORDER BY stage`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var results []StageSummary
	for rows.Next() {
		var sum StageSummary
		if err := rows.Scan(&sum.Stage, &sum.Count, &sum.Failures, &sum.AvgLatencyMS); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		results = append(results, sum)
	}
	return results, rows.Err()
}

// Cleanup removes records older than N days and returns how many were
// deleted.
func (s *Store) Cleanup(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.Exec(`DELETE FROM generation_metrics WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old metrics: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
