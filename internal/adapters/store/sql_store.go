package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/baditaflorin/go_titular_frequency/internal/core/domain"
	"github.com/baditaflorin/go_titular_frequency/internal/ports"
)

// Config holds the connection settings for the report store.
type Config struct {
	// Driver is one of "sqlite3", "mysql" or "postgres".
	Driver string
	// DSN is the driver-specific data source name; for sqlite3 it is a
	// file path.
	DSN string
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	switch c.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported driver: %s", c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("empty DSN for driver %s", c.Driver)
	}
	return nil
}

// SQLStore persists frequency reports through database/sql. The
// frequency core never depends on it; storing a run is an optional
// step after the report is computed.
type SQLStore struct {
	db     *sql.DB
	driver string
	logger ports.Logger
}

// Open connects to the configured database and creates the schema if
// it does not exist yet.
func Open(config Config, logger ports.Logger) (*SQLStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", config.Driver, err)
	}

	s := &SQLStore{db: db, driver: config.Driver, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	logger.Info("Report store ready", "driver", config.Driver)
	return s, nil
}

func (s *SQLStore) migrate() error {
	var runID string
	switch s.driver {
	case "mysql":
		runID = "BIGINT PRIMARY KEY AUTO_INCREMENT"
	case "postgres":
		runID = "BIGSERIAL PRIMARY KEY"
	default:
		runID = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS runs (
			id %s,
			created_at VARCHAR(40) NOT NULL,
			total_titles INTEGER NOT NULL,
			distinct_titles INTEGER NOT NULL,
			skipped_empty INTEGER NOT NULL
		)`, runID),
		`CREATE TABLE IF NOT EXISTS run_entries (
			run_id BIGINT NOT NULL,
			titular VARCHAR(512) NOT NULL,
			total INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveReport persists a report and returns its run identifier.
func (s *SQLStore) SaveReport(ctx context.Context, report domain.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	var runID int64
	if s.driver == "postgres" {
		err = tx.QueryRowContext(ctx,
			`INSERT INTO runs (created_at, total_titles, distinct_titles, skipped_empty)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			createdAt, report.TotalTitles, report.DistinctTitles, report.SkippedEmpty,
		).Scan(&runID)
		if err != nil {
			return 0, fmt.Errorf("inserting run: %w", err)
		}
	} else {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO runs (created_at, total_titles, distinct_titles, skipped_empty)
			 VALUES (?, ?, ?, ?)`,
			createdAt, report.TotalTitles, report.DistinctTitles, report.SkippedEmpty,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting run: %w", err)
		}
		runID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading run id: %w", err)
		}
	}

	insertEntry := s.rebind(`INSERT INTO run_entries (run_id, titular, total) VALUES (?, ?, ?)`)
	for _, entry := range report.Entries {
		if _, err := tx.ExecContext(ctx, insertEntry, runID, entry.Title, entry.Count); err != nil {
			return 0, fmt.Errorf("inserting entry %q: %w", entry.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing report: %w", err)
	}

	s.logger.Info("Report saved",
		"run_id", runID,
		"entries", len(report.Entries),
	)
	return runID, nil
}

// LoadReport loads a previously saved report by run identifier.
func (s *SQLStore) LoadReport(ctx context.Context, runID int64) (domain.Report, error) {
	var report domain.Report

	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT total_titles, distinct_titles, skipped_empty FROM runs WHERE id = ?`),
		runID,
	).Scan(&report.TotalTitles, &report.DistinctTitles, &report.SkippedEmpty)
	if err != nil {
		return domain.Report{}, fmt.Errorf("loading run %d: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT titular, total FROM run_entries WHERE run_id = ? ORDER BY total DESC, titular ASC`),
		runID,
	)
	if err != nil {
		return domain.Report{}, fmt.Errorf("loading entries for run %d: %w", runID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.Entry
		if err := rows.Scan(&entry.Title, &entry.Count); err != nil {
			return domain.Report{}, fmt.Errorf("scanning entry: %w", err)
		}
		report.Entries = append(report.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return domain.Report{}, fmt.Errorf("iterating entries: %w", err)
	}

	return report, nil
}

// Close closes the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites "?" placeholders to the "$n" form for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
