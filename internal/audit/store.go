// Package audit persists pipeline runs and their per-stage model traces to
// SQLite, so model behavior can be inspected after the fact. Persistence is
// best-effort bookkeeping: the pipeline works without it and failures here
// never block roadmap generation.
package audit

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database holding runs and stage traces.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the audit database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (used by
// tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "roadmap.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies embedded SQL migrations that haven't been run yet.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			return fmt.Errorf("parsing migration version from %q: %w", entry.Name(), err)
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}
	return nil
}

// SaveRun stores a run and its stage traces atomically.
func (s *Store) SaveRun(run Run, traces []StageTrace) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, persona, duration_days, total_estimated_hours, failed_stages, roadmap_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339), run.Persona,
		run.DurationDays, run.TotalEstimatedHours, run.FailedStages, run.RoadmapJSON,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, tr := range traces {
		_, err = tx.Exec(`
			INSERT INTO stage_traces (id, run_id, seq, stage, prompt, response, error, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			tr.ID, run.ID, tr.Seq, tr.Stage, tr.Prompt, tr.Response, tr.Error, tr.DurationMs,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting trace for stage %s: %w", tr.Stage, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first. limit <= 0 defaults
// to 20.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, created_at, persona, duration_days, total_estimated_hours, failed_stages, roadmap_json
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns the run with the given ID, or ErrNotFound.
func (s *Store) GetRun(id string) (Run, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, persona, duration_days, total_estimated_hours, failed_stages, roadmap_json
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("getting run %s: %w", id, err)
	}
	return run, nil
}

// GetTraces returns the stage traces for a run in pipeline order.
func (s *Store) GetTraces(runID string) ([]StageTrace, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, seq, stage, prompt, response, error, duration_ms
		FROM stage_traces WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing traces for run %s: %w", runID, err)
	}
	defer rows.Close()

	var traces []StageTrace
	for rows.Next() {
		var tr StageTrace
		if err := rows.Scan(&tr.ID, &tr.RunID, &tr.Seq, &tr.Stage, &tr.Prompt, &tr.Response, &tr.Error, &tr.DurationMs); err != nil {
			return nil, err
		}
		traces = append(traces, tr)
	}
	return traces, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt string
	if err := row.Scan(&run.ID, &createdAt, &run.Persona, &run.DurationDays,
		&run.TotalEstimatedHours, &run.FailedStages, &run.RoadmapJSON); err != nil {
		return Run{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		run.CreatedAt = t
	}
	return run, nil
}
