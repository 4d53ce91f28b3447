/*
Package sqlite provides a SQLite-backed implementation of dataset.Store.

PURPOSE:
  Persists simulation runs so they can be listed, inspected and exported
  later without re-simulating. The run header (status, config, persons,
  summaries) lives in one row of the runs table; ledger rows are stored
  individually so per-person queries hit an index instead of decoding the
  whole run.

KEY TABLES:
  runs:        One row per run: status, config and derived tables as JSON
  ledger_rows: One row per ledger row, keyed by (run_id, seq), with the
               filter columns broken out and the full row as JSON

INDEXES:
  - idx_ledger_rows_subject: RowsForPerson (hot path for the API)
  - idx_ledger_rows_comptype: Event filtering by comptype
  - idx_runs_created_at: ListRuns ordering

WRITES:
  SaveRun upserts the header and replaces the run's rows inside one SQL
  transaction with a prepared insert, so a day-batched ledger of tens of
  thousands of rows is written in a single commit.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety; the API's run worker writes while
  handlers read.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the writer.

USAGE:
  store, err := sqlite.New("./data/wfsim.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - dataset/store.go: Interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/workforce-sim/analytics"
	"github.com/warp/workforce-sim/config"
	"github.com/warp/workforce-sim/dataset"
	"github.com/warp/workforce-sim/ledger"
	"github.com/warp/workforce-sim/personnel"
)

// Store implements dataset.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Runs (one per simulation)
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		error TEXT,
		seed INTEGER NOT NULL,
		days INTEGER NOT NULL DEFAULT 0,
		priming_days INTEGER NOT NULL DEFAULT 0,
		elapsed_ns INTEGER NOT NULL DEFAULT 0,
		row_count INTEGER NOT NULL DEFAULT 0,
		config_json TEXT NOT NULL,
		persons_json TEXT,
		summaries_json TEXT,
		accuracy_json TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at
		ON runs(created_at DESC);

	-- Ledger rows
	CREATE TABLE IF NOT EXISTS ledger_rows (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		day_index INTEGER NOT NULL,
		date TEXT NOT NULL,
		subject_id INTEGER NOT NULL,
		comptype TEXT NOT NULL,
		conf_mat TEXT,
		row_json TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_rows_subject
		ON ledger_rows(run_id, subject_id, seq);
	CREATE INDEX IF NOT EXISTS idx_ledger_rows_comptype
		ON ledger_rows(run_id, comptype);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RUNS (dataset.Store interface)
// =============================================================================

// SaveRun inserts or replaces a run and its rows atomically.
func (s *Store) SaveRun(ctx context.Context, d *dataset.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	configJSON, err := json.Marshal(d.Config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	personsJSON, _ := json.Marshal(d.Persons)
	summariesJSON, _ := json.Marshal(d.Summaries)
	var accuracyJSON []byte
	if d.Accuracy != nil {
		accuracyJSON, _ = json.Marshal(d.Accuracy)
	}
	var seed int64
	if d.Config != nil {
		seed = d.Config.Seed()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO runs (id, status, error, seed, days, priming_days, elapsed_ns, row_count,
		                  config_json, persons_json, summaries_json, accuracy_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			days = excluded.days,
			priming_days = excluded.priming_days,
			elapsed_ns = excluded.elapsed_ns,
			row_count = excluded.row_count,
			config_json = excluded.config_json,
			persons_json = excluded.persons_json,
			summaries_json = excluded.summaries_json,
			accuracy_json = excluded.accuracy_json,
			updated_at = excluded.updated_at
	`
	_, err = tx.ExecContext(ctx, query,
		d.ID, d.Status, nullString(d.Error), seed, d.Days, d.PrimingDays, int64(d.Elapsed), len(d.Rows),
		string(configJSON), string(personsJSON), string(summariesJSON), nullString(string(accuracyJSON)),
		formatTime(d.CreatedAt), formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM ledger_rows WHERE run_id = ?", d.ID); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}
	if err := insertRows(ctx, tx, d.ID, d.Rows); err != nil {
		return err
	}

	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, runID string, rows []ledger.Row) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ledger_rows (run_id, seq, day_index, date, subject_id, comptype, conf_mat, row_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]
		rowJSON, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", r.Seq, err)
		}
		_, err = stmt.ExecContext(ctx,
			runID, r.Seq, r.DayIndex, r.Date, int(r.Subject.ID), string(r.Comptype()),
			nullString(string(r.ConfMat)), string(rowJSON),
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("duplicate row seq %d in run %s: %w", r.Seq, runID, err)
			}
			return fmt.Errorf("failed to insert row %d: %w", r.Seq, err)
		}
	}
	return nil
}

// GetRun loads a run with all its rows.
func (s *Store) GetRun(ctx context.Context, id string) (*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		d                          dataset.Dataset
		status, configJSON         string
		createdAt, updatedAt       string
		errMsg, accuracyJSON       sql.NullString
		personsJSON, summariesJSON sql.NullString
		elapsed                    int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, status, error, days, priming_days, elapsed_ns, config_json,
		       persons_json, summaries_json, accuracy_json, created_at, updated_at
		FROM runs WHERE id = ?`, id,
	).Scan(&d.ID, &status, &errMsg, &d.Days, &d.PrimingDays, &elapsed, &configJSON,
		&personsJSON, &summariesJSON, &accuracyJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", dataset.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	d.Status = dataset.Status(status)
	d.Error = errMsg.String
	d.Elapsed = time.Duration(elapsed)
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)

	d.Config = &config.Config{}
	if err := json.Unmarshal([]byte(configJSON), d.Config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := decodeOptional(personsJSON, &d.Persons); err != nil {
		return nil, fmt.Errorf("failed to decode persons: %w", err)
	}
	if err := decodeOptional(summariesJSON, &d.Summaries); err != nil {
		return nil, fmt.Errorf("failed to decode summaries: %w", err)
	}
	if accuracyJSON.Valid {
		d.Accuracy = &analytics.Accuracy{}
		if err := json.Unmarshal([]byte(accuracyJSON.String), d.Accuracy); err != nil {
			return nil, fmt.Errorf("failed to decode accuracy: %w", err)
		}
	}

	d.Rows, err = s.queryRows(ctx, "SELECT row_json FROM ledger_rows WHERE run_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListRuns returns every run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]dataset.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, error, seed, days, row_count, persons_json, created_at
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []dataset.Info
	for rows.Next() {
		var (
			info        dataset.Info
			status      string
			errMsg      sql.NullString
			personsJSON sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&info.ID, &status, &errMsg, &info.Seed, &info.Days, &info.Rows, &personsJSON, &createdAt); err != nil {
			return nil, err
		}
		info.Status = dataset.Status(status)
		info.Error = errMsg.String
		info.CreatedAt = parseTime(createdAt)
		var persons []personnel.Record
		if err := decodeOptional(personsJSON, &persons); err == nil {
			info.Persons = len(persons)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// UpdateStatus changes a run's status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status dataset.Status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE runs SET status = ?, error = ?, updated_at = ? WHERE id = ?",
		status, nullString(errMsg), formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", dataset.ErrRunNotFound, id)
	}
	return nil
}

// RowsForPerson returns one subject's rows using the subject index.
func (s *Store) RowsForPerson(ctx context.Context, id string, person personnel.ID) ([]ledger.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", dataset.ErrRunNotFound, id)
	}
	return s.queryRows(ctx,
		"SELECT row_json FROM ledger_rows WHERE run_id = ? AND subject_id = ? ORDER BY seq",
		id, int(person))
}

// DeleteRun removes a run and its rows.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ledger_rows WHERE run_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", dataset.ErrRunNotFound, id)
	}
	return tx.Commit()
}

func (s *Store) queryRows(ctx context.Context, query string, args ...any) ([]ledger.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out []ledger.Row
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r ledger.Row
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("failed to decode row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ dataset.Store = (*Store)(nil)

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func decodeOptional(ns sql.NullString, v any) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), v)
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
