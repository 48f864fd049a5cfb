package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"vynlassets/internal/assets"
)

// ErrRunNotFound is returned when a run ID is unknown.
var ErrRunNotFound = errors.New("run not found")

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run summarizes one recorded run.
type Run struct {
	ID         string
	Operation  string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Copied     int
	Missing    int
	Bytes      int64
	Error      string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	timeLayout              = "2006-01-02T15:04:05.000000000Z07:00"
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores report and its entries. runErr, when non-nil, is saved as the
// run's failure reason; a partial report from a failed run is still recorded.
func (s *Store) Record(ctx context.Context, report *assets.Report, runErr error) error {
	if report == nil {
		return errors.New("record run: nil report")
	}
	finished := report.FinishedAt
	if finished.IsZero() {
		finished = time.Now().UTC()
	}
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin record tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, operation, dry_run, started_at, finished_at, copied, missing, bytes, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID,
			report.Operation,
			boolToInt(report.DryRun),
			report.StartedAt.UTC().Format(timeLayout),
			finished.UTC().Format(timeLayout),
			report.Count(assets.OutcomeCopied)+report.Count(assets.OutcomePlanned),
			report.Count(assets.OutcomeMissing),
			report.Bytes(),
			errText,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for i, entry := range report.Entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO entries (run_id, seq, kind, album, name, source, destination, outcome, bytes, detail)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				report.RunID, i, string(entry.Kind), entry.Album, entry.Name,
				entry.Source, entry.Destination, string(entry.Outcome), entry.Bytes, entry.Detail,
			); err != nil {
				return fmt.Errorf("insert entry %d: %w", i, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
		return nil
	})
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, operation, dry_run, started_at, finished_at, copied, missing, bytes, error
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Entries returns the recorded entries of a run in their original order.
func (s *Store) Entries(ctx context.Context, runID string) ([]assets.Entry, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM runs WHERE id = ?", runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("lookup run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, album, name, source, destination, outcome, bytes, detail
		 FROM entries WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []assets.Entry
	for rows.Next() {
		var (
			entry   assets.Entry
			kind    string
			outcome string
		)
		if err := rows.Scan(&kind, &entry.Album, &entry.Name, &entry.Source, &entry.Destination, &outcome, &entry.Bytes, &entry.Detail); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.Kind = assets.Kind(kind)
		entry.Outcome = assets.Outcome(outcome)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run      Run
		dryRun   int
		started  string
		finished string
	)
	if err := rows.Scan(&run.ID, &run.Operation, &dryRun, &started, &finished, &run.Copied, &run.Missing, &run.Bytes, &run.Error); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.DryRun = dryRun != 0
	var err error
	if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at for run %s: %w", run.ID, err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at for run %s: %w", run.ID, err)
	}
	return run, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
