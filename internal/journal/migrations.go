package journal

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// schemaStep is one embedded SQL file. Steps apply in file-name order and are
// recorded in journal_schema so each runs once per database.
type schemaStep struct {
	name string
	body string
}

func embeddedSteps() ([]schemaStep, error) {
	files, err := fs.Glob(schemaFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("journal schema: list steps: %w", err)
	}
	sort.Strings(files)

	steps := make([]schemaStep, 0, len(files))
	for _, file := range files {
		body, err := schemaFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("journal schema: read %s: %w", file, err)
		}
		steps = append(steps, schemaStep{
			name: strings.TrimSuffix(path.Base(file), ".sql"),
			body: string(body),
		})
	}
	return steps, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	steps, err := embeddedSteps()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("journal schema: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS journal_schema (step TEXT PRIMARY KEY, applied_at TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("journal schema: create bookkeeping table: %w", err)
	}

	applied, err := appliedSteps(ctx, tx)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(timeLayout)
	for _, step := range steps {
		if applied[step.name] {
			continue
		}
		if _, err := tx.ExecContext(ctx, step.body); err != nil {
			return fmt.Errorf("journal schema: step %s: %w", step.name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO journal_schema (step, applied_at) VALUES (?, ?)`, step.name, now); err != nil {
			return fmt.Errorf("journal schema: mark %s applied: %w", step.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("journal schema: commit: %w", err)
	}
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func appliedSteps(ctx context.Context, q queryer) (map[string]bool, error) {
	rows, err := q.QueryContext(ctx, `SELECT step FROM journal_schema`)
	if err != nil {
		return nil, fmt.Errorf("journal schema: list applied steps: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("journal schema: scan step: %w", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal schema: iterate steps: %w", err)
	}
	return applied, nil
}
