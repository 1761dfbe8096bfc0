package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"dock-allocation-service/internal/domain"
)

// Initialize the Postgres schema for allocation reports.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createReportsQuery := `
	CREATE TABLE IF NOT EXISTS allocation_reports (
		run_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		served INTEGER NOT NULL,
		infeasible INTEGER NOT NULL,
		unserved INTEGER NOT NULL,
		report JSONB NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_allocation_reports_created_at
	ON allocation_reports (created_at DESC);
	`

	statements := []string{
		createReportsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Load reports exported as a JSON array (for example by `dockalloc run
// --output json`) into the database. Existing run ids are overwritten.
func ImportReportsJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("import reports: read %q: %w", jsonPath, err)
	}

	var reports []*domain.Report
	if err := json.Unmarshal(bytes, &reports); err != nil {
		return 0, fmt.Errorf("import reports: parse json: %w", err)
	}

	for i, r := range reports {
		if r == nil || strings.TrimSpace(r.RunID) == "" {
			return 0, fmt.Errorf("import reports: report at index %d has no run_id", i+1)
		}
		if r.CreatedAt.IsZero() {
			return 0, fmt.Errorf("import reports: report %s has no created_at", r.RunID)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import reports: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertReportQuery)
	if err != nil {
		return 0, fmt.Errorf("import reports: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range reports {
		args, err := reportArgs(r)
		if err != nil {
			return 0, fmt.Errorf("import reports: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("import reports: insert run_id=%s: %w", r.RunID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import reports: commit tx: %w", err)
	}

	return len(reports), nil
}
