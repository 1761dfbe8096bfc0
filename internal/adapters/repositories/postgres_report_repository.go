package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/platform/obs"
)

const upsertReportQuery = `
	INSERT INTO allocation_reports (
		run_id,
		created_at,
		served,
		infeasible,
		unserved,
		report
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (run_id) DO UPDATE
	SET created_at = EXCLUDED.created_at,
		served = EXCLUDED.served,
		infeasible = EXCLUDED.infeasible,
		unserved = EXCLUDED.unserved,
		report = EXCLUDED.report;
	`

// Postgres-backed implementation of the ReportRepository port. Reports are
// stored whole as JSONB with the summary counters broken out for querying.
type PostgresReportRepository struct{ DB *sql.DB }

func NewPostgresReportRepository(db *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{DB: db}
}

func reportArgs(r *domain.Report) ([]any, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode report %s: %w", r.RunID, err)
	}
	return []any{
		r.RunID,
		r.CreatedAt,
		r.Summary.Served,
		r.Summary.Infeasible,
		r.Summary.Unserved,
		payload,
	}, nil
}

func (s *PostgresReportRepository) SaveReport(ctx context.Context, r *domain.Report) (err error) {
	defer obs.Time(ctx, "reports.Save")(&err)

	if s.DB == nil {
		return errors.New("postgres report repository: DB is nil")
	}
	if r == nil || r.RunID == "" {
		return errors.New("save report: run id must be non-empty")
	}

	args, err := reportArgs(r)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	if _, err := s.DB.ExecContext(ctx, upsertReportQuery, args...); err != nil {
		return fmt.Errorf("save report: insert run_id=%s: %w", r.RunID, err)
	}
	return nil
}

func (s *PostgresReportRepository) GetReport(ctx context.Context, runID string) (*domain.Report, error) {
	if s.DB == nil {
		return nil, errors.New("postgres report repository: DB is nil")
	}

	query := `
	SELECT report
	FROM allocation_reports
	WHERE run_id = $1;
	`

	var payload []byte
	err := s.DB.QueryRowContext(ctx, query, runID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get report %s: %w", runID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", runID, err)
	}

	return decodeReport(payload)
}

// Return the most recent reports first. A non-positive limit returns all.
func (s *PostgresReportRepository) ListReports(ctx context.Context, limit int) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, "reports.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres report repository: DB is nil")
	}

	query := `
	SELECT report
	FROM allocation_reports
	ORDER BY created_at DESC, run_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += "LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: query allocation_reports table: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0, 16)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("list reports: scan row: %w", err)
		}
		r, err := decodeReport(payload)
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: row iteration: %w", err)
	}

	return reports, nil
}

func decodeReport(payload []byte) (*domain.Report, error) {
	var r domain.Report
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
