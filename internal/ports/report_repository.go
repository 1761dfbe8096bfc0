package ports

import (
	"context"

	"dock-allocation-service/internal/domain"
)

// Port: a boundary for persisting allocation reports.
type ReportRepository interface {
	SaveReport(ctx context.Context, report *domain.Report) error
	// Return domain.ErrNotFound when no report has the given run id.
	GetReport(ctx context.Context, runID string) (*domain.Report, error)
	// Return the most recent reports first.
	ListReports(ctx context.Context, limit int) ([]*domain.Report, error)
}
