package repositories

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"dock-allocation-service/internal/domain"
)

// In-memory implementation of the ReportRepository port, used when no
// database is configured.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report
	seq     map[string]int
	next    int
}

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{
		reports: make(map[string]*domain.Report),
		seq:     make(map[string]int),
	}
}

func (m *MemoryReportRepository) SaveReport(_ context.Context, r *domain.Report) error {
	if r == nil || r.RunID == "" {
		return errors.New("save report: run id must be non-empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.seq[r.RunID]; !ok {
		m.seq[r.RunID] = m.next
		m.next++
	}
	m.reports[r.RunID] = r
	return nil
}

func (m *MemoryReportRepository) GetReport(_ context.Context, runID string) (*domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[runID]
	if !ok {
		return nil, fmt.Errorf("get report %s: %w", runID, domain.ErrNotFound)
	}
	return r, nil
}

func (m *MemoryReportRepository) ListReports(_ context.Context, limit int) ([]*domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Report, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	// Newest first; saves within the same instant keep reverse save order.
	slices.SortFunc(out, func(a, b *domain.Report) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(m.seq[b.RunID], m.seq[a.RunID])
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
