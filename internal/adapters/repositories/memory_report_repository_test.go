package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"dock-allocation-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(id string, at time.Time) *domain.Report {
	return &domain.Report{RunID: id, CreatedAt: at, Summary: domain.Summary{Served: 1}}
}

func TestMemoryReportRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveReport(ctx, report("a", base)))
	require.NoError(t, repo.SaveReport(ctx, report("b", base.Add(time.Minute))))
	require.NoError(t, repo.SaveReport(ctx, report("c", base)))

	got, err := repo.GetReport(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.RunID)

	_, err = repo.GetReport(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := repo.ListReports(ctx, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.RunID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)

	list, err = repo.ListReports(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemoryReportRepositoryRejectsMissingID(t *testing.T) {
	repo := NewMemoryReportRepository()
	assert.Error(t, repo.SaveReport(context.Background(), &domain.Report{}))
	assert.Error(t, repo.SaveReport(context.Background(), nil))
}

func TestMemoryReportRepositoryConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.SaveReport(ctx, report(fmt.Sprintf("r%d", i), time.Now()))
			_, _ = repo.ListReports(ctx, 5)
		}(i)
	}
	wg.Wait()

	list, err := repo.ListReports(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
