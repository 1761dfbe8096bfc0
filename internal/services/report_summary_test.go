package services

import (
	"testing"

	"dock-allocation-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func served(id string, vehicles, total int, arrival *int) *domain.Allocation {
	a := domain.NewAllocation(domain.Company{ID: id})
	_ = a.Assign(domain.TimeWindow{Begin: 6, End: 12})
	_ = a.Serve(domain.DockPlan{Vehicles: vehicles, TotalTime: total, DockArrival: arrival})
	return a
}

func TestSummarize(t *testing.T) {
	nine, seven := 9, 7

	rejected := domain.NewAllocation(domain.Company{ID: "r"})
	_ = rejected.Assign(domain.TimeWindow{Begin: 10, End: 12})
	_ = rejected.Reject()

	starved := domain.NewAllocation(domain.Company{ID: "s"})
	_ = starved.Starve()

	got := Summarize([]*domain.Allocation{
		served("a", 1, 12, &nine),
		rejected,
		served("b", 2, 20, nil),
		served("c", 3, 31, &seven),
		starved,
	})

	assert.Equal(t, 3, got.Served)
	assert.Equal(t, 1, got.Infeasible)
	assert.Equal(t, 1, got.Unserved)
	assert.Equal(t, 6, got.Vehicles)
	assert.InDelta(t, 21.0, got.MeanTotalTime, 1e-9)
	assert.Equal(t, []int{9, 7}, got.DockArrivals)
}

func TestSummarizeNothingServed(t *testing.T) {
	starved := domain.NewAllocation(domain.Company{ID: "s"})
	_ = starved.Starve()

	got := Summarize([]*domain.Allocation{starved})
	assert.Equal(t, domain.Summary{Unserved: 1, DockArrivals: []int{}}, got)

	assert.Equal(t, domain.Summary{DockArrivals: []int{}}, Summarize(nil))
}
