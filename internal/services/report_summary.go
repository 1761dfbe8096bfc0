package services

import (
	"dock-allocation-service/internal/domain"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize counts outcomes and aggregates the served plans of a run.
func Summarize(allocations []*domain.Allocation) domain.Summary {
	var (
		s        domain.Summary
		totals   []float64
		vehicles []float64
	)
	s.DockArrivals = []int{}

	for _, a := range allocations {
		switch a.Outcome {
		case domain.OutcomeServed:
			s.Served++
			totals = append(totals, float64(a.Plan.TotalTime))
			vehicles = append(vehicles, float64(a.Plan.Vehicles))
			if t, ok := a.DockArrival(); ok {
				s.DockArrivals = append(s.DockArrivals, t)
			}
		case domain.OutcomeNoFeasibleAllocation:
			s.Infeasible++
		case domain.OutcomeNoWindowAvailable:
			s.Unserved++
		}
	}

	if len(totals) > 0 {
		s.MeanTotalTime = stat.Mean(totals, nil)
		s.Vehicles = int(floats.Sum(vehicles))
	}
	return s
}
