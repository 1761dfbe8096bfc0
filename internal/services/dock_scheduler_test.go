package services

import (
	"context"
	"errors"
	"testing"

	"dock-allocation-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(bounds domain.DomainBounds, solver *scriptedSolver) *DockScheduler {
	return &DockScheduler{
		Bounds:     bounds,
		Escalation: &EscalationController{Solver: solver, Network: testNetwork()},
		PoolOrder:  PoolOrderLIFO,
	}
}

func companies(ids ...string) []domain.Company {
	out := make([]domain.Company, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Company{ID: id, Depot: 0})
	}
	return out
}

func TestSchedulerSingleCompanySplitsWindow(t *testing.T) {
	solver := &scriptedSolver{fn: func(p domain.RoutingProblem) (domain.Solution, error) {
		return arriveAt(p, 9), nil
	}}
	s := newScheduler(hours, solver)

	res, err := s.Run(context.Background(), companies("c1"))
	require.NoError(t, err)
	require.Len(t, res.Allocations, 1)

	a := res.Allocations[0]
	assert.Equal(t, domain.OutcomeServed, a.Outcome)
	assert.Equal(t, &domain.TimeWindow{Begin: 6, End: 12}, a.Window)
	assert.Equal(t, 1, a.Plan.Vehicles)
	assert.Equal(t, 12, a.Plan.TotalTime)
	arrival, ok := a.DockArrival()
	require.True(t, ok)
	assert.Equal(t, 9, arrival)
	assert.Contains(t, a.Plan.Trace, "1 Time(9,9)")

	// Pushed ascending, so the later window is claimed first.
	assert.Equal(t, []domain.TimeWindow{{10, 12}, {6, 8}}, res.Remaining)
}

func TestSchedulerRetiresWindowOnStrayArrival(t *testing.T) {
	solver := &scriptedSolver{fn: func(p domain.RoutingProblem) (domain.Solution, error) {
		return arriveAt(p, 5), nil
	}}
	s := newScheduler(hours, solver)

	res, err := s.Run(context.Background(), companies("c1", "c2"))
	require.NoError(t, err)
	require.Len(t, res.Allocations, 2)

	assert.Equal(t, domain.OutcomeServed, res.Allocations[0].Outcome)
	assert.Equal(t, domain.OutcomeNoWindowAvailable, res.Allocations[1].Outcome)
	assert.Empty(t, res.Remaining)
	assert.Len(t, solver.calls, 1)
}

func TestSchedulerPoolExhaustion(t *testing.T) {
	bounds := domain.DomainBounds{Opening: 6, Closing: 14, UnloadBuffer: 1}
	solver := &scriptedSolver{fn: arriveAfterOpening}
	s := newScheduler(bounds, solver)

	res, err := s.Run(context.Background(), companies("c1", "c2", "c3", "c4", "c5"))
	require.NoError(t, err)
	require.Len(t, res.Allocations, 5)

	wantWindows := []domain.TimeWindow{{6, 14}, {8, 14}, {10, 14}, {12, 14}}
	for i, w := range wantWindows {
		a := res.Allocations[i]
		assert.Equal(t, domain.OutcomeServed, a.Outcome, "company %d", i+1)
		assert.Equal(t, w, *a.Window, "company %d", i+1)
	}

	last := res.Allocations[4]
	assert.Equal(t, domain.OutcomeNoWindowAvailable, last.Outcome)
	assert.Nil(t, last.Window)
	assert.Nil(t, last.Plan)
	assert.Empty(t, res.Remaining)
	assert.Len(t, solver.calls, 4, "an unserved company never reaches the solver")
}

func TestSchedulerExhaustedEscalationDropsWindow(t *testing.T) {
	full, late := domain.TimeWindow{Begin: 6, End: 12}, domain.TimeWindow{Begin: 10, End: 12}
	solver := &scriptedSolver{fn: func(p domain.RoutingProblem) (domain.Solution, error) {
		w := p.Window(testDock)
		switch w {
		case full:
			return arriveAt(p, 9), nil
		case late:
			return domain.Solution{}, infeasible(p)
		default:
			return arriveAt(p, w.Begin), nil
		}
	}}
	s := newScheduler(hours, solver)

	res, err := s.Run(context.Background(), companies("c1", "c2", "c3"))
	require.NoError(t, err)

	rejected := res.Allocations[1]
	assert.Equal(t, domain.OutcomeNoFeasibleAllocation, rejected.Outcome)
	assert.Equal(t, late, *rejected.Window)
	assert.Nil(t, rejected.Plan)

	next := res.Allocations[2]
	assert.Equal(t, domain.OutcomeServed, next.Outcome)
	assert.Equal(t, domain.TimeWindow{Begin: 6, End: 8}, *next.Window)

	// c2 spent the full escalation, and its window never came back.
	assert.Len(t, solver.calls, 1+DefaultMaxVehicles+1)
	assert.Equal(t, []domain.TimeWindow{{7, 8}}, res.Remaining)
}

func TestSchedulerServedWithoutDockVisit(t *testing.T) {
	solver := &scriptedSolver{fn: func(p domain.RoutingProblem) (domain.Solution, error) {
		return domain.Solution{Routes: []domain.VehicleRoute{{Stops: []domain.RouteStop{{Location: 0}, {Location: 2, Earliest: 6}, {Location: 0, Earliest: 10}}}}}, nil
	}}
	s := newScheduler(hours, solver)

	res, err := s.Run(context.Background(), companies("c1", "c2"))
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeServed, res.Allocations[0].Outcome)
	_, ok := res.Allocations[0].DockArrival()
	assert.False(t, ok)
	// Nothing was split, so the second company finds the pool empty.
	assert.Equal(t, domain.OutcomeNoWindowAvailable, res.Allocations[1].Outcome)
}

func TestSchedulerDeterministic(t *testing.T) {
	run := func() ScheduleResult {
		solver := &scriptedSolver{fn: func(p domain.RoutingProblem) (domain.Solution, error) {
			w := p.Window(testDock)
			if p.Vehicles() < 2 && w.Span() < 3 {
				return domain.Solution{}, infeasible(p)
			}
			return arriveAt(p, (w.Begin+w.End)/2), nil
		}}
		res, err := newScheduler(domain.DomainBounds{Opening: 0, Closing: 40, UnloadBuffer: 2}, solver).
			Run(context.Background(), companies("a", "b", "c", "d", "e", "f", "g"))
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, run(), run())
}

func TestSchedulerEarliestFirstPool(t *testing.T) {
	solver := &scriptedSolver{fn: func(p domain.RoutingProblem) (domain.Solution, error) {
		return arriveAt(p, 9), nil
	}}
	s := newScheduler(hours, solver)
	s.PoolOrder = PoolOrderEarliest

	res, err := s.Run(context.Background(), companies("c1", "c2"))
	require.NoError(t, err)
	assert.Equal(t, domain.TimeWindow{Begin: 6, End: 8}, *res.Allocations[1].Window)
}

func TestSchedulerAbortsOnSolverFailure(t *testing.T) {
	boom := errors.New("connection reset")
	solver := &scriptedSolver{fn: func(p domain.RoutingProblem) (domain.Solution, error) {
		return domain.Solution{}, boom
	}}
	_, err := newScheduler(hours, solver).Run(context.Background(), companies("c1"))
	assert.ErrorIs(t, err, boom)
}

func TestSchedulerRejectsInvalidBounds(t *testing.T) {
	solver := &scriptedSolver{fn: arriveAfterOpening}
	_, err := newScheduler(domain.DomainBounds{Opening: 6, Closing: 12}, solver).Run(context.Background(), companies("c1"))
	assert.ErrorIs(t, err, domain.ErrInvalidBounds)

	_, err = (&DockScheduler{Bounds: hours}).Run(context.Background(), companies("c1"))
	assert.Error(t, err)
}
