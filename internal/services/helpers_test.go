package services

import (
	"context"
	"fmt"

	"dock-allocation-service/internal/domain"
)

const testDock = 1

// testNetwork is depot 0, dock 1 and one customer 2.
func testNetwork() Network {
	m := domain.TravelMatrix{
		{0, 3, 4},
		{3, 0, 2},
		{4, 2, 0},
	}
	n, err := NewNetwork(m, []domain.TimeWindow{{0, 30}, {6, 12}, {0, 30}}, testDock)
	if err != nil {
		panic(err)
	}
	return n
}

type solveCall struct {
	vehicles int
	depot    int
	dock     domain.TimeWindow
}

// scriptedSolver records every call and delegates the answer to fn.
type scriptedSolver struct {
	calls []solveCall
	fn    func(p domain.RoutingProblem) (domain.Solution, error)
}

func (s *scriptedSolver) Solve(_ context.Context, p domain.RoutingProblem) (domain.Solution, error) {
	s.calls = append(s.calls, solveCall{vehicles: p.Vehicles(), depot: p.Depot(), dock: p.Window(testDock)})
	return s.fn(p)
}

func infeasible(p domain.RoutingProblem) error {
	return fmt.Errorf("scripted: %d vehicles: %w", p.Vehicles(), domain.ErrInfeasible)
}

// arriveAt builds a one-vehicle solution visiting the dock at t.
func arriveAt(p domain.RoutingProblem, t int) domain.Solution {
	d := p.Depot()
	return domain.Solution{Routes: []domain.VehicleRoute{{
		Vehicle: 0,
		Stops: []domain.RouteStop{
			{Location: d, Earliest: t - 3, Latest: t - 3},
			{Location: testDock, Earliest: t, Latest: t},
			{Location: d, Earliest: t + 3, Latest: t + 3},
		},
	}}}
}

// arriveAfterOpening serves every window by arriving one unit after it opens.
func arriveAfterOpening(p domain.RoutingProblem) (domain.Solution, error) {
	return arriveAt(p, p.Window(testDock).Begin+1), nil
}
