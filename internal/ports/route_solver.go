package ports

import (
	"context"

	"dock-allocation-service/internal/domain"
)

// Contract for solving one vehicle-routing instance with time windows.
type RouteSolver interface {
	// Return a feasible solution, or an error wrapping domain.ErrInfeasible when
	// the windows cannot be met with the problem's vehicle count. Every arrival
	// bound in a returned solution lies inside its location's window.
	Solve(ctx context.Context, problem domain.RoutingProblem) (domain.Solution, error)
}
