package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/platform/obs"
	"dock-allocation-service/internal/ports"

	"github.com/rs/zerolog"
)

const DefaultMaxVehicles = 5

// Escalation is a feasible solve together with the vehicle count that
// produced it and the number of solver calls spent.
type Escalation struct {
	Solution domain.Solution
	Vehicles int
	Attempts int
}

// EscalationController retries a company's routing problem with one more
// vehicle each time the solver reports infeasibility, up to MaxVehicles.
type EscalationController struct {
	Solver  ports.RouteSolver
	Network Network
	// Zero values fall back to 1 and DefaultMaxVehicles. MaxVehicles can
	// lower the cap but never raise it above DefaultMaxVehicles.
	InitialVehicles int
	MaxVehicles     int
	Metrics         *obs.Metrics
}

func (c *EscalationController) bounds() (int, int) {
	lo, hi := c.InitialVehicles, c.MaxVehicles
	if lo < 1 {
		lo = 1
	}
	if hi < 1 || hi > DefaultMaxVehicles {
		hi = DefaultMaxVehicles
	}
	return lo, hi
}

// Escalate returns the first feasible solution for the company's depot and
// window. It fails with domain.ErrEscalationExhausted once every count up to
// the cap was infeasible. Any other solver error aborts the escalation.
func (c *EscalationController) Escalate(ctx context.Context, depot int, window domain.TimeWindow) (Escalation, error) {
	if c.Solver == nil {
		return Escalation{}, errors.New("escalate: solver must be non-nil")
	}

	log := zerolog.Ctx(ctx)
	lo, hi := c.bounds()
	attempts := 0

	for vehicles := lo; vehicles <= hi; vehicles++ {
		problem, err := AssembleProblem(c.Network, depot, window, vehicles)
		if err != nil {
			return Escalation{Attempts: attempts}, fmt.Errorf("escalate: %w", err)
		}

		attempts++
		start := time.Now()
		sol, err := c.Solver.Solve(ctx, problem)
		c.Metrics.ObserveSolve(vehicles, err == nil, time.Since(start))

		if err == nil {
			return Escalation{Solution: sol, Vehicles: vehicles, Attempts: attempts}, nil
		}
		if !errors.Is(err, domain.ErrInfeasible) {
			return Escalation{Attempts: attempts}, fmt.Errorf("escalate: solve with %d vehicles: %w", vehicles, err)
		}

		log.Debug().Int("depot", depot).Stringer("window", window).Int("vehicles", vehicles).Msg("infeasible, adding a vehicle")
	}

	return Escalation{Attempts: attempts}, fmt.Errorf(
		"escalate: depot %d window %s with up to %d vehicles: %w",
		depot, window, hi, domain.ErrEscalationExhausted,
	)
}
