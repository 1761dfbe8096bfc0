package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/platform/obs"
	"dock-allocation-service/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type RunAllocationRequest struct {
	Companies   []domain.Company
	Locations   []domain.Location
	Windows     []domain.TimeWindow
	Dock        int
	Bounds      domain.DomainBounds
	MaxVehicles int
	PoolOrder   PoolOrder
}

// Allocator wires the dock scheduler to its collaborators: the travel-time
// source, the route solver, and optional persistence and event fan-out.
type Allocator struct {
	Solver    ports.RouteSolver
	Matrix    ports.TravelTimeProvider
	Reports   ports.ReportRepository
	Publisher ports.AllocationPublisher
	Metrics   *obs.Metrics

	now   func() time.Time
	newID func() string
}

func NewAllocator(solver ports.RouteSolver, matrix ports.TravelTimeProvider) *Allocator {
	return &Allocator{
		Solver: solver,
		Matrix: matrix,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Run fetches the travel-time matrix, schedules every company, then saves
// and publishes the resulting report. A publish failure is logged and does
// not fail the run.
func (a *Allocator) Run(ctx context.Context, req RunAllocationRequest) (_ *domain.Report, err error) {
	defer obs.Time(ctx, "allocation.Run")(&err)

	if a.Solver == nil || a.Matrix == nil {
		return nil, errors.New("run allocation: solver and matrix provider must be non-nil")
	}
	if len(req.Locations) == 0 {
		return nil, fmt.Errorf("run allocation: %w: no locations", domain.ErrInvalidProblem)
	}
	for i, c := range req.Companies {
		if c.Depot < 0 || c.Depot >= len(req.Locations) {
			return nil, fmt.Errorf("run allocation: %w: company #%d (%s) depot %d out of range", domain.ErrInvalidProblem, i+1, c.ID, c.Depot)
		}
	}

	matrix, err := a.Matrix.TravelTimes(ctx, req.Locations)
	if err != nil {
		return nil, fmt.Errorf("run allocation: travel times: %w", err)
	}

	network, err := NewNetwork(matrix, req.Windows, req.Dock)
	if err != nil {
		return nil, fmt.Errorf("run allocation: %w", err)
	}

	scheduler := &DockScheduler{
		Bounds: req.Bounds,
		Escalation: &EscalationController{
			Solver:      a.Solver,
			Network:     network,
			MaxVehicles: req.MaxVehicles,
			Metrics:     a.Metrics,
		},
		PoolOrder: req.PoolOrder,
		Metrics:   a.Metrics,
	}

	now, newID := a.now, a.newID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}

	runID := newID()
	log := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = log.WithContext(ctx)

	res, err := scheduler.Run(ctx, req.Companies)
	if err != nil {
		return nil, fmt.Errorf("run allocation: %w", err)
	}

	report := &domain.Report{
		RunID:       runID,
		CreatedAt:   now().UTC(),
		Bounds:      req.Bounds,
		Allocations: res.Allocations,
		Remaining:   res.Remaining,
		Summary:     Summarize(res.Allocations),
	}

	if a.Reports != nil {
		if err := a.Reports.SaveReport(ctx, report); err != nil {
			return report, fmt.Errorf("run allocation: save report: %w", err)
		}
	}

	if a.Publisher != nil {
		for _, alloc := range report.Allocations {
			if perr := a.Publisher.Publish(ctx, eventFor(report, alloc)); perr != nil {
				log.Warn().Err(perr).Str("company", alloc.Company.ID).Msg("publish allocation event failed")
			}
		}
	}

	log.Info().
		Int("served", report.Summary.Served).
		Int("infeasible", report.Summary.Infeasible).
		Int("unserved", report.Summary.Unserved).
		Msg("allocation run complete")

	return report, nil
}

func eventFor(r *domain.Report, a *domain.Allocation) ports.AllocationEvent {
	evt := ports.AllocationEvent{
		RunID:     r.RunID,
		CompanyID: a.Company.ID,
		Outcome:   a.Outcome,
		Window:    a.Window,
		At:        r.CreatedAt,
	}
	if a.Plan != nil {
		evt.Vehicles = a.Plan.Vehicles
		evt.DockArrival = a.Plan.DockArrival
	}
	return evt
}
