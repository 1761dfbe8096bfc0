package services

import (
	"context"
	"errors"
	"fmt"

	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/platform/obs"

	"github.com/rs/zerolog"
)

// ScheduleResult holds one allocation per company, in input order, and the
// windows left in the pool when scheduling stopped.
type ScheduleResult struct {
	Allocations []*domain.Allocation
	Remaining   []domain.TimeWindow
}

// DockScheduler hands out dock windows to companies one at a time. Each
// served company's arrival splits its window into successors that are fed
// back into the pool for the companies that follow.
type DockScheduler struct {
	Bounds     domain.DomainBounds
	Escalation *EscalationController
	PoolOrder  PoolOrder
	Metrics    *obs.Metrics
}

// Run processes companies strictly in order. Per-company failures are
// recorded on the allocation and never abort the run; only malformed input
// and solver errors other than infeasibility are returned.
func (s *DockScheduler) Run(ctx context.Context, companies []domain.Company) (ScheduleResult, error) {
	if err := s.Bounds.Validate(); err != nil {
		return ScheduleResult{}, fmt.Errorf("schedule docks: %w", err)
	}
	if s.Escalation == nil {
		return ScheduleResult{}, errors.New("schedule docks: escalation controller must be non-nil")
	}

	log := zerolog.Ctx(ctx)
	pool := NewWindowPool(s.PoolOrder, s.Bounds.Hours())
	partitioner := WindowPartitioner{Bounds: s.Bounds}
	dock := s.Escalation.Network.Dock()

	allocations := make([]*domain.Allocation, 0, len(companies))
	for i, c := range companies {
		a := domain.NewAllocation(c)
		allocations = append(allocations, a)
		s.Metrics.SetPoolSize(pool.Len())

		window, ok := pool.Pop()
		if !ok {
			// Pool exhausted: this company and every later one go unserved.
			for _, rest := range companies[i+1:] {
				allocations = append(allocations, domain.NewAllocation(rest))
			}
			for _, pending := range allocations[i:] {
				if err := pending.Starve(); err != nil {
					return ScheduleResult{}, fmt.Errorf("schedule docks: %w", err)
				}
				s.Metrics.ObserveOutcome(pending.Outcome.String())
			}
			log.Info().Int("unserved", len(companies)-i).Msg("window pool exhausted")
			break
		}
		if err := a.Assign(window); err != nil {
			return ScheduleResult{}, fmt.Errorf("schedule docks: %w", err)
		}

		esc, err := s.Escalation.Escalate(ctx, c.Depot, window)
		if errors.Is(err, domain.ErrEscalationExhausted) {
			// The window cannot be proven reusable, so it is dropped.
			if err := a.Reject(); err != nil {
				return ScheduleResult{}, fmt.Errorf("schedule docks: %w", err)
			}
			s.Metrics.ObserveOutcome(a.Outcome.String())
			log.Info().Str("company", c.ID).Stringer("window", window).Int("attempts", esc.Attempts).Msg("no feasible allocation")
			continue
		}
		if err != nil {
			return ScheduleResult{}, fmt.Errorf("schedule docks: company %s: %w", c.ID, err)
		}

		ext := ExtractSolution(esc.Solution, dock)
		plan := domain.DockPlan{
			Vehicles:    esc.Vehicles,
			TotalTime:   ext.TotalTime,
			Routes:      esc.Solution.Routes,
			Trace:       ext.Trace,
			DockArrival: ext.DockArrival,
		}
		if err := a.Serve(plan); err != nil {
			return ScheduleResult{}, fmt.Errorf("schedule docks: %w", err)
		}
		s.Metrics.ObserveOutcome(a.Outcome.String())

		ev := log.Info().Str("company", c.ID).Stringer("window", window).Int("vehicles", esc.Vehicles).Int("total_time", ext.TotalTime)
		if ext.DockArrival == nil {
			ev.Msg("served without dock visit")
			continue
		}

		arrival := *ext.DockArrival
		if !window.Contains(arrival) {
			log.Warn().Str("company", c.ID).Stringer("window", window).Int("arrival", arrival).Msg("dock arrival outside assigned window, retiring it")
		}
		successors := partitioner.Partition(window, arrival)
		pool.Push(successors...)
		ev.Int("arrival", arrival).Int("successors", len(successors)).Msg("served")
	}

	s.Metrics.SetPoolSize(pool.Len())
	return ScheduleResult{Allocations: allocations, Remaining: pool.Windows()}, nil
}
