package domain

import (
	"errors"
	"fmt"
)

// Company is identified by ID and routes its fleet out of a fixed depot.
type Company struct {
	ID    string `json:"id" yaml:"id"`
	Depot int    `json:"depot" yaml:"depot"`
}

// Outcome is the terminal state of one company's allocation attempt.
type Outcome int

const (
	OutcomePending Outcome = iota
	// A feasible route set reached the dock inside the assigned window.
	OutcomeServed
	// No vehicle count up to the cap was feasible; the window was dropped.
	OutcomeNoFeasibleAllocation
	// The window pool was empty when the company's turn came.
	OutcomeNoWindowAvailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeServed:
		return "served"
	case OutcomeNoFeasibleAllocation:
		return "no_feasible_allocation"
	case OutcomeNoWindowAvailable:
		return "no_window_available"
	default:
		return "pending"
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "served":
		*o = OutcomeServed
	case "no_feasible_allocation":
		*o = OutcomeNoFeasibleAllocation
	case "no_window_available":
		*o = OutcomeNoWindowAvailable
	case "pending":
		*o = OutcomePending
	default:
		return fmt.Errorf("unknown outcome %q", string(b))
	}
	return nil
}

// DockPlan is the recorded result of a feasible solve.
type DockPlan struct {
	Vehicles    int            `json:"vehicles" yaml:"vehicles"`
	TotalTime   int            `json:"total_time" yaml:"total_time"`
	Routes      []VehicleRoute `json:"routes" yaml:"routes"`
	Trace       string         `json:"trace" yaml:"trace"`
	DockArrival *int           `json:"dock_arrival,omitempty" yaml:"dock_arrival,omitempty"`
}

var ErrAllocationState = errors.New("allocation state violation")

// Allocation is the result slot of one company within one run. A window is
// assigned at most once and an outcome is recorded exactly once.
type Allocation struct {
	Company Company     `json:"company" yaml:"company"`
	Window  *TimeWindow `json:"window,omitempty" yaml:"window,omitempty"`
	Outcome Outcome     `json:"outcome" yaml:"outcome"`
	Plan    *DockPlan   `json:"plan,omitempty" yaml:"plan,omitempty"`
}

func NewAllocation(c Company) *Allocation {
	return &Allocation{Company: c, Outcome: OutcomePending}
}

func (a *Allocation) Assign(w TimeWindow) error {
	if a.Window != nil {
		return fmt.Errorf("%w: company %s already holds window %s", ErrAllocationState, a.Company.ID, a.Window)
	}
	if a.Outcome != OutcomePending {
		return fmt.Errorf("%w: company %s already recorded %s", ErrAllocationState, a.Company.ID, a.Outcome)
	}
	if err := w.Validate(); err != nil {
		return err
	}
	a.Window = &w
	return nil
}

// Serve records a feasible plan for the assigned window.
func (a *Allocation) Serve(plan DockPlan) error {
	if err := a.recordable(true); err != nil {
		return err
	}
	a.Plan = &plan
	a.Outcome = OutcomeServed
	return nil
}

// Reject records that escalation was exhausted for the assigned window.
func (a *Allocation) Reject() error {
	if err := a.recordable(true); err != nil {
		return err
	}
	a.Outcome = OutcomeNoFeasibleAllocation
	return nil
}

// Starve records that no window was left for this company.
func (a *Allocation) Starve() error {
	if err := a.recordable(false); err != nil {
		return err
	}
	a.Outcome = OutcomeNoWindowAvailable
	return nil
}

func (a *Allocation) recordable(needWindow bool) error {
	if a.Outcome != OutcomePending {
		return fmt.Errorf("%w: company %s already recorded %s", ErrAllocationState, a.Company.ID, a.Outcome)
	}
	if needWindow && a.Window == nil {
		return fmt.Errorf("%w: company %s has no window", ErrAllocationState, a.Company.ID)
	}
	if !needWindow && a.Window != nil {
		return fmt.Errorf("%w: company %s holds window %s", ErrAllocationState, a.Company.ID, a.Window)
	}
	return nil
}

// DockArrival returns the recorded dock arrival instant, if any.
func (a *Allocation) DockArrival() (int, bool) {
	if a.Plan == nil || a.Plan.DockArrival == nil {
		return 0, false
	}
	return *a.Plan.DockArrival, true
}
