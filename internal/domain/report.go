package domain

import "time"

// Report is the outcome of one allocation run over the ordered company list.
type Report struct {
	RunID       string        `json:"run_id" yaml:"run_id"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
	Bounds      DomainBounds  `json:"bounds" yaml:"bounds"`
	Allocations []*Allocation `json:"allocations" yaml:"allocations"`
	// Windows still unclaimed when the run finished, in pool order.
	Remaining []TimeWindow `json:"remaining" yaml:"remaining"`
	Summary   Summary      `json:"summary" yaml:"summary"`
}

// Summary aggregates a report for quick inspection.
type Summary struct {
	Served        int     `json:"served" yaml:"served"`
	Infeasible    int     `json:"infeasible" yaml:"infeasible"`
	Unserved      int     `json:"unserved" yaml:"unserved"`
	Vehicles      int     `json:"vehicles" yaml:"vehicles"`
	MeanTotalTime float64 `json:"mean_total_time" yaml:"mean_total_time"`
	DockArrivals  []int   `json:"dock_arrivals" yaml:"dock_arrivals"`
}
