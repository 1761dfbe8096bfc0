package dto

import (
	"time"

	"dock-allocation-service/internal/domain"
)

type CompanyRequest struct {
	ID    string `json:"id"`
	Depot int    `json:"depot"`
}

// AllocationRequest overrides the configured run. Omitted fields keep the
// server defaults.
type AllocationRequest struct {
	Companies    []CompanyRequest `json:"companies"`
	Opening      *int             `json:"opening"`
	Closing      *int             `json:"closing"`
	UnloadBuffer *int             `json:"unload_buffer"`
	MaxVehicles  *int             `json:"max_vehicles"`
	PoolOrder    string           `json:"pool_order"`
}

type StopResponse struct {
	Location int `json:"location"`
	Earliest int `json:"earliest"`
	Latest   int `json:"latest"`
}

type RouteResponse struct {
	Vehicle int            `json:"vehicle"`
	Stops   []StopResponse `json:"stops"`
}

type AllocationResponse struct {
	CompanyID   string             `json:"company_id"`
	Depot       int                `json:"depot"`
	Outcome     string             `json:"outcome"`
	Window      *domain.TimeWindow `json:"window,omitempty"`
	Vehicles    int                `json:"vehicles,omitempty"`
	TotalTime   int                `json:"total_time,omitempty"`
	DockArrival *int               `json:"dock_arrival,omitempty"`
	Trace       string             `json:"trace,omitempty"`
	Routes      []RouteResponse    `json:"routes,omitempty"`
}

type SummaryResponse struct {
	Served        int     `json:"served"`
	Infeasible    int     `json:"infeasible"`
	Unserved      int     `json:"unserved"`
	Vehicles      int     `json:"vehicles"`
	MeanTotalTime float64 `json:"mean_total_time"`
	DockArrivals  []int   `json:"dock_arrivals"`
}

type ReportResponse struct {
	RunID       string               `json:"run_id"`
	CreatedAt   time.Time            `json:"created_at"`
	Opening     int                  `json:"opening"`
	Closing     int                  `json:"closing"`
	Allocations []AllocationResponse `json:"allocations"`
	Remaining   []domain.TimeWindow  `json:"remaining"`
	Summary     SummaryResponse      `json:"summary"`
}

type ReportListItem struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Summary   SummaryResponse `json:"summary"`
}

type ListReportsResponse struct {
	Reports []ReportListItem `json:"reports"`
}

func NewSummaryResponse(s domain.Summary) SummaryResponse {
	arrivals := s.DockArrivals
	if arrivals == nil {
		arrivals = []int{}
	}
	return SummaryResponse{
		Served:        s.Served,
		Infeasible:    s.Infeasible,
		Unserved:      s.Unserved,
		Vehicles:      s.Vehicles,
		MeanTotalTime: s.MeanTotalTime,
		DockArrivals:  arrivals,
	}
}

func NewReportResponse(r *domain.Report) ReportResponse {
	res := ReportResponse{
		RunID:       r.RunID,
		CreatedAt:   r.CreatedAt,
		Opening:     r.Bounds.Opening,
		Closing:     r.Bounds.Closing,
		Allocations: make([]AllocationResponse, 0, len(r.Allocations)),
		Remaining:   r.Remaining,
		Summary:     NewSummaryResponse(r.Summary),
	}
	if res.Remaining == nil {
		res.Remaining = []domain.TimeWindow{}
	}

	for _, a := range r.Allocations {
		item := AllocationResponse{
			CompanyID: a.Company.ID,
			Depot:     a.Company.Depot,
			Outcome:   a.Outcome.String(),
			Window:    a.Window,
		}
		if p := a.Plan; p != nil {
			item.Vehicles = p.Vehicles
			item.TotalTime = p.TotalTime
			item.DockArrival = p.DockArrival
			item.Trace = p.Trace
			for _, route := range p.Routes {
				stops := make([]StopResponse, 0, len(route.Stops))
				for _, s := range route.Stops {
					stops = append(stops, StopResponse{Location: s.Location, Earliest: s.Earliest, Latest: s.Latest})
				}
				item.Routes = append(item.Routes, RouteResponse{Vehicle: route.Vehicle, Stops: stops})
			}
		}
		res.Allocations = append(res.Allocations, item)
	}
	return res
}
