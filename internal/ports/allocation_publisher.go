package ports

import (
	"context"
	"time"

	"dock-allocation-service/internal/domain"
)

// AllocationEvent announces the recorded outcome of one company.
type AllocationEvent struct {
	RunID       string             `json:"run_id"`
	CompanyID   string             `json:"company_id"`
	Outcome     domain.Outcome     `json:"outcome"`
	Window      *domain.TimeWindow `json:"window,omitempty"`
	Vehicles    int                `json:"vehicles,omitempty"`
	DockArrival *int               `json:"dock_arrival,omitempty"`
	At          time.Time          `json:"at"`
}

// Port: fan-out of allocation outcomes to interested consumers.
type AllocationPublisher interface {
	Publish(ctx context.Context, evt AllocationEvent) error
}
