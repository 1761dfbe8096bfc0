package services

import (
	"fmt"

	"dock-allocation-service/internal/domain"
)

// Network is the fixed routing input shared by every company: travel times,
// one time window per location and the index of the dock location.
type Network struct {
	travel  domain.TravelTimeFunc
	size    int
	windows []domain.TimeWindow
	dock    int
}

// NewNetwork snapshots the matrix and windows. The dock window given here is
// only a placeholder; each problem replaces it with the company's window.
func NewNetwork(matrix domain.TravelMatrix, windows []domain.TimeWindow, dock int) (Network, error) {
	if err := matrix.Validate(); err != nil {
		return Network{}, fmt.Errorf("new network: %w", err)
	}
	if len(windows) != matrix.Size() {
		return Network{}, fmt.Errorf("new network: %w: %d windows for %d locations", domain.ErrInvalidProblem, len(windows), matrix.Size())
	}
	for i, w := range windows {
		if err := w.Validate(); err != nil {
			return Network{}, fmt.Errorf("new network: location %d: %w", i, err)
		}
	}
	if dock < 0 || dock >= matrix.Size() {
		return Network{}, fmt.Errorf("new network: %w: dock %d out of range", domain.ErrInvalidProblem, dock)
	}

	return Network{
		travel:  matrix.Func(),
		size:    matrix.Size(),
		windows: append([]domain.TimeWindow(nil), windows...),
		dock:    dock,
	}, nil
}

func (n Network) Dock() int { return n.dock }
func (n Network) Size() int { return n.size }

// AssembleProblem builds the routing problem for one company: the network's
// windows with the dock window replaced by the assigned window, the company's
// depot, and the candidate vehicle count.
func AssembleProblem(n Network, depot int, window domain.TimeWindow, vehicles int) (domain.RoutingProblem, error) {
	if vehicles < 1 {
		return domain.RoutingProblem{}, fmt.Errorf("assemble problem: %w: vehicle count %d", domain.ErrInvalidProblem, vehicles)
	}
	if n.travel == nil {
		return domain.RoutingProblem{}, fmt.Errorf("assemble problem: %w: network is not initialized", domain.ErrInvalidProblem)
	}

	windows := append([]domain.TimeWindow(nil), n.windows...)
	windows[n.dock] = window

	p, err := domain.NewRoutingProblem(n.travel, windows, depot, vehicles)
	if err != nil {
		return domain.RoutingProblem{}, fmt.Errorf("assemble problem: %w", err)
	}
	return p, nil
}
