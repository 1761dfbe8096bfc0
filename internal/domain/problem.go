package domain

import "fmt"

// TravelTimeFunc returns the travel time from one location index to another.
// Implementations must be pure.
type TravelTimeFunc func(from, to int) int

// RoutingProblem is an immutable snapshot handed to a RouteSolver: travel
// times, one time window per location, the depot index and the vehicle count.
// A new problem is built for every solve attempt.
type RoutingProblem struct {
	travel   TravelTimeFunc
	windows  []TimeWindow
	depot    int
	vehicles int
}

// NewRoutingProblem validates its inputs. Any violation is a programming
// error on the caller's side and is reported as ErrInvalidProblem.
func NewRoutingProblem(travel TravelTimeFunc, windows []TimeWindow, depot, vehicles int) (RoutingProblem, error) {
	if travel == nil {
		return RoutingProblem{}, fmt.Errorf("%w: travel time function is nil", ErrInvalidProblem)
	}
	if len(windows) == 0 {
		return RoutingProblem{}, fmt.Errorf("%w: no locations", ErrInvalidProblem)
	}
	for i, w := range windows {
		if err := w.Validate(); err != nil {
			return RoutingProblem{}, fmt.Errorf("%w: location %d: %v", ErrInvalidProblem, i, err)
		}
	}
	if depot < 0 || depot >= len(windows) {
		return RoutingProblem{}, fmt.Errorf("%w: depot %d out of range [0,%d)", ErrInvalidProblem, depot, len(windows))
	}
	if vehicles < 1 {
		return RoutingProblem{}, fmt.Errorf("%w: vehicle count must be positive, got %d", ErrInvalidProblem, vehicles)
	}

	return RoutingProblem{
		travel:   travel,
		windows:  append([]TimeWindow(nil), windows...),
		depot:    depot,
		vehicles: vehicles,
	}, nil
}

func (p RoutingProblem) Size() int     { return len(p.windows) }
func (p RoutingProblem) Depot() int    { return p.depot }
func (p RoutingProblem) Vehicles() int { return p.vehicles }

func (p RoutingProblem) TravelTime(from, to int) int { return p.travel(from, to) }

func (p RoutingProblem) Window(location int) TimeWindow { return p.windows[location] }

// Windows returns a copy of the per-location time windows.
func (p RoutingProblem) Windows() []TimeWindow {
	return append([]TimeWindow(nil), p.windows...)
}
