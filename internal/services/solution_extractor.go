package services

import (
	"fmt"
	"strings"

	"dock-allocation-service/internal/domain"
)

// Extraction is the structured view of a feasible solution.
type Extraction struct {
	Trace     string
	TotalTime int
	// Earliest arrival bound at the first dock visit; nil when no vehicle
	// visits the dock.
	DockArrival *int
}

// ExtractSolution renders the per-vehicle route trace, sums the earliest
// arrival at every terminal node, and finds the first dock visit in vehicle
// order. It never fails: a missing dock visit is reported as a nil arrival.
func ExtractSolution(sol domain.Solution, dock int) Extraction {
	var (
		b     strings.Builder
		total int
		dockT *int
	)

	for _, route := range sol.Routes {
		terminal, ok := route.Terminal()
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "Route for vehicle %d:\n", route.Vehicle)
		for i, stop := range route.Stops {
			if i > 0 {
				b.WriteString(" -> ")
			}
			fmt.Fprintf(&b, "%d Time(%d,%d)", stop.Location, stop.Earliest, stop.Latest)

			// The terminal node closes the route and is not a visit.
			if i < len(route.Stops)-1 && stop.Location == dock && dockT == nil {
				t := stop.Earliest
				dockT = &t
			}
		}
		fmt.Fprintf(&b, "\nTime of the route: %dmin\n", terminal.Earliest)

		total += terminal.Earliest
	}

	return Extraction{Trace: b.String(), TotalTime: total, DockArrival: dockT}
}
