package domain

// A single visit on a vehicle route with its feasible arrival bounds.
type RouteStop struct {
	Location int `json:"location" yaml:"location"`
	Earliest int `json:"earliest" yaml:"earliest"`
	Latest   int `json:"latest" yaml:"latest"`
}

// VehicleRoute is the ordered list of stops of one vehicle. The first stop is
// the depot departure and the last stop is the terminal node.
type VehicleRoute struct {
	Vehicle int         `json:"vehicle" yaml:"vehicle"`
	Stops   []RouteStop `json:"stops" yaml:"stops"`
}

// Terminal returns the final stop of the route.
func (r VehicleRoute) Terminal() (RouteStop, bool) {
	if len(r.Stops) == 0 {
		return RouteStop{}, false
	}
	return r.Stops[len(r.Stops)-1], true
}

// Solution is a feasible multi-vehicle assignment produced by a RouteSolver.
type Solution struct {
	Routes []VehicleRoute
}
