package config

import (
	"dock-allocation-service/internal/adapters/solver"
	"dock-allocation-service/internal/domain"
)

// Default returns the eight-location sample network with the dock at
// location 4 and four companies sharing depot 0. Vehicles leave the depot
// between 6 and 20 and must be back by the solver horizon.
func Default() Config {
	windows := make([]domain.TimeWindow, 8)
	for i := range windows {
		windows[i] = domain.TimeWindow{Begin: 6, End: 20}
	}
	windows[4] = domain.TimeWindow{Begin: 6, End: 12}

	cfg := Config{
		Dock: DockConfig{Location: 4, Opening: 6, Closing: 12, UnloadBuffer: 1, MaxVehicles: 5},
		Network: NetworkConfig{
			Matrix: domain.TravelMatrix{
				{0, 6, 9, 8, 7, 3, 6, 2},
				{6, 0, 8, 3, 2, 6, 8, 4},
				{9, 8, 0, 11, 10, 6, 3, 9},
				{8, 3, 11, 0, 1, 7, 10, 6},
				{7, 2, 10, 1, 0, 6, 9, 4},
				{3, 6, 6, 7, 6, 0, 2, 3},
				{6, 8, 3, 10, 9, 2, 0, 6},
				{2, 4, 9, 6, 4, 3, 6, 0},
			},
			Windows: windows,
		},
		Solver: solver.Config{MaxWait: 30, Horizon: 30},
		Companies: []domain.Company{
			{ID: "company-1", Depot: 0},
			{ID: "company-2", Depot: 0},
			{ID: "company-3", Depot: 0},
			{ID: "company-4", Depot: 0},
		},
	}
	cfg.SetDefaults()
	return cfg
}
