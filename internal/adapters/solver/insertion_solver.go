package solver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/platform/obs"

	"github.com/rs/zerolog"
)

const (
	DefaultMaxWait      = 30
	DefaultHorizon      = 30
	DefaultSearchBudget = 200_000
)

var errSearchBudget = errors.New("search budget exhausted")

// Config bounds the time dimension of every route.
type Config struct {
	// Longest a vehicle may wait at a stop for its window to open.
	MaxWait int `json:"max_wait"`
	// No route may return to the depot after this instant. The depot window
	// only bounds departures.
	Horizon int `json:"horizon"`
	// Nodes the fallback search may expand before giving up as infeasible.
	SearchBudget int `json:"search_budget"`
}

func (c *Config) SetDefaults() {
	if c.MaxWait == 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.Horizon == 0 {
		c.Horizon = DefaultHorizon
	}
	if c.SearchBudget == 0 {
		c.SearchBudget = DefaultSearchBudget
	}
}

func (c Config) Validate() error {
	if c.MaxWait < 0 {
		return fmt.Errorf("solver: max_wait must be >= 0, got %d", c.MaxWait)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("solver: horizon must be positive, got %d", c.Horizon)
	}
	if c.SearchBudget < 0 {
		return fmt.Errorf("solver: search_budget must be >= 0, got %d", c.SearchBudget)
	}
	return nil
}

// InsertionSolver implements ports.RouteSolver with a deterministic
// cheapest-insertion heuristic. When insertion stalls on a location with no
// feasible position, a depth-first search over route sequences takes over,
// so a location reachable only behind another stop is still served. Every
// non-depot location must be visited exactly once. Unused vehicles are left
// out of the solution.
//
// It is safe for concurrent use.
type InsertionSolver struct {
	cfg Config
}

func NewInsertionSolver(cfg Config) *InsertionSolver {
	cfg.SetDefaults()
	return &InsertionSolver{cfg: cfg}
}

func (s *InsertionSolver) Solve(ctx context.Context, p domain.RoutingProblem) (_ domain.Solution, err error) {
	defer obs.Time(ctx, "solver.Solve")(&err)

	if p.Size() == 0 || p.Vehicles() < 1 {
		return domain.Solution{}, fmt.Errorf("solve: %w: empty problem", domain.ErrInvalidProblem)
	}

	depot := p.Depot()
	customers := make([]int, 0, p.Size()-1)
	for i := 0; i < p.Size(); i++ {
		if i != depot {
			customers = append(customers, i)
		}
	}
	// Tightest deadlines first, so they claim positions before slack ones.
	slices.SortFunc(customers, func(a, b int) int {
		wa, wb := p.Window(a), p.Window(b)
		if c := cmp.Compare(wa.End, wb.End); c != 0 {
			return c
		}
		if c := cmp.Compare(wa.Begin, wb.Begin); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	routes, stalled, err := s.insert(ctx, p, customers)
	if err != nil {
		return domain.Solution{}, err
	}
	if stalled >= 0 {
		zerolog.Ctx(ctx).Debug().Int("location", stalled).Int("vehicles", p.Vehicles()).Msg("insertion stalled, searching route sequences")
		routes, err = s.search(ctx, p, customers)
		if errors.Is(err, errSearchBudget) {
			return domain.Solution{}, fmt.Errorf("solve: %d vehicles: %w after %d nodes: %w",
				p.Vehicles(), err, s.cfg.SearchBudget, domain.ErrInfeasible)
		}
		if err != nil {
			return domain.Solution{}, err
		}
		if routes == nil {
			return domain.Solution{}, fmt.Errorf(
				"solve: location %d window %s with %d vehicles: %w",
				stalled, p.Window(stalled), p.Vehicles(), domain.ErrInfeasible,
			)
		}
	}

	var sol domain.Solution
	for v, route := range routes {
		if len(route) == 0 {
			continue
		}
		stops, ok := s.schedule(p, route)
		if !ok {
			return domain.Solution{}, fmt.Errorf("solve: vehicle %d lost feasibility: %w", v, domain.ErrInfeasible)
		}
		sol.Routes = append(sol.Routes, domain.VehicleRoute{Vehicle: v, Stops: stops})
	}
	return sol, nil
}

// insert places customers one by one at their cheapest feasible position. It
// returns the first location that fits nowhere, or -1 when all were placed.
func (s *InsertionSolver) insert(ctx context.Context, p domain.RoutingProblem, customers []int) ([][]int, int, error) {
	routes := make([][]int, p.Vehicles())
	ends := make([]int, p.Vehicles())

	for _, c := range customers {
		if err := ctx.Err(); err != nil {
			return nil, -1, err
		}

		bestV, bestPos, bestCost, bestEnd := -1, -1, 0, 0
		for v, route := range routes {
			for pos := 0; pos <= len(route); pos++ {
				candidate := insertAt(route, pos, c)
				sched, ok := s.schedule(p, candidate)
				if !ok {
					continue
				}
				end := sched[len(sched)-1].Earliest
				cost := end - ends[v]
				if bestV < 0 || cost < bestCost {
					bestV, bestPos, bestCost, bestEnd = v, pos, cost, end
				}
			}
		}

		if bestV < 0 {
			return nil, c, nil
		}
		routes[bestV] = insertAt(routes[bestV], bestPos, c)
		ends[bestV] = bestEnd
	}
	return routes, -1, nil
}

// search builds routes one vehicle at a time by extending the open route
// with any location still reachable inside its window, or closing it and
// opening the next. A route may only close once it holds the first location
// that was pending when it opened, which skips vehicle permutations of the
// same route set. The first complete feasible set wins; nil means none exists.
func (s *InsertionSolver) search(ctx context.Context, p domain.RoutingProblem, customers []int) ([][]int, error) {
	depot := p.Depot()
	open := p.Window(depot).Begin
	budget := s.cfg.SearchBudget
	var closed [][]int

	var dfs func(cur []int, t int, pending []int, anchor int) (bool, error)
	dfs = func(cur []int, t int, pending []int, anchor int) (bool, error) {
		if budget == 0 {
			return false, errSearchBudget
		}
		budget--
		if err := ctx.Err(); err != nil {
			return false, err
		}

		if len(pending) == 0 {
			if _, ok := s.schedule(p, cur); ok && len(cur) > 0 {
				closed = append(closed, cur)
				return true, nil
			}
			return false, nil
		}

		prev := depot
		if len(cur) > 0 {
			prev = cur[len(cur)-1]
		}
		for i, c := range pending {
			w := p.Window(c)
			arrive := max(t+p.TravelTime(prev, c), w.Begin)
			if arrive > w.End || arrive > s.cfg.Horizon {
				continue
			}
			rest := slices.Delete(slices.Clone(pending), i, i+1)
			if ok, err := dfs(append(cur[:len(cur):len(cur)], c), arrive, rest, anchor); ok || err != nil {
				return ok, err
			}
		}

		if len(cur) == 0 || len(closed)+1 >= p.Vehicles() || !slices.Contains(cur, anchor) {
			return false, nil
		}
		if _, ok := s.schedule(p, cur); !ok {
			return false, nil
		}
		closed = append(closed, cur)
		if ok, err := dfs(nil, open, pending, pending[0]); ok || err != nil {
			return ok, err
		}
		closed = closed[:len(closed)-1]
		return false, nil
	}

	ok, err := dfs(nil, open, customers, customers[0])
	if err != nil || !ok {
		return nil, err
	}
	return closed, nil
}

func insertAt(route []int, pos, loc int) []int {
	out := make([]int, 0, len(route)+1)
	out = append(out, route[:pos]...)
	out = append(out, loc)
	return append(out, route[pos:]...)
}

// schedule computes the arrival bounds of a depot-to-depot tour through
// route. Earliest times come from a forward pass starting when the depot
// opens, latest times from a backward pass ending at the horizon. The depot
// window bounds the departure only.
// The tour is feasible when every stop has earliest <= latest and departing
// as late as possible never waits longer than MaxWait.
func (s *InsertionSolver) schedule(p domain.RoutingProblem, route []int) ([]domain.RouteStop, bool) {
	depot := p.Depot()
	dw := p.Window(depot)

	nodes := make([]int, 0, len(route)+2)
	nodes = append(nodes, depot)
	nodes = append(nodes, route...)
	nodes = append(nodes, depot)
	last := len(nodes) - 1

	windowOf := func(k int) domain.TimeWindow {
		if k == last {
			return domain.TimeWindow{Begin: 0, End: s.cfg.Horizon}
		}
		return p.Window(nodes[k])
	}

	earliest := make([]int, len(nodes))
	earliest[0] = dw.Begin
	for k := 1; k <= last; k++ {
		earliest[k] = max(earliest[k-1]+p.TravelTime(nodes[k-1], nodes[k]), windowOf(k).Begin)
	}

	latest := make([]int, len(nodes))
	latest[last] = windowOf(last).End
	for k := last - 1; k >= 0; k-- {
		latest[k] = min(windowOf(k).End, latest[k+1]-p.TravelTime(nodes[k], nodes[k+1]))
	}

	for k := range nodes {
		if earliest[k] > latest[k] {
			return nil, false
		}
	}

	t := latest[0]
	for k := 1; k <= last; k++ {
		arrive := t + p.TravelTime(nodes[k-1], nodes[k])
		if wait := windowOf(k).Begin - arrive; wait > s.cfg.MaxWait {
			return nil, false
		}
		t = max(arrive, windowOf(k).Begin)
	}

	stops := make([]domain.RouteStop, len(nodes))
	for k, loc := range nodes {
		stops[k] = domain.RouteStop{Location: loc, Earliest: earliest[k], Latest: latest[k]}
	}
	return stops, true
}
