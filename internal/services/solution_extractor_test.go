package services

import (
	"testing"

	"dock-allocation-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSolution(t *testing.T) {
	sol := domain.Solution{Routes: []domain.VehicleRoute{
		{Vehicle: 0, Stops: []domain.RouteStop{
			{Location: 0, Earliest: 0, Latest: 2},
			{Location: 2, Earliest: 6, Latest: 8},
			{Location: 0, Earliest: 10, Latest: 12},
		}},
		{Vehicle: 1, Stops: []domain.RouteStop{
			{Location: 0, Earliest: 4, Latest: 6},
			{Location: 1, Earliest: 7, Latest: 9},
			{Location: 0, Earliest: 10, Latest: 12},
		}},
	}}

	ext := ExtractSolution(sol, 1)

	require.NotNil(t, ext.DockArrival)
	assert.Equal(t, 7, *ext.DockArrival)
	assert.Equal(t, 20, ext.TotalTime)
	assert.Equal(t,
		"Route for vehicle 0:\n"+
			"0 Time(0,2) -> 2 Time(6,8) -> 0 Time(10,12)\n"+
			"Time of the route: 10min\n"+
			"Route for vehicle 1:\n"+
			"0 Time(4,6) -> 1 Time(7,9) -> 0 Time(10,12)\n"+
			"Time of the route: 10min\n",
		ext.Trace)
}

func TestExtractSolutionFirstDockVisitWins(t *testing.T) {
	sol := domain.Solution{Routes: []domain.VehicleRoute{
		{Vehicle: 0, Stops: []domain.RouteStop{{Location: 0}, {Location: 1, Earliest: 11, Latest: 11}, {Location: 0, Earliest: 14}}},
		{Vehicle: 1, Stops: []domain.RouteStop{{Location: 0}, {Location: 1, Earliest: 7, Latest: 7}, {Location: 0, Earliest: 10}}},
	}}
	ext := ExtractSolution(sol, 1)
	require.NotNil(t, ext.DockArrival)
	assert.Equal(t, 11, *ext.DockArrival)
}

func TestExtractSolutionWithoutDockVisit(t *testing.T) {
	sol := domain.Solution{Routes: []domain.VehicleRoute{
		{Vehicle: 0, Stops: []domain.RouteStop{{Location: 0}, {Location: 2, Earliest: 5, Latest: 5}, {Location: 0, Earliest: 9, Latest: 9}}},
		{Vehicle: 1},
	}}
	ext := ExtractSolution(sol, 1)
	assert.Nil(t, ext.DockArrival)
	assert.Equal(t, 9, ext.TotalTime)
	assert.NotContains(t, ext.Trace, "vehicle 1")
}

func TestExtractSolutionIgnoresTerminalAtDock(t *testing.T) {
	// The terminal node closes the route and is never a dock visit.
	sol := domain.Solution{Routes: []domain.VehicleRoute{
		{Vehicle: 0, Stops: []domain.RouteStop{{Location: 0, Earliest: 1}, {Location: 2, Earliest: 5}, {Location: 1, Earliest: 9}}},
	}}
	assert.Nil(t, ExtractSolution(sol, 1).DockArrival)
}
