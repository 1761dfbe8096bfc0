package ports

import (
	"context"

	"dock-allocation-service/internal/domain"
)

// Contract for retrieving the travel-time matrix of the routing network.
type TravelTimeProvider interface {
	// Return a square matrix indexed in the same order as locations.
	TravelTimes(ctx context.Context, locations []domain.Location) (domain.TravelMatrix, error)
}
