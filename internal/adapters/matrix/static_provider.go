package matrix

import (
	"context"
	"fmt"

	"dock-allocation-service/internal/domain"
)

// StaticProvider serves a fixed, configured travel-time matrix.
type StaticProvider struct {
	m domain.TravelMatrix
}

func NewStaticProvider(m domain.TravelMatrix) (*StaticProvider, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("static matrix: %w", err)
	}
	return &StaticProvider{m: m.Clone()}, nil
}

func (p *StaticProvider) TravelTimes(_ context.Context, locations []domain.Location) (domain.TravelMatrix, error) {
	if len(locations) != p.m.Size() {
		return nil, fmt.Errorf("static matrix: %w: %d locations for a %dx%d matrix",
			domain.ErrInvalidProblem, len(locations), p.m.Size(), p.m.Size())
	}
	return p.m.Clone(), nil
}
