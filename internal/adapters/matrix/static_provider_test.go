package matrix

import (
	"context"
	"errors"
	"testing"

	"dock-allocation-service/internal/domain"
)

func TestStaticProviderReturnsCopy(t *testing.T) {
	src := domain.TravelMatrix{{0, 2}, {3, 0}}
	p, err := NewStaticProvider(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src[0][1] = 99

	got, err := p.TravelTimes(context.Background(), make([]domain.Location, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0][1] != 2 || got[1][0] != 3 {
		t.Fatalf("matrix = %v, want [[0 2] [3 0]]", got)
	}

	got[1][0] = 42
	again, _ := p.TravelTimes(context.Background(), make([]domain.Location, 2))
	if again[1][0] != 3 {
		t.Fatalf("provider state leaked through returned matrix")
	}
}

func TestStaticProviderSizeMismatch(t *testing.T) {
	p, err := NewStaticProvider(domain.TravelMatrix{{0, 1}, {1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = p.TravelTimes(context.Background(), make([]domain.Location, 3))
	if !errors.Is(err, domain.ErrInvalidProblem) {
		t.Fatalf("err = %v, want ErrInvalidProblem", err)
	}
}

func TestStaticProviderRejectsBadMatrix(t *testing.T) {
	if _, err := NewStaticProvider(domain.TravelMatrix{{0, 1}}); err == nil {
		t.Fatal("expected error for non-square matrix")
	}
}
