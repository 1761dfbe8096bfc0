package domain

import "fmt"

// TravelMatrix holds travel times between location indexes. It must be square
// with non-negative entries; symmetry is not required.
type TravelMatrix [][]int

func (m TravelMatrix) Size() int { return len(m) }

func (m TravelMatrix) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: travel matrix is empty", ErrInvalidProblem)
	}
	for i, row := range m {
		if len(row) != len(m) {
			return fmt.Errorf("%w: travel matrix row %d has %d entries, want %d", ErrInvalidProblem, i, len(row), len(m))
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("%w: negative travel time %d from %d to %d", ErrInvalidProblem, v, i, j)
			}
		}
	}
	return nil
}

// Clone returns a deep copy so callers can never observe later mutations.
func (m TravelMatrix) Clone() TravelMatrix {
	out := make(TravelMatrix, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Func exposes a private copy of the matrix as a TravelTimeFunc.
func (m TravelMatrix) Func() TravelTimeFunc {
	snapshot := m.Clone()
	return func(from, to int) int { return snapshot[from][to] }
}
