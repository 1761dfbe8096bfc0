package domain

import "errors"

var (
	// The solver could not satisfy all time windows with the given vehicle count.
	ErrInfeasible = errors.New("routing problem is infeasible")

	// No vehicle count up to the fleet cap produced a feasible solution.
	ErrEscalationExhausted = errors.New("vehicle escalation exhausted")

	ErrInvalidWindow  = errors.New("invalid time window")
	ErrInvalidProblem = errors.New("invalid routing problem")
	ErrInvalidBounds  = errors.New("invalid dock bounds")

	ErrNotFound = errors.New("not found")
)
