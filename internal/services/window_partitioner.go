package services

import "dock-allocation-service/internal/domain"

// WindowPartitioner splits a consumed dock window around the recorded arrival
// instant, keeping the unload buffer on both sides of it free.
type WindowPartitioner struct {
	Bounds domain.DomainBounds
}

// Partition returns zero, one or two successor windows in ascending start
// order. A successor is kept only when it is at least one time unit wide and
// stays inside both the consumed window and the dock's opening hours. An
// arrival outside the consumed window retires it whole.
func (p WindowPartitioner) Partition(consumed domain.TimeWindow, arrival int) []domain.TimeWindow {
	out := make([]domain.TimeWindow, 0, 2)
	if !consumed.Contains(arrival) {
		return out
	}

	buf := p.Bounds.UnloadBuffer
	leftEnd := arrival - buf
	rightBegin := arrival + buf

	leftOK := leftEnd > consumed.Begin && leftEnd >= p.Bounds.Opening
	rightOK := rightBegin < p.Bounds.Closing && rightBegin < consumed.End

	if leftOK {
		out = append(out, domain.TimeWindow{Begin: consumed.Begin, End: leftEnd})
	}
	if rightOK {
		out = append(out, domain.TimeWindow{Begin: rightBegin, End: consumed.End})
	}
	return out
}
