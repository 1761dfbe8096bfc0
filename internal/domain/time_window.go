package domain

import "fmt"

// TimeWindow is an inclusive interval [Begin, End] of integer time units
// during which arrival at a location is permitted.
type TimeWindow struct {
	Begin int `json:"begin" yaml:"begin"`
	End   int `json:"end" yaml:"end"`
}

// NewTimeWindow rejects windows whose begin lies after their end.
func NewTimeWindow(begin, end int) (TimeWindow, error) {
	w := TimeWindow{Begin: begin, End: end}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

func (w TimeWindow) Validate() error {
	if w.Begin > w.End {
		return fmt.Errorf("%w: begin %d is after end %d", ErrInvalidWindow, w.Begin, w.End)
	}
	return nil
}

// Contains reports whether t lies inside the window, edges included.
func (w TimeWindow) Contains(t int) bool { return t >= w.Begin && t <= w.End }

// Span is the number of time units between the window edges.
func (w TimeWindow) Span() int { return w.End - w.Begin }

func (w TimeWindow) String() string { return fmt.Sprintf("(%d,%d)", w.Begin, w.End) }
