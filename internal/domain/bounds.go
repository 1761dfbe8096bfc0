package domain

import "fmt"

// DomainBounds are the deployment-wide dock constants: the earliest opening
// instant, the latest closing instant, and the unload buffer reserved on each
// side of a recorded dock arrival.
type DomainBounds struct {
	Opening      int `json:"opening" yaml:"opening"`
	Closing      int `json:"closing" yaml:"closing"`
	UnloadBuffer int `json:"unload_buffer" yaml:"unload_buffer"`
}

func (b DomainBounds) Validate() error {
	if b.Opening > b.Closing {
		return fmt.Errorf("%w: opening %d is after closing %d", ErrInvalidBounds, b.Opening, b.Closing)
	}
	if b.UnloadBuffer < 1 {
		return fmt.Errorf("%w: unload buffer must be at least 1, got %d", ErrInvalidBounds, b.UnloadBuffer)
	}
	return nil
}

// Hours is the window spanning the full dock opening hours. It seeds the pool.
func (b DomainBounds) Hours() TimeWindow {
	return TimeWindow{Begin: b.Opening, End: b.Closing}
}
