package services

import (
	"fmt"
	"strings"

	"dock-allocation-service/internal/domain"
)

// PoolOrder selects which available window is claimed next.
type PoolOrder string

const (
	// Last pushed, first claimed.
	PoolOrderLIFO PoolOrder = "lifo"
	// Smallest begin first, ties broken by smallest end.
	PoolOrderEarliest PoolOrder = "earliest"
)

func ParsePoolOrder(s string) (PoolOrder, error) {
	switch PoolOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", PoolOrderLIFO:
		return PoolOrderLIFO, nil
	case PoolOrderEarliest:
		return PoolOrderEarliest, nil
	default:
		return "", fmt.Errorf("unknown pool order %q", s)
	}
}

// WindowPool holds the dock windows not yet claimed by any company. It is not
// safe for concurrent use; a scheduler owns exactly one pool per dock.
type WindowPool struct {
	order   PoolOrder
	windows []domain.TimeWindow
}

func NewWindowPool(order PoolOrder, seed ...domain.TimeWindow) *WindowPool {
	if order == "" {
		order = PoolOrderLIFO
	}
	p := &WindowPool{order: order}
	p.Push(seed...)
	return p
}

func (p *WindowPool) Len() int { return len(p.windows) }

// Push appends windows in the given order.
func (p *WindowPool) Push(ws ...domain.TimeWindow) {
	p.windows = append(p.windows, ws...)
}

// Pop claims the next window according to the pool order.
func (p *WindowPool) Pop() (domain.TimeWindow, bool) {
	if len(p.windows) == 0 {
		return domain.TimeWindow{}, false
	}

	idx := len(p.windows) - 1
	if p.order == PoolOrderEarliest {
		idx = 0
		for i, w := range p.windows {
			best := p.windows[idx]
			if w.Begin < best.Begin || (w.Begin == best.Begin && w.End < best.End) {
				idx = i
			}
		}
	}

	w := p.windows[idx]
	p.windows = append(p.windows[:idx], p.windows[idx+1:]...)
	return w, true
}

// Windows returns the remaining windows in claim order.
func (p *WindowPool) Windows() []domain.TimeWindow {
	clone := &WindowPool{order: p.order, windows: append([]domain.TimeWindow(nil), p.windows...)}
	out := make([]domain.TimeWindow, 0, len(p.windows))
	for {
		w, ok := clone.Pop()
		if !ok {
			return out
		}
		out = append(out, w)
	}
}
