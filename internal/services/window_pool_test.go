package services

import (
	"testing"

	"dock-allocation-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowPoolLIFO(t *testing.T) {
	p := NewWindowPool(PoolOrderLIFO, domain.TimeWindow{Begin: 6, End: 12})
	w, ok := p.Pop()
	require.True(t, ok)
	assert.Equal(t, domain.TimeWindow{Begin: 6, End: 12}, w)

	p.Push(domain.TimeWindow{Begin: 6, End: 8}, domain.TimeWindow{Begin: 10, End: 12})
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []domain.TimeWindow{{10, 12}, {6, 8}}, p.Windows())
	assert.Equal(t, 2, p.Len(), "listing must not drain the pool")

	w, _ = p.Pop()
	assert.Equal(t, domain.TimeWindow{Begin: 10, End: 12}, w)
	w, _ = p.Pop()
	assert.Equal(t, domain.TimeWindow{Begin: 6, End: 8}, w)

	_, ok = p.Pop()
	assert.False(t, ok)
}

func TestWindowPoolEarliest(t *testing.T) {
	p := NewWindowPool(PoolOrderEarliest)
	p.Push(domain.TimeWindow{Begin: 10, End: 12}, domain.TimeWindow{Begin: 6, End: 9}, domain.TimeWindow{Begin: 6, End: 8})

	assert.Equal(t, []domain.TimeWindow{{6, 8}, {6, 9}, {10, 12}}, p.Windows())
	w, _ := p.Pop()
	assert.Equal(t, domain.TimeWindow{Begin: 6, End: 8}, w)
}

func TestParsePoolOrder(t *testing.T) {
	for in, want := range map[string]PoolOrder{"": PoolOrderLIFO, "LIFO": PoolOrderLIFO, " earliest ": PoolOrderEarliest} {
		got, err := ParsePoolOrder(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePoolOrder("fifo")
	assert.Error(t, err)

	assert.Equal(t, PoolOrderLIFO, NewWindowPool("").order)
}
