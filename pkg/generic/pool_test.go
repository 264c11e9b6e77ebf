package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlicesPoolResets(t *testing.T) {
	p := Slices[int](4)
	s := p.Get()
	assert.Empty(t, *s)
	assert.GreaterOrEqual(t, cap(*s), 4)

	*s = append(*s, 1, 2, 3)
	p.Put(s)

	// sync.Pool may or may not hand back the same slice; either way it is empty
	again := p.Get()
	assert.Empty(t, *again)
}

func TestHotPoolGenerates(t *testing.T) {
	calls := 0
	p := NewHotPool(func() int { calls++; return 7 }, nil, 3)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 7, p.Get())
}
