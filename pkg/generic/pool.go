package generic

import "sync"

// Pool is a typed sync.Pool. Values handed back through Put are passed
// through reset first, so Get never observes stale contents.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T) T
}

// NewPool creates a pool. reset may be nil.
func NewPool[T any](generate func() T, reset func(T) T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
		reset: reset,
	}
}

// NewHotPool creates a pool pre-filled with hotSize values.
func NewHotPool[T any](generate func() T, reset func(T) T, hotSize int) *Pool[T] {
	p := NewPool[T](generate, reset)
	for i := 0; i < hotSize; i++ {
		p.pool.Put(generate())
	}
	return p
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		value = p.reset(value)
	}
	p.pool.Put(value)
}

// Slices returns a pool of reusable slices with the given starting capacity.
// Returned slices are truncated to zero length.
func Slices[E any](capacity int) *Pool[*[]E] {
	return NewPool(
		func() *[]E {
			s := make([]E, 0, capacity)
			return &s
		},
		func(s *[]E) *[]E {
			*s = (*s)[:0]
			return s
		},
	)
}
