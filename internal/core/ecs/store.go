package ecs

import "slices"

// Store is a sparse set of components of one type. Iteration order is
// deterministic: insertion order, with removal swapping the last entry in.
type Store[T any] struct {
	index    map[EntityID]int
	entities []EntityID
	values   []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index:    make(map[EntityID]int),
		entities: make([]EntityID, 0, 64),
		values:   make([]*T, 0, 64),
	}
}

// Set inserts or replaces the component of e and returns the stored pointer.
func (s *Store[T]) Set(e EntityID, val T) *T {
	ptr := &val
	if i, ok := s.index[e]; ok {
		s.values[i] = ptr
		return ptr
	}
	s.index[e] = len(s.entities)
	s.entities = append(s.entities, e)
	s.values = append(s.values, ptr)
	return ptr
}

// Get returns the live component pointer; mutations through it are visible
// to every other reader.
func (s *Store[T]) Get(e EntityID) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return s.values[i], true
}

func (s *Store[T]) Has(e EntityID) bool {
	_, ok := s.index[e]
	return ok
}

func (s *Store[T]) Remove(e EntityID) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.entities) - 1
	if i != last {
		moved := s.entities[last]
		s.entities[i] = moved
		s.values[i] = s.values[last]
		s.index[moved] = i
	}
	s.entities[last] = None
	s.values[last] = nil
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	delete(s.index, e)
}

// Entities returns a snapshot of the entities holding this component.
func (s *Store[T]) Entities() []EntityID {
	return slices.Clone(s.entities)
}

func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Each calls fn for every entity present when Each started. Entities removed
// by fn (or by anything fn calls) before their turn are skipped. Returning
// false stops the iteration.
func (s *Store[T]) Each(fn func(EntityID, *T) bool) {
	for _, e := range s.Entities() {
		v, ok := s.Get(e)
		if !ok {
			continue
		}
		if !fn(e, v) {
			return
		}
	}
}
