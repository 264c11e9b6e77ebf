package systems

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrDuplicateSystem = errors.New("system already registered")
	ErrUnknownSystem   = errors.New("system not registered")
)

type entry[W any] struct {
	system  System[W]
	seq     int
	enabled bool
	metrics Metrics
}

// Scheduler runs registered systems once per frame in a fixed order:
// by phase, then by priority, then by registration order.
type Scheduler[W any] struct {
	entries []*entry[W]
	byName  map[string]*entry[W]
	seq     int
	frames  uint64
	onError func(name string, err error)
}

func NewScheduler[W any]() *Scheduler[W] {
	return &Scheduler[W]{byName: make(map[string]*entry[W])}
}

// OnSystemError installs a callback invoked for each failing system.
func (s *Scheduler[W]) OnSystemError(fn func(name string, err error)) {
	s.onError = fn
}

func (s *Scheduler[W]) Register(systems ...System[W]) error {
	defer s.sort()
	for _, sys := range systems {
		if _, ok := s.byName[sys.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateSystem, sys.Name())
		}
		e := &entry[W]{system: sys, seq: s.seq, enabled: true}
		s.seq++
		s.byName[sys.Name()] = e
		s.entries = append(s.entries, e)
	}
	return nil
}

func (s *Scheduler[W]) sort() {
	slices.SortStableFunc(s.entries, func(a, b *entry[W]) int {
		if a.system.Phase() != b.system.Phase() {
			return int(a.system.Phase()) - int(b.system.Phase())
		}
		if a.system.Priority() != b.system.Priority() {
			return int(a.system.Priority()) - int(b.system.Priority())
		}
		return a.seq - b.seq
	})
}

func (s *Scheduler[W]) Unregister(name string) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSystem, name)
	}
	delete(s.byName, name)
	s.entries = slices.DeleteFunc(s.entries, func(e *entry[W]) bool { return e.system.Name() == name })
	return nil
}

func (s *Scheduler[W]) SetEnabled(name string, enabled bool) error {
	e, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSystem, name)
	}
	e.enabled = enabled
	return nil
}

func (s *Scheduler[W]) HasSystem(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// ExecutionOrder lists system names in the order Update runs them.
func (s *Scheduler[W]) ExecutionOrder() []string {
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.system.Name())
	}
	return names
}

// Update runs one frame. A failing system does not stop the frame; all
// errors are joined and returned.
func (s *Scheduler[W]) Update(deltaTime float64, world W) error {
	var all error
	for _, e := range s.entries {
		if !e.enabled {
			continue
		}
		start := time.Now()
		err := e.system.Update(deltaTime, world)
		e.metrics.record(time.Since(start), err)
		if err != nil {
			err = fmt.Errorf("%s: %w", e.system.Name(), err)
			if s.onError != nil {
				s.onError(e.system.Name(), err)
			}
			all = errors.Join(all, err)
		}
	}
	s.frames++
	return all
}

func (s *Scheduler[W]) Frames() uint64 {
	return s.frames
}

func (s *Scheduler[W]) SystemMetrics(name string) (Metrics, bool) {
	e, ok := s.byName[name]
	if !ok {
		return Metrics{}, false
	}
	return e.metrics, true
}
