package systems

import (
	"time"
)

// System is a per-frame game logic processor over a world of type W.
// A system runs to completion before the next one starts.
type System[W any] interface {
	Name() string
	Phase() ExecutionPhase
	Priority() Priority
	Update(deltaTime float64, world W) error
}

// Priority orders systems inside one phase; lower runs first.
type Priority uint16

// System priorities
const (
	PriorityHighest Priority = 100
	PriorityHigh    Priority = 300
	PriorityNormal  Priority = 500
	PriorityLow     Priority = 700
	PriorityLowest  Priority = 900
)

// ExecutionPhase defines when in the frame a system runs.
type ExecutionPhase uint8

const (
	PhaseInput ExecutionPhase = iota
	PhaseUpdate
	PhasePhysics
	PhaseResolve
	PhaseCleanup
)

var phaseNames = [...]string{"input", "update", "physics", "resolve", "cleanup"}

func (p ExecutionPhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	LastExecutionTime    time.Duration
	ErrorCount           uint64
	LastError            error
}

func (m *Metrics) record(d time.Duration, err error) {
	m.ExecutionCount++
	m.TotalExecutionTime += d
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	m.LastExecutionTime = d
	if d > m.MaxExecutionTime {
		m.MaxExecutionTime = d
	}
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}

// funcSystem adapts a plain function to System.
type funcSystem[W any] struct {
	name     string
	phase    ExecutionPhase
	priority Priority
	fn       func(float64, W) error
}

// Func builds a System from a function.
func Func[W any](name string, phase ExecutionPhase, priority Priority, fn func(dt float64, w W) error) System[W] {
	return &funcSystem[W]{name: name, phase: phase, priority: priority, fn: fn}
}

func (s *funcSystem[W]) Name() string                 { return s.name }
func (s *funcSystem[W]) Phase() ExecutionPhase        { return s.phase }
func (s *funcSystem[W]) Priority() Priority           { return s.priority }
func (s *funcSystem[W]) Update(dt float64, w W) error { return s.fn(dt, w) }
