package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trace struct{ calls []string }

func record(name string, phase ExecutionPhase, prio Priority) System[*trace] {
	return Func(name, phase, prio, func(_ float64, tr *trace) error {
		tr.calls = append(tr.calls, name)
		return nil
	})
}

func TestSchedulerOrdersByPhaseThenPriorityThenRegistration(t *testing.T) {
	s := NewScheduler[*trace]()
	require.NoError(t, s.Register(
		record("cleanup", PhaseCleanup, PriorityHighest),
		record("steer", PhaseUpdate, PriorityLow),
		record("timer", PhaseUpdate, PriorityHigh),
		record("accelerate", PhaseUpdate, PriorityNormal),
		record("input", PhaseInput, PriorityLowest),
		record("select", PhaseUpdate, PriorityNormal),
	))

	assert.Equal(t, []string{"input", "timer", "accelerate", "select", "steer", "cleanup"}, s.ExecutionOrder())

	tr := &trace{}
	require.NoError(t, s.Update(0.016, tr))
	assert.Equal(t, s.ExecutionOrder(), tr.calls)
	assert.Equal(t, uint64(1), s.Frames())
}

func TestSchedulerRejectsDuplicates(t *testing.T) {
	s := NewScheduler[*trace]()
	require.NoError(t, s.Register(record("a", PhaseUpdate, PriorityNormal)))
	err := s.Register(record("a", PhaseInput, PriorityNormal))
	assert.ErrorIs(t, err, ErrDuplicateSystem)
}

func TestSchedulerJoinsErrorsAndKeepsRunning(t *testing.T) {
	s := NewScheduler[*trace]()
	boom := errors.New("boom")
	var reported []string
	s.OnSystemError(func(name string, _ error) { reported = append(reported, name) })
	require.NoError(t, s.Register(
		Func("bad", PhaseUpdate, PriorityHigh, func(float64, *trace) error { return boom }),
		record("good", PhaseUpdate, PriorityLow),
	))

	tr := &trace{}
	err := s.Update(0.1, tr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"good"}, tr.calls)
	assert.Equal(t, []string{"bad"}, reported)

	m, ok := s.SystemMetrics("bad")
	require.True(t, ok)
	assert.Equal(t, uint64(1), m.ErrorCount)
	assert.Equal(t, uint64(1), m.ExecutionCount)
}

func TestSchedulerDisableAndUnregister(t *testing.T) {
	s := NewScheduler[*trace]()
	require.NoError(t, s.Register(record("a", PhaseUpdate, PriorityNormal), record("b", PhaseUpdate, PriorityNormal)))
	require.NoError(t, s.SetEnabled("a", false))

	tr := &trace{}
	require.NoError(t, s.Update(0.1, tr))
	assert.Equal(t, []string{"b"}, tr.calls)

	require.NoError(t, s.Unregister("b"))
	assert.False(t, s.HasSystem("b"))
	assert.ErrorIs(t, s.Unregister("b"), ErrUnknownSystem)
}
