package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_, _ string, _ Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_, _ string, handlers int, err error) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got []any
	_, err := b.Subscribe("test.event", func(e Event) error {
		got = append(got, e.Data())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("test.event", "tester", 3, 123)))
	require.NoError(t, b.Publish(NewEvent("other.event", "tester", 3, 456)))
	assert.Equal(t, []any{123}, got)
}

func TestDeliveryFollowsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 5; i++ {
		_, err := b.Subscribe("e", func(Event) error { order = append(order, i); return nil })
		require.NoError(t, err)
	}
	require.NoError(t, b.Publish(NewEvent("e", "s", 0, nil)))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	b := New()
	e1, e2 := errors.New("one"), errors.New("two")
	_, _ = b.Subscribe("x", func(Event) error { return e1 })
	_, _ = b.Subscribe("x", func(Event) error { return e2 })

	err := b.Publish(NewEvent("x", "src", 0, nil))
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
}

func TestTopicsIsolation(t *testing.T) {
	b := New()
	count1, count2 := 0, 0
	_, _ = b.SubscribeTopic("t1", "ev", func(Event) error { count1++; return nil })
	_, _ = b.SubscribeTopic("t2", "ev", func(Event) error { count2++; return nil })
	require.NoError(t, b.PublishToTopic("t1", NewEvent("ev", "src", 0, nil)))
	assert.Equal(t, 1, count1)
	assert.Equal(t, 0, count2)

	topics := b.GetTopics()
	require.Len(t, topics, 2)
	assert.Equal(t, "t1", topics[0].Name)
	assert.Equal(t, 1, topics[0].Subs)
}

func TestCancelIsIdempotent(t *testing.T) {
	b := New()
	calls := 0
	sub, err := b.Subscribe("e", func(Event) error { calls++; return nil })
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID())

	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	assert.False(t, sub.IsActive())
	require.NoError(t, b.Publish(NewEvent("e", "s", 0, nil)))
	assert.Equal(t, 0, calls)
	assert.NoError(t, b.Unsubscribe(nil))
}

func TestFiltersDropSilently(t *testing.T) {
	b := New()
	obs := &testObserver{}
	b.AddObserver(obs)
	calls := 0
	_, _ = b.Subscribe("e", func(Event) error { calls++; return nil })

	err := b.PublishWithFilters(NewEvent("e", "s", 0, nil), func(Event) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.Equal(t, uint64(1), b.GetMetrics().DroppedByFilters)
}

func TestObserverMetricsOptional(t *testing.T) {
	b := New()
	_, _ = b.Subscribe("e", func(Event) error { return nil })
	_ = b.Publish(NewEvent("e", "s", 0, nil))
	assert.Zero(t, b.GetMetrics().Published, "no metrics without observers")

	obs := &testObserver{}
	b.AddObserver(obs)
	_ = b.PublishBatch("", NewEvent("e", "s", 0, nil), NewEvent("e", "s", 0, nil))
	m := b.GetMetrics()
	assert.Equal(t, uint64(2), m.Published)
	assert.Equal(t, uint64(2), m.DeliveredHandlers)
	assert.Equal(t, 2, obs.publishCount)

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("e", "s", 0, nil))
	assert.Equal(t, 2, obs.publishCount)
}
