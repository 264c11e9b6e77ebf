package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
)

func TestSpawnBundle(t *testing.T) {
	w := New(Options{Seed: 1})
	tr := component.At(physics.Vec3{1, 2, 3})
	col := component.NewCollidable(0.5, 1, 10, component.TeamEnemy)
	id := w.Spawn(component.Bundle{Name: "drone", Transform: &tr, Collidable: &col, Persistent: true})

	got, ok := w.Transforms.Get(id)
	require.True(t, ok)
	assert.Equal(t, physics.Vec3{1, 2, 3}, got.Position)
	assert.True(t, w.Collidables.Has(id))
	assert.True(t, w.IsPersistent(id))
	assert.Equal(t, "drone", w.Name(id))
	assert.Equal(t, 0, w.Shapes.Len(), "no shapes outside contact mode")
}

func TestContactModeIndexesShapes(t *testing.T) {
	w := New(Options{Seed: 1, Shapes: true})
	col := component.NewCollidable(0.5, 1, 10, component.TeamEnemy)
	tr := component.At(physics.Vec3{})
	id := w.Spawn(component.Bundle{
		Transform:  &tr,
		Collidable: &col,
		Shapes:     []component.Shape{{Radius: 0.2}, {Radius: 0.1, Offset: physics.Vec3{0.3, 0, 0}}},
	})
	require.Equal(t, 2, w.Shapes.Len())

	for _, shape := range w.Shapes.Entities() {
		owner, ok := w.ShapeOwner(physics.ShapeID(shape))
		require.True(t, ok)
		assert.Equal(t, id, owner)
	}

	shapes := w.Shapes.Entities()
	w.Despawn(id)
	assert.Equal(t, 0, w.Shapes.Len())
	_, ok := w.ShapeOwner(physics.ShapeID(shapes[0]))
	assert.False(t, ok)
}

func TestDespawnWithAnnouncesOnce(t *testing.T) {
	b := bus.New()
	var got []DespawnEvent
	_, err := b.SubscribeTopic(TopicCombat, EventDespawned, func(e bus.Event) error {
		got = append(got, e.Data().(DespawnEvent))
		return nil
	})
	require.NoError(t, err)

	w := New(Options{Seed: 1, Bus: b})
	id := w.Spawn(component.Bundle{Name: "rocket"})
	w.Player = id

	assert.True(t, w.DespawnWith(id, ReasonKilled, "test"))
	assert.False(t, w.DespawnWith(id, ReasonKilled, "test"))
	require.Len(t, got, 1)
	assert.Equal(t, "rocket", got[0].Name)
	assert.Equal(t, ReasonKilled, got[0].Reason)
	assert.Zero(t, w.Player, "player handle cleared on despawn")
}

func TestSeedIsDeterministic(t *testing.T) {
	a := New(Options{Seed: 42})
	b := New(Options{Seed: 42})
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.RNG.Float64(), b.RNG.Float64())
	}
}
