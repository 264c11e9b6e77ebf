package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/world"
)

func TestIntegrateMovesEntities(t *testing.T) {
	w := world.New(world.Options{Seed: 1})
	tr := component.At(physics.Vec3{})
	mv := physics.NewMovable(physics.Vec3{2, 0, 0}, 1)
	id := w.Spawn(component.Bundle{Transform: &tr, Movable: &mv})
	still := w.Spawn(component.Bundle{Movable: &mv})

	require.NoError(t, Integrate().Update(0.5, w))

	got, _ := w.Transforms.Get(id)
	assert.InDelta(t, 1.0, got.Position.X(), 1e-12)
	assert.False(t, w.Transforms.Has(still))
}

func TestContactsPublishesStartedPairsOnce(t *testing.T) {
	b := bus.New()
	var got []physics.ContactStarted
	_, err := b.SubscribeTopic(world.TopicPhysics, physics.EventContactStarted, func(e bus.Event) error {
		got = append(got, e.Data().(physics.ContactStarted))
		return nil
	})
	require.NoError(t, err)

	w := world.New(world.Options{Seed: 1, Bus: b, Shapes: true})
	spawn := func(x float64, team component.Team) {
		tr := component.At(physics.Vec3{x, 0, 0})
		col := component.NewCollidable(0.25, 1, 10, team)
		w.Spawn(component.Bundle{Transform: &tr, Collidable: &col})
	}
	spawn(0, component.TeamPlayer)
	spawn(0.3, component.TeamEnemy)
	spawn(5, component.TeamEnemy)

	c := NewContacts()
	require.NoError(t, c.Update(0, w))
	require.NoError(t, c.Update(0, w))
	require.Len(t, got, 1)

	a, okA := w.ShapeOwner(got[0].A)
	bb, okB := w.ShapeOwner(got[0].B)
	require.True(t, okA && okB)
	assert.NotEqual(t, a, bb)
}
