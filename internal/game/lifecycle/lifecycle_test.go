package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/events/bus"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/combat"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/enemies"
	"github.com/zeusync/strike/internal/game/world"
)

func setup(t *testing.T) (*world.World, *Sweeper, *enemies.Spawner) {
	t.Helper()
	cfg := config.Default()
	spawner := enemies.NewSpawner(cfg.Enemies, cfg.Bounds, nil)
	return world.New(world.Options{Seed: 5}), NewSweeper(cfg.Bounds, spawner), spawner
}

func spawnShip(w *world.World) ecs.EntityID {
	tr := component.At(physics.Vec3{})
	mv := physics.NewMovable(physics.Vec3{}, 1)
	col := component.NewCollidable(0.15, 0, 100, component.TeamPlayer)
	id := w.Spawn(component.Bundle{Transform: &tr, Movable: &mv, Collidable: &col, Persistent: true})
	w.Player = id
	return id
}

func spawnBall(w *world.World, pos physics.Vec3) ecs.EntityID {
	tr := component.At(pos)
	col := component.NewCollidable(0.03, 10, 1, component.TeamPlayer)
	return w.Spawn(component.Bundle{Transform: &tr, Collidable: &col, Projectile: &component.Projectile{Kind: "cannon_ball", Damage: 10}})
}

func sweep(t *testing.T, s *Sweeper, w *world.World) {
	t.Helper()
	for _, sys := range s.Systems() {
		require.NoError(t, sys.Update(0, w))
	}
}

func TestProjectileKillsItselfOnDrone(t *testing.T) {
	w, s, spawner := setup(t)
	drone, err := spawner.Spawn(w, "drone", physics.Vec3{0.1, 0, 0})
	require.NoError(t, err)
	ball := spawnBall(w, physics.Vec3{})

	require.NoError(t, combat.NewDistanceResolver(0, 0).Update(0, w))
	sweep(t, s, w)

	assert.False(t, w.Alive(ball))
	require.True(t, w.Alive(drone))
	col, _ := w.Collidables.Get(drone)
	assert.Equal(t, 10.0, col.HitPoints)
	assert.Zero(t, w.Score.Points)
}

func TestDeadEnemyScoresAndRespawns(t *testing.T) {
	w, s, spawner := setup(t)
	b := bus.New()
	w.Bus = b
	var scores []world.ScoreEvent
	_, err := b.SubscribeTopic(world.TopicCombat, world.EventScoreAwarded, func(e bus.Event) error {
		scores = append(scores, e.Data().(world.ScoreEvent))
		return nil
	})
	require.NoError(t, err)

	drone, err := spawner.Spawn(w, "drone", physics.Vec3{3, 0, 0})
	require.NoError(t, err)
	col, _ := w.Collidables.Get(drone)
	col.TakeDamage(20)

	sweep(t, s, w)

	assert.False(t, w.Alive(drone))
	assert.Equal(t, uint64(100), w.Score.Points)
	assert.Equal(t, uint64(1), w.Score.Kills)
	assert.Equal(t, 1, Population(w, "drone"))
	require.Len(t, scores, 1)
	assert.Equal(t, uint64(100), scores[0].Total)
}

func TestPersistentShipStaysAtZero(t *testing.T) {
	w, s, spawner := setup(t)
	ship := spawnShip(w)
	drone, err := spawner.Spawn(w, "drone", physics.Vec3{0.1, 0, 0})
	require.NoError(t, err)

	r := combat.NewDistanceResolver(0, 0)
	for i := 0; i < 6; i++ {
		require.NoError(t, r.Update(0, w))
		sweep(t, s, w)
	}

	require.True(t, w.Alive(ship))
	col, _ := w.Collidables.Get(ship)
	assert.Equal(t, 0.0, col.HitPoints)
	assert.Equal(t, 0.0, col.HealthFraction())
	assert.True(t, w.Alive(drone), "ship deals no damage")
	assert.Equal(t, ship, w.Player)
}

func TestBoundsSweep(t *testing.T) {
	w, s, spawner := setup(t)
	inside := spawnBall(w, physics.Vec3{49, -49, 49})
	out := spawnBall(w, physics.Vec3{0, 0, -50.5})
	drifted, err := spawner.Spawn(w, "target", physics.Vec3{-5.1, 0, 0})
	require.NoError(t, err)
	edge, err := spawner.Spawn(w, "target", physics.Vec3{-5, 0, 0})
	require.NoError(t, err)

	sweep(t, s, w)

	assert.True(t, w.Alive(inside))
	assert.False(t, w.Alive(out))
	assert.False(t, w.Alive(drifted))
	assert.True(t, w.Alive(edge))
	assert.Equal(t, 2, Population(w, "target"))
	assert.Zero(t, w.Score.Points, "drifting off awards nothing")
}

func TestPopulationConserved(t *testing.T) {
	w, s, spawner := setup(t)
	cfg := config.Default()
	cfg.Populations = append(cfg.Populations, config.PopulationConfig{Enemy: "target", Count: 4})
	_, err := spawner.Populate(w, cfg.Populations)
	require.NoError(t, err)
	drones, targets := Population(w, "drone"), Population(w, "target")

	for round := 0; round < 30; round++ {
		ids := w.Enemies.Entities()
		victim := ids[w.RNG.IntN(len(ids))]
		if round%2 == 0 {
			col, _ := w.Collidables.Get(victim)
			col.TakeDamage(col.HitPoints)
		} else {
			tr, _ := w.Transforms.Get(victim)
			tr.Position = physics.Vec3{-10, 0, 0}
		}
		sweep(t, s, w)
		assert.Equal(t, drones, Population(w, "drone"), "round %d", round)
		assert.Equal(t, targets, Population(w, "target"), "round %d", round)
	}
}

type failingRespawner struct{}

func (failingRespawner) Respawn(*world.World, string) (ecs.EntityID, error) {
	return ecs.None, errors.New("no room")
}

func TestRespawnErrorsReturned(t *testing.T) {
	w, _, spawner := setup(t)
	s := NewSweeper(config.Default().Bounds, failingRespawner{})
	drone, err := spawner.Spawn(w, "drone", physics.Vec3{-6, 0, 0})
	require.NoError(t, err)

	err = s.Bounds(0, w)
	assert.ErrorContains(t, err, "respawn drone")
	assert.False(t, w.Alive(drone))
}
