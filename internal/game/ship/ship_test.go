package ship

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/strike/internal/config"
	"github.com/zeusync/strike/internal/core/ecs"
	"github.com/zeusync/strike/internal/core/systems/physics"
	"github.com/zeusync/strike/internal/game/component"
	"github.com/zeusync/strike/internal/game/projectiles"
	"github.com/zeusync/strike/internal/game/weapons"
	"github.com/zeusync/strike/internal/game/world"
)

func setup(t *testing.T) (*world.World, *weapons.Catalog, ecs.EntityID) {
	t.Helper()
	cfg := config.Default()
	catalog, err := weapons.NewCatalog(cfg.Weapons, projectiles.Spawners(cfg.Projectiles), weapons.Meshes())
	require.NoError(t, err)
	w := world.New(world.Options{Seed: 1})
	id := Spawn(w, cfg.Ship)
	return w, catalog, id
}

func TestSpawnRegistersPlayer(t *testing.T) {
	w, _, id := setup(t)
	assert.Equal(t, id, w.Player)
	assert.True(t, w.IsPersistent(id))
	col, ok := w.Collidables.Get(id)
	require.True(t, ok)
	assert.Equal(t, component.TeamPlayer, col.Team)
	assert.Equal(t, 100.0, col.HitPoints)
	assert.Equal(t, 0.0, col.Damage)
}

func TestControlThrustAndTurn(t *testing.T) {
	w, _, id := setup(t)
	in := &Input{}
	ctl := Control(in)

	in.Set(Intent{Up: true, Right: true})
	require.NoError(t, ctl.Update(0.1, w))
	mv, _ := w.Movables.Get(id)
	assert.InDelta(t, 4/math.Sqrt2, mv.Acceleration.X(), 1e-9)
	assert.InDelta(t, 4/math.Sqrt2, mv.Acceleration.Y(), 1e-9)

	in.Set(Intent{Up: true, Down: true})
	require.NoError(t, ctl.Update(0.1, w))
	assert.Equal(t, physics.Vec3{}, mv.Acceleration, "opposing intents cancel")

	in.Set(Intent{RotateLeft: true})
	for i := 0; i < 10; i++ {
		require.NoError(t, ctl.Update(0.1, w))
	}
	tr, _ := w.Transforms.Get(id)
	heading := tr.Rotation.Rotate(physics.AxisX)
	assert.InDelta(t, math.Cos(2), heading.X(), 1e-9)
	assert.InDelta(t, math.Sin(2), heading.Y(), 1e-9)
}

func TestLoadoutSwitching(t *testing.T) {
	w, catalog, id := setup(t)
	require.NoError(t, Equip(w, catalog, 1))
	wp, ok := w.Weapons.Get(id)
	require.True(t, ok)
	assert.Equal(t, "cannon", wp.Name)
	mesh := wp.Attachment
	assert.True(t, w.Alive(mesh))

	in := &Input{}
	sys := Loadout(in, catalog)
	in.Set(Intent{SwitchSlot: 2})
	require.NoError(t, sys.Update(0, w))

	wp, _ = w.Weapons.Get(id)
	assert.Equal(t, "rocket_launcher", wp.Name)
	assert.False(t, w.Alive(mesh))
	s, _ := w.Ships.Get(id)
	assert.Equal(t, 2, s.Slot)

	in.Set(Intent{SwitchSlot: 9})
	require.NoError(t, sys.Update(0, w), "bad slot is logged, not fatal")
	wp, _ = w.Weapons.Get(id)
	assert.Equal(t, "rocket_launcher", wp.Name)

	assert.ErrorIs(t, Equip(w, catalog, 0), ErrNoSlot)
}
